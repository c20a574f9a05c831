// Package models defines the core domain types for splitledger.
//
// Identity: group members are identified by email address. A user's email is
// immutable once registered, so expense splits and balances key on it safely.
//
// Money: every monetary value is a Cents (integer minor currency units).
// Decimal representations exist only at parse/format boundaries, so split and
// balance arithmetic is exact: there is no floating-point accumulation and
// the zero-sum check on a group's balances holds to the cent.
//
// Balances are derived values. They are recomputed from the current expense
// set on every read or change notification and are never stored.
package models
