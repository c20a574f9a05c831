package service

import "errors"

var (
	// ErrNotPayer rejects an edit or delete by anyone but the member who
	// paid. Enforced here, never trusted to clients.
	ErrNotPayer = errors.New("only the payer can modify this expense")

	// ErrNotMember rejects access to a group by a non-member.
	ErrNotMember = errors.New("not a member of this group")
)
