package models

// Group is a named set of users sharing expenses. Membership is fixed at
// creation time: there is no add or remove operation, so every expense ever
// recorded in the group splits across the same member set.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g. "Roommates", "Goa Trip").
	Name string

	// Members is the list of member emails. Always non-empty and always
	// contains CreatedBy.
	Members []string

	// CreatedBy is the email of the user who created the group.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// HasMember reports whether email is in the group's member list.
func (g *Group) HasMember(email string) bool {
	for _, m := range g.Members {
		if m == email {
			return true
		}
	}
	return false
}
