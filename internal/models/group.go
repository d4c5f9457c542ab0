package models

// Group represents a set of users who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// CreatedBy is the user ID of the group creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Membership links a user to a group. Its existence is the access-control
// fact checked before any group-scoped balance computation.
type Membership struct {
	GroupID string
	UserID  string

	// JoinedAt is the Unix timestamp when the user joined the group.
	JoinedAt int64
}

// Member is a membership with the user's display data resolved. Member
// enumeration order (joined-at, ties in insertion order) is part of the balance
// engine's contract: the first member's preferred currency labels the
// group's simplified debts.
type Member struct {
	UserID            string
	DisplayName       string
	PreferredCurrency string
	JoinedAt          int64
}
