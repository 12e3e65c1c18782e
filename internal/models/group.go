package models

// Group represents a named collection of members who share expenses.
type Group struct {
	// ID is the unique identifier for the group (UUID format).
	ID string

	// Name is the display name of the group (e.g., "Roommates", "Ski Trip").
	Name string

	// Description is free-form text about the group.
	Description string

	// Category classifies the group (e.g., "home", "trip").
	Category string

	// CreatedBy is the user ID of the group's creator.
	CreatedBy string

	// CreatedAt is the Unix timestamp when the group was created.
	CreatedAt int64
}

// Membership links a user to a group. Unique per (GroupID, UserID).
type Membership struct {
	GroupID  string
	UserID   string
	JoinedAt int64
}
