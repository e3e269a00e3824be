package domain

import "time"

// Inquiry is a contact request left by a visitor for the owner of a listing.
type Inquiry struct {
	ID         string    `db:"id"`
	Name       string    `db:"name"`
	ContactNo  string    `db:"contact_no"`
	Message    string    `db:"message"`
	PropertyID string    `db:"property_id"`
	CreatedAt  time.Time `db:"created_at"`
}
