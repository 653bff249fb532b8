package models

import "time"

// College is a named institution. OwnerUserID is nil while the college is
// unclaimed, which happens when students type a name no college user owns yet.
type College struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	NameKey     string    `db:"name_key" json:"-"`
	City        string    `db:"city" json:"city"`
	State       string    `db:"state" json:"state"`
	WebsiteURL  string    `db:"website_url" json:"website_url"`
	OwnerUserID *string   `db:"owner_user_id" json:"owner_user_id,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Claimed reports whether a college user owns the college.
func (c College) Claimed() bool {
	return c.OwnerUserID != nil && *c.OwnerUserID != ""
}
