package models

import "time"

// Profile is the account row behind an OAuth login.
type Profile struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name,omitempty"`
	Country   *string   `json:"country"`
	CreatedAt time.Time `json:"created_at"`
}

func (p Profile) HasCountry() bool {
	return p.Country != nil && *p.Country != ""
}
