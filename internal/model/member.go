package model

import "time"

// Member is a church member record. Dates are stored as ISO "2006-01-02"
// strings; BaptismAge is free text, matching what the registration form
// collects.
type Member struct {
	ID            int64     `json:"id"`
	ChurchID      int64     `json:"church_id"`
	Name          string    `json:"name"`
	Address       string    `json:"address"`
	Phone         string    `json:"phone"`
	Email         string    `json:"email"`
	Instagram     string    `json:"instagram"`
	Married       bool      `json:"married"`
	HasChildren   bool      `json:"has_children"`
	Baptized      bool      `json:"baptized"`
	SpouseName    string    `json:"spouse_name"`
	ChildrenNames string    `json:"children_names"`
	BaptismAge    string    `json:"baptism_age"`
	BirthDate     string    `json:"birth_date"`
	CreatedAt     time.Time `json:"created_at"`
}
