package domain

import "time"

// Todo is a user-owned profile-style record. All fields except Name, Address,
// and CreatedBy are optional.
type Todo struct {
	ID          string
	Name        string
	Title       string
	Age         int
	Bio         string
	Company     string
	Experience  int
	Description string
	Address     string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Update carries partial field updates; nil pointers leave the field unchanged.
type Update struct {
	Name        *string
	Title       *string
	Age         *int
	Bio         *string
	Company     *string
	Experience  *int
	Description *string
	Address     *string
}

// Apply copies the set fields of u onto t.
func (u Update) Apply(t *Todo) {
	if u.Name != nil {
		t.Name = *u.Name
	}
	if u.Title != nil {
		t.Title = *u.Title
	}
	if u.Age != nil {
		t.Age = *u.Age
	}
	if u.Bio != nil {
		t.Bio = *u.Bio
	}
	if u.Company != nil {
		t.Company = *u.Company
	}
	if u.Experience != nil {
		t.Experience = *u.Experience
	}
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Address != nil {
		t.Address = *u.Address
	}
}
