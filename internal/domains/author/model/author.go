package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	displayDateLayout = "Jan 2, 2006"
	formDateLayout    = "2006-01-02"
)

type Author struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	FirstName   string     `json:"first_name" db:"first_name"`
	FamilyName  string     `json:"family_name" db:"family_name"`
	DateOfBirth *time.Time `json:"date_of_birth" db:"date_of_birth"`
	DateOfDeath *time.Time `json:"date_of_death" db:"date_of_death"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Name is the display name, "Family, First". It is empty unless both parts
// are present.
func (a Author) Name() string {
	if a.FirstName == "" || a.FamilyName == "" {
		return ""
	}
	return a.FamilyName + ", " + a.FirstName
}

// URL is the canonical detail path of the author.
func (a Author) URL() string {
	return "/authors/" + a.ID.String()
}

func (a Author) DateOfBirthFormatted() string {
	return formatDate(a.DateOfBirth, displayDateLayout)
}

func (a Author) DateOfDeathFormatted() string {
	return formatDate(a.DateOfDeath, displayDateLayout)
}

// DateOfBirthInput and DateOfDeathInput feed <input type="date"> values.
func (a Author) DateOfBirthInput() string {
	return formatDate(a.DateOfBirth, formDateLayout)
}

func (a Author) DateOfDeathInput() string {
	return formatDate(a.DateOfDeath, formDateLayout)
}

// Lifespan renders "born - died" with either side left blank when unknown.
func (a Author) Lifespan() string {
	if a.DateOfBirth == nil && a.DateOfDeath == nil {
		return ""
	}
	return a.DateOfBirthFormatted() + " - " + a.DateOfDeathFormatted()
}

func formatDate(t *time.Time, layout string) string {
	if t == nil {
		return ""
	}
	return t.Format(layout)
}
