package model

import (
	"errors"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
)

const MaxNameLength = 100

// formFields fixes the order in which field messages are reported.
var formFields = []string{"first_name", "family_name", "date_of_birth", "date_of_death"}

// isoDateLayouts covers the ISO-8601 calendar forms, extended and basic,
// with reduced precision (year, year-month) and optional time part.
var isoDateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01",
	"2006",
	"20060102",
	"20060102T150405Z0700",
	"20060102T150405",
}

// AuthorForm - POST /authors/create, POST /authors/:id/update
type AuthorForm struct {
	FirstName   string `form:"first_name" json:"first_name"`
	FamilyName  string `form:"family_name" json:"family_name"`
	DateOfBirth string `form:"date_of_birth" json:"date_of_birth"`
	DateOfDeath string `form:"date_of_death" json:"date_of_death"`
}

// Sanitize trims every submitted value in place.
func (f *AuthorForm) Sanitize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.FamilyName = strings.TrimSpace(f.FamilyName)
	f.DateOfBirth = strings.TrimSpace(f.DateOfBirth)
	f.DateOfDeath = strings.TrimSpace(f.DateOfDeath)
}

// Validate checks every field and reports all failing fields at once.
func (f AuthorForm) Validate() error {
	return validation.ValidateStruct(&f,
		validation.Field(&f.FirstName,
			validation.Required.Error("First name must be specified."),
			is.Alphanumeric.Error("First name has non-alphanumeric characters."),
			validation.Length(0, MaxNameLength).Error("First name must be at most 100 characters."),
		),
		validation.Field(&f.FamilyName,
			validation.Required.Error("Family name must be specified."),
			is.Alphanumeric.Error("Family name has non-alphanumeric characters."),
			validation.Length(0, MaxNameLength).Error("Family name must be at most 100 characters."),
		),
		validation.Field(&f.DateOfBirth, validation.By(isoDate("Invalid date of birth"))),
		validation.Field(&f.DateOfDeath, validation.By(isoDate("Invalid date of death"))),
	)
}

// ToEntity builds the candidate record. Dates that do not parse are left
// unset so the candidate can be shown even when validation failed.
func (f AuthorForm) ToEntity(id uuid.UUID) *Author {
	return &Author{
		ID:          id,
		FirstName:   f.FirstName,
		FamilyName:  f.FamilyName,
		DateOfBirth: optionalDate(f.DateOfBirth),
		DateOfDeath: optionalDate(f.DateOfDeath),
	}
}

// ErrorMessages flattens a Validate error into messages ordered by field.
func ErrorMessages(err error) []string {
	if err == nil {
		return nil
	}

	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []string{err.Error()}
	}

	messages := make([]string, 0, len(errs))
	for _, field := range formFields {
		if fieldErr, ok := errs[field]; ok && fieldErr != nil {
			messages = append(messages, fieldErr.Error())
		}
	}
	return messages
}

// ParseISODate accepts an ISO-8601 calendar date, optionally with a time
// part, and returns the date at UTC midnight. Reduced precision dates
// resolve to the first day of the period, "2020-05" is May 1st.
func ParseISODate(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range isoDateLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

func isoDate(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s == "" {
			return nil
		}
		if _, err := ParseISODate(s); err != nil {
			return errors.New(message)
		}
		return nil
	}
}

func optionalDate(s string) *time.Time {
	if s == "" {
		return nil
	}
	t, err := ParseISODate(s)
	if err != nil {
		return nil
	}
	return &t
}
