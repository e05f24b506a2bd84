// Package validation holds the input rules shared by the user, chart and
// entry services. Rules are pure functions so they can be tested without a
// database.
package validation

import (
	"errors"
	"fmt"
	"time"
	"unicode"
)

const (
	NameMaxLen     = 50
	PasswordMinLen = 10
	PasswordMaxLen = 72 // bcrypt input limit
	NotesMaxLen    = 500
)

var (
	ErrNameLength     = fmt.Errorf("name must be between 1 and %d characters", NameMaxLen)
	ErrPasswordLength = fmt.Errorf("password must be between %d and %d characters", PasswordMinLen, PasswordMaxLen)
	ErrPasswordWeak   = errors.New("password must contain an uppercase letter, a lowercase letter and a digit")
	ErrNotesTooLong   = fmt.Errorf("notes must be at most %d characters", NotesMaxLen)
	ErrInvalidDate    = errors.New("date is not a valid calendar day")
)

// Name checks user and chart names: 1–50 characters.
func Name(name string) error {
	if len(name) < 1 || len(name) > NameMaxLen {
		return ErrNameLength
	}
	return nil
}

// Password enforces the sign-up policy: 10–72 characters with at least one
// uppercase letter, one lowercase letter and one digit.
func Password(password string) error {
	if len(password) < PasswordMinLen || len(password) > PasswordMaxLen {
		return ErrPasswordLength
	}
	var upper, lower, digit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsLower(r):
			lower = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !upper || !lower || !digit {
		return ErrPasswordWeak
	}
	return nil
}

// Notes checks the optional entry notes field.
func Notes(notes string) error {
	if len(notes) > NotesMaxLen {
		return ErrNotesTooLong
	}
	return nil
}

// Date checks that year/month/day name a real calendar day (rejects
// 2023-02-30 and friends).
func Date(year, month, day int) error {
	if month < 1 || month > 12 || day < 1 || day > 31 || year < 1 {
		return ErrInvalidDate
	}
	d := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if d.Year() != year || int(d.Month()) != month || d.Day() != day {
		return ErrInvalidDate
	}
	return nil
}
