// Package validation contains input validation rules for user-supplied fields.
package validation

import (
	"errors"
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minNameLen     = 6
	maxNameLen     = 40
	maxEmailLen    = 50
	minPasswordLen = 6
	maxBioLen      = 60
	maxCountryLen  = 25
	maxImageURLLen = 200
)

// nameRe requires a leading letter followed by letters, digits, spaces or underscores.
var nameRe = regexp.MustCompile(`^[A-Za-z]+[A-Za-z0-9 _]*$`)

// ValidateName checks display name constraints.
func ValidateName(name string) error {
	name = strings.TrimSpace(name)
	if utf8.RuneCountInString(name) < minNameLen {
		return fmt.Errorf("min length allowed for a name is %d characters", minNameLen)
	}
	if utf8.RuneCountInString(name) > maxNameLen {
		return fmt.Errorf("max length allowed for a name is %d characters", maxNameLen)
	}
	if !nameRe.MatchString(name) {
		return errors.New("name should start with a letter and only contain letters, numbers, and spaces")
	}
	return nil
}

// ValidateEmail checks address syntax and length.
func ValidateEmail(email string) error {
	email = strings.TrimSpace(email)
	if len(email) > maxEmailLen {
		return fmt.Errorf("max length allowed for an email address is %d characters", maxEmailLen)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return errors.New("please provide a valid email address")
	}
	return nil
}

// ValidatePassword checks minimum password strength.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < minPasswordLen {
		return fmt.Errorf("min length allowed for a password is %d characters", minPasswordLen)
	}
	return nil
}

// ValidateBio checks profile bio constraints.
func ValidateBio(bio string) error {
	if utf8.RuneCountInString(bio) > maxBioLen {
		return fmt.Errorf("max length allowed for a bio is %d characters", maxBioLen)
	}
	return nil
}

// ValidateCountry checks profile country constraints.
func ValidateCountry(country string) error {
	if utf8.RuneCountInString(country) > maxCountryLen {
		return fmt.Errorf("max length allowed for a country name is %d characters", maxCountryLen)
	}
	return nil
}

// ValidateImageURL checks an externally stored image URL.
func ValidateImageURL(url string) error {
	if len(url) > maxImageURLLen {
		return fmt.Errorf("max length allowed for an image URL is %d characters", maxImageURLLen)
	}
	if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		return errors.New("please provide a valid image URL")
	}
	return nil
}

// NormalizeEmail lowercases and trims an email address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
