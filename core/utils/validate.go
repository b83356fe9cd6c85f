package utils

import (
	"errors"
	"regexp"
)

var (
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9._-]{3,64}$`)
	companyRe  = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]{0,63}$`)
	// Keys end up inside "module.submodule.action" permission names, so no dots.
	keyRe = regexp.MustCompile(`^[a-z0-9][a-z0-9_-]{0,63}$`)
)

// ValidateUsername rejects the separators used in policy subjects.
func ValidateUsername(s string) error {
	if !usernameRe.MatchString(s) {
		return errors.New("invalid username")
	}
	return nil
}

// ValidateKey checks catalog module and submodule keys.
func ValidateKey(s string) error {
	if !keyRe.MatchString(s) {
		return errors.New("invalid key")
	}
	return nil
}

// ValidateCompanyID checks company and branch identifiers.
func ValidateCompanyID(s string) error {
	if !companyRe.MatchString(s) {
		return errors.New("invalid company identifier")
	}
	return nil
}
