package links

import (
	"errors"
	"strings"
	"time"

	"backoffice-access/core/access"
	"github.com/gofrs/uuid/v5"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNoCompany    = errors.New("at least one company link is required")
)

// CompanyLink binds a user to one company (and optionally a branch) with the
// access tree granted there. AvailableModules is the company's allow-list.
type CompanyLink struct {
	CompanyID        string      `json:"company_id"`
	BranchID         string      `json:"branch_id,omitempty"`
	AvailableModules []string    `json:"available_modules,omitempty"`
	Access           access.Tree `json:"access"`
}

// UserSubjectPrefix is shared by the policy subjects of every link of username.
func UserSubjectPrefix(username string) string {
	return strings.ToLower(strings.TrimSpace(username)) + "@"
}

// Subject is the policy subject for username inside this link. Company and
// branch identifiers are case-insensitive.
func (l CompanyLink) Subject(username string) string {
	s := UserSubjectPrefix(username) + strings.ToLower(strings.TrimSpace(l.CompanyID))
	if b := strings.ToLower(strings.TrimSpace(l.BranchID)); b != "" {
		s += "/" + b
	}
	return s
}

// Assignment is the unit handed to the saver when the user form is saved.
type Assignment struct {
	ID       uuid.UUID        `json:"id"`
	Username string           `json:"username"`
	Profile  access.ProfileID `json:"profile,omitempty"`
	Links    []CompanyLink    `json:"links"`
	SavedAt  time.Time        `json:"saved_at"`
}

func NewAssignment(username string) (*Assignment, error) {
	id, err := uuid.NewV4()
	if err != nil {
		return nil, err
	}
	return &Assignment{ID: id, Username: username}, nil
}
