package links

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"backoffice-access/core/access"
	"backoffice-access/core/catalog"
	"backoffice-access/core/rbac"
	"backoffice-access/core/utils"
	"github.com/gofrs/uuid/v5"
)

type Service struct {
	catalog *catalog.Registry
	saver   Saver
	policy  *rbac.Policy
	now     func() time.Time
}

func NewService(reg *catalog.Registry, saver Saver, policy *rbac.Policy) *Service {
	return &Service{catalog: reg, saver: saver, policy: policy, now: time.Now}
}

// Save validates a, cleans every link tree against its allow-list, hands the
// result to the saver and publishes the grants to the policy. The saved links
// replace every link previously published for the same user.
func (s *Service) Save(ctx context.Context, a *Assignment) (*Assignment, error) {
	if a == nil {
		return nil, fmt.Errorf("%w: empty assignment", ErrInvalidInput)
	}
	out := *a
	out.Username = strings.TrimSpace(out.Username)
	if out.Username == "" {
		return nil, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	if err := utils.ValidateUsername(out.Username); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if out.Profile != "" {
		id, err := access.ParseProfile(string(out.Profile))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		out.Profile = id
	}
	if len(out.Links) == 0 {
		return nil, ErrNoCompany
	}
	seen := map[string]struct{}{}
	out.Links = make([]CompanyLink, 0, len(a.Links))
	for _, l := range a.Links {
		l.CompanyID = strings.TrimSpace(l.CompanyID)
		l.BranchID = strings.TrimSpace(l.BranchID)
		if l.CompanyID == "" {
			return nil, fmt.Errorf("%w: company_id is required", ErrInvalidInput)
		}
		if err := utils.ValidateCompanyID(l.CompanyID); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		if l.BranchID != "" {
			if err := utils.ValidateCompanyID(l.BranchID); err != nil {
				return nil, fmt.Errorf("%w: branch: %v", ErrInvalidInput, err)
			}
		}
		subject := l.Subject(out.Username)
		if _, dup := seen[subject]; dup {
			return nil, fmt.Errorf("%w: duplicate link %s", ErrInvalidInput, subject)
		}
		seen[subject] = struct{}{}
		l.AvailableModules = sortedKeys(l.AvailableModules)
		out.Links = append(out.Links, NewEditor(s.catalog, l).Link(l))
	}
	if out.ID == uuid.Nil {
		id, err := uuid.NewV4()
		if err != nil {
			return nil, err
		}
		out.ID = id
	}
	out.SavedAt = s.now().UTC()
	if s.saver != nil {
		if err := s.saver.Save(ctx, &out); err != nil {
			return nil, fmt.Errorf("save assignment: %w", err)
		}
	}
	if s.policy != nil {
		trees := make(map[string]access.Tree, len(out.Links))
		for _, l := range out.Links {
			trees[l.Subject(out.Username)] = l.Access
		}
		// Links dropped from the assignment lose their grants.
		if err := s.policy.ReplaceSubjects(UserSubjectPrefix(out.Username), trees); err != nil {
			return nil, fmt.Errorf("publish grants: %w", err)
		}
	}
	return &out, nil
}

func sortedKeys(keys []string) []string {
	set := catalog.NormalizeKeys(keys)
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
