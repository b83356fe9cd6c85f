package rbac

import (
	"backoffice-access/core/access"
)

const profileSubjectPrefix = "profile:"

// ProfileSubject is the policy subject under which a built-in profile is published.
func ProfileSubject(id access.ProfileID) string {
	return profileSubjectPrefix + string(id)
}

// EnsureBuiltIn publishes every built-in profile, applied to catalog, so the
// profile selector can preview effective grants.
func EnsureBuiltIn(policy *Policy, catalog []access.ModuleDefinition) error {
	if policy == nil {
		return nil
	}
	for _, prof := range access.Profiles() {
		if err := policy.Replace(ProfileSubject(prof.ID), access.ApplyProfile(prof.ID, catalog)); err != nil {
			return err
		}
	}
	return nil
}
