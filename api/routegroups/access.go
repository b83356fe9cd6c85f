package routegroups

import (
	"backoffice-access/api/handlers"
	"github.com/go-chi/chi/v5"
)

func RegisterAccess(apiRouter chi.Router, h *handlers.AccessHandler) {
	apiRouter.Route("/access", func(acc chi.Router) {
		acc.MethodFunc("GET", "/catalog", h.Catalog)
		acc.MethodFunc("GET", "/permissions", h.Permissions)
		acc.MethodFunc("GET", "/profiles", h.Profiles)
		acc.MethodFunc("POST", "/profiles/{profile}/apply", h.ApplyProfile)
		acc.MethodFunc("POST", "/tree/apply", h.ApplyCommands)
		acc.MethodFunc("POST", "/tree/summary", h.Summary)
		acc.MethodFunc("POST", "/assignments", h.SaveAssignment)
		acc.MethodFunc("GET", "/subjects", h.ListSubjects)
		acc.MethodFunc("GET", "/subjects/{subject}/permissions", h.SubjectPermissions)
		acc.MethodFunc("DELETE", "/subjects/{subject}", h.RevokeSubject)
		acc.MethodFunc("POST", "/check", h.Check)
	})
}
