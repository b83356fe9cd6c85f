package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"backoffice-access/core/access"
	"backoffice-access/core/catalog"
	"backoffice-access/core/links"
	"backoffice-access/core/rbac"
	"backoffice-access/core/utils"
	"github.com/go-chi/chi/v5"
)

type AccessHandler struct {
	catalog *catalog.Registry
	links   *links.Service
	policy  *rbac.Policy
	logger  *utils.Logger

	mu    sync.Mutex
	stats AccessStats
}

// AccessStats feeds the metrics collector.
type AccessStats struct {
	Commands         map[access.CommandKind]uint64
	ProfilesApplied  map[access.ProfileID]uint64
	AssignmentsSaved uint64
	LastSavedAtUTC   *time.Time
}

func NewAccessHandler(reg *catalog.Registry, svc *links.Service, policy *rbac.Policy, logger *utils.Logger) *AccessHandler {
	return &AccessHandler{
		catalog: reg,
		links:   svc,
		policy:  policy,
		logger:  logger,
		stats: AccessStats{
			Commands:        map[access.CommandKind]uint64{},
			ProfilesApplied: map[access.ProfileID]uint64{},
		},
	}
}

func (h *AccessHandler) StatsSnapshot() AccessStats {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := AccessStats{
		Commands:         make(map[access.CommandKind]uint64, len(h.stats.Commands)),
		ProfilesApplied:  make(map[access.ProfileID]uint64, len(h.stats.ProfilesApplied)),
		AssignmentsSaved: h.stats.AssignmentsSaved,
	}
	for k, v := range h.stats.Commands {
		out.Commands[k] = v
	}
	for k, v := range h.stats.ProfilesApplied {
		out.ProfilesApplied[k] = v
	}
	if h.stats.LastSavedAtUTC != nil {
		t := *h.stats.LastSavedAtUTC
		out.LastSavedAtUTC = &t
	}
	return out
}

func (h *AccessHandler) countCommand(cmd access.Command) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.stats.Commands[cmd.Kind()]++
	if p, ok := cmd.(access.ApplyProfileCommand); ok {
		h.stats.ProfilesApplied[p.Profile]++
	}
}

type treeResponse struct {
	Tree        access.Tree    `json:"tree"`
	Summary     access.Summary `json:"summary"`
	Fingerprint string         `json:"fingerprint"`
}

func newTreeResponse(tree access.Tree) treeResponse {
	return treeResponse{Tree: tree, Summary: access.Summarize(tree), Fingerprint: access.Fingerprint(tree)}
}

func (h *AccessHandler) scoped(modules []string) []access.ModuleDefinition {
	return h.catalog.Filter(modules)
}

func (h *AccessHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	modules := catalog.SplitKeys(r.URL.Query().Get("modules"))
	writeJSON(w, http.StatusOK, map[string]any{"items": h.scoped(modules)})
}

// Permissions lists every grant name the allow-listed catalog can express.
func (h *AccessHandler) Permissions(w http.ResponseWriter, r *http.Request) {
	modules := catalog.SplitKeys(r.URL.Query().Get("modules"))
	writeJSON(w, http.StatusOK, map[string]any{"items": rbac.AllPermissions(h.scoped(modules))})
}

func (h *AccessHandler) Profiles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": access.Profiles()})
}

func (h *AccessHandler) ApplyProfile(w http.ResponseWriter, r *http.Request) {
	id, err := access.ParseProfile(chi.URLParam(r, "profile"))
	if err != nil {
		respondError(w, http.StatusNotFound, "unknown profile")
		return
	}
	var payload struct {
		Modules []string `json:"modules"`
	}
	if err := decodeJSON(w, r, &payload, true); err != nil {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}
	cmd := access.ApplyProfileCommand{Profile: id}
	tree := access.Apply(nil, h.scoped(payload.Modules), cmd)
	h.countCommand(cmd)
	writeJSON(w, http.StatusOK, newTreeResponse(tree))
}

func (h *AccessHandler) ApplyCommands(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Tree     access.Tree       `json:"tree"`
		Modules  []string          `json:"modules"`
		Commands []json.RawMessage `json:"commands"`
	}
	if err := decodeJSON(w, r, &payload, false); err != nil {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}
	cmds := make([]access.Command, 0, len(payload.Commands))
	for i, raw := range payload.Commands {
		cmd, err := access.DecodeCommand(raw)
		if err != nil {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("commands[%d]: %v", i, err))
			return
		}
		cmds = append(cmds, cmd)
	}
	modules := h.scoped(payload.Modules)
	tree := access.Restrict(access.Normalize(payload.Tree), modules)
	for _, cmd := range cmds {
		tree = access.Apply(tree, modules, cmd)
		h.countCommand(cmd)
	}
	writeJSON(w, http.StatusOK, newTreeResponse(access.SortByCatalog(tree, modules)))
}

func (h *AccessHandler) Summary(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Tree access.Tree `json:"tree"`
	}
	if err := decodeJSON(w, r, &payload, false); err != nil {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}
	writeJSON(w, http.StatusOK, newTreeResponse(access.Normalize(payload.Tree)))
}

func (h *AccessHandler) SaveAssignment(w http.ResponseWriter, r *http.Request) {
	var payload links.Assignment
	if err := decodeJSON(w, r, &payload, false); err != nil {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}
	saved, err := h.links.Save(r.Context(), &payload)
	if err != nil {
		if errors.Is(err, links.ErrInvalidInput) || errors.Is(err, links.ErrNoCompany) {
			respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		h.logger.Errorf("save assignment user=%s: %v", payload.Username, err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	h.mu.Lock()
	h.stats.AssignmentsSaved++
	at := saved.SavedAt
	h.stats.LastSavedAtUTC = &at
	h.mu.Unlock()

	type linkView struct {
		Subject     string         `json:"subject"`
		Fingerprint string         `json:"fingerprint"`
		Summary     access.Summary `json:"summary"`
	}
	views := make([]linkView, 0, len(saved.Links))
	for _, l := range saved.Links {
		views = append(views, linkView{
			Subject:     l.Subject(saved.Username),
			Fingerprint: access.Fingerprint(l.Access),
			Summary:     access.Summarize(l.Access),
		})
	}
	writeJSON(w, http.StatusCreated, map[string]any{
		"id":       saved.ID,
		"saved_at": saved.SavedAt,
		"links":    views,
	})
}

func (h *AccessHandler) ListSubjects(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"items": h.policy.Subjects()})
}

func (h *AccessHandler) SubjectPermissions(w http.ResponseWriter, r *http.Request) {
	subject := strings.TrimSpace(chi.URLParam(r, "subject"))
	if subject == "" {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"subject": subject, "items": h.policy.PermissionsFor(subject)})
}

// RevokeSubject drops every grant of one subject, e.g. a single company link.
func (h *AccessHandler) RevokeSubject(w http.ResponseWriter, r *http.Request) {
	subject := strings.TrimSpace(chi.URLParam(r, "subject"))
	if subject == "" {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}
	if err := h.policy.Remove(subject); err != nil {
		h.logger.Errorf("revoke subject=%s: %v", subject, err)
		respondError(w, http.StatusInternalServerError, "server error")
		return
	}
	h.logger.Printf("access subject revoked subject=%s", subject)
	w.WriteHeader(http.StatusNoContent)
}

func (h *AccessHandler) Check(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Subject    string `json:"subject"`
		Permission string `json:"permission"`
	}
	if err := decodeJSON(w, r, &payload, false); err != nil {
		respondError(w, http.StatusBadRequest, "bad request")
		return
	}
	perm := rbac.Permission(strings.ToLower(strings.TrimSpace(payload.Permission)))
	if _, _, ok := perm.Split(); !ok || strings.TrimSpace(payload.Subject) == "" {
		respondError(w, http.StatusBadRequest, "subject and module.submodule.action permission are required")
		return
	}
	if !rbac.IsKnownPermission(h.catalog.Modules(), perm) {
		respondError(w, http.StatusBadRequest, "unknown permission")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"subject":    payload.Subject,
		"permission": perm,
		"allowed":    h.policy.Allowed(strings.TrimSpace(payload.Subject), perm),
	})
}
