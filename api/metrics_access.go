package api

import (
	"backoffice-access/api/handlers"
	"backoffice-access/core/access"
	"backoffice-access/core/catalog"
	"backoffice-access/core/rbac"
	"github.com/prometheus/client_golang/prometheus"
)

type accessMetricsCollector struct {
	handler *handlers.AccessHandler
	catalog *catalog.Registry
	policy  *rbac.Policy

	commandsDesc        *prometheus.Desc
	profilesAppliedDesc *prometheus.Desc
	assignmentsDesc     *prometheus.Desc
	lastSavedDesc       *prometheus.Desc
	catalogModulesDesc  *prometheus.Desc
	policySubjectsDesc  *prometheus.Desc
}

func newAccessMetricsCollector(h *handlers.AccessHandler, reg *catalog.Registry, policy *rbac.Policy) prometheus.Collector {
	return &accessMetricsCollector{
		handler: h,
		catalog: reg,
		policy:  policy,
		commandsDesc: prometheus.NewDesc(
			"backoffice_access_commands_total",
			"Access tree commands applied through the API by kind.",
			[]string{"kind"},
			nil,
		),
		profilesAppliedDesc: prometheus.NewDesc(
			"backoffice_access_profiles_applied_total",
			"Profile templates applied through the API by profile.",
			[]string{"profile"},
			nil,
		),
		assignmentsDesc: prometheus.NewDesc(
			"backoffice_access_assignments_saved_total",
			"Access assignments saved.",
			nil,
			nil,
		),
		lastSavedDesc: prometheus.NewDesc(
			"backoffice_access_last_saved_timestamp",
			"Unix timestamp of the last saved assignment.",
			nil,
			nil,
		),
		catalogModulesDesc: prometheus.NewDesc(
			"backoffice_catalog_modules",
			"Modules available in the loaded catalog.",
			nil,
			nil,
		),
		policySubjectsDesc: prometheus.NewDesc(
			"backoffice_policy_subjects",
			"Subjects with grants in the permission policy.",
			nil,
			nil,
		),
	}
}

func (c *accessMetricsCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.commandsDesc
	ch <- c.profilesAppliedDesc
	ch <- c.assignmentsDesc
	ch <- c.lastSavedDesc
	ch <- c.catalogModulesDesc
	ch <- c.policySubjectsDesc
}

func (c *accessMetricsCollector) Collect(ch chan<- prometheus.Metric) {
	if c.handler != nil {
		stats := c.handler.StatsSnapshot()
		for _, kind := range access.CommandKinds() {
			ch <- prometheus.MustNewConstMetric(c.commandsDesc, prometheus.CounterValue, float64(stats.Commands[kind]), string(kind))
		}
		for _, p := range access.Profiles() {
			ch <- prometheus.MustNewConstMetric(c.profilesAppliedDesc, prometheus.CounterValue, float64(stats.ProfilesApplied[p.ID]), string(p.ID))
		}
		ch <- prometheus.MustNewConstMetric(c.assignmentsDesc, prometheus.CounterValue, float64(stats.AssignmentsSaved))
		last := 0.0
		if stats.LastSavedAtUTC != nil {
			last = float64(stats.LastSavedAtUTC.Unix())
		}
		ch <- prometheus.MustNewConstMetric(c.lastSavedDesc, prometheus.GaugeValue, last)
	}
	if c.catalog != nil {
		ch <- prometheus.MustNewConstMetric(c.catalogModulesDesc, prometheus.GaugeValue, float64(len(c.catalog.Modules())))
	}
	if c.policy != nil {
		ch <- prometheus.MustNewConstMetric(c.policySubjectsDesc, prometheus.GaugeValue, float64(len(c.policy.Subjects())))
	}
}
