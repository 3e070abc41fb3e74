package prom

import (
	"net/http"

	"github.com/helpcomp/ynab-category-exporter/ynab"
	"github.com/prometheus/client_golang/prometheus"
)

func (e *Exporter) Collect(ch chan<- prometheus.Metric) {
	e.CollectCategories(ch) // Category Collector
	e.CollectSys(ch)        // Program Collector (API calls, etc...)
}

// CollectCategories walks the client's cleaned category snapshot. No API
// calls are made here; the scrape reads whatever the last refresh fetched.
func (e *Exporter) CollectCategories(ch chan<- prometheus.Metric) {
	groups := e.yc.CategoryGroups()

	ch <- prometheus.MustNewConstMetric(
		e.CategoryGroups,
		prometheus.GaugeValue,
		float64(len(groups)),
		e.yc.BudgetID(),
	)

	for _, group := range groups {
		ch <- prometheus.MustNewConstMetric(
			e.Categories,
			prometheus.GaugeValue,
			float64(len(group.Categories)),
			group.ID, group.Name,
		)

		for _, cat := range group.Categories {
			ch <- prometheus.MustNewConstMetric(
				e.CategoryBudgeted,
				prometheus.GaugeValue,
				cat.BudgetedAmount().InexactFloat64(),
				cat.ID, cat.Name, group.Name,
			)
			ch <- prometheus.MustNewConstMetric(
				e.CategoryActivity,
				prometheus.GaugeValue,
				cat.ActivityAmount().InexactFloat64(),
				cat.ID, cat.Name, group.Name,
			)
			ch <- prometheus.MustNewConstMetric(
				e.CategoryBalance,
				prometheus.GaugeValue,
				cat.BalanceAmount().InexactFloat64(),
				cat.ID, cat.Name, group.Name,
			)
		}
	}
}

// CollectSys Collects Program information (API calls, etc...)
func (e *Exporter) CollectSys(ch chan<- prometheus.Metric) {
	ch <- prometheus.MustNewConstMetric(
		e.APICalls,
		prometheus.CounterValue,
		ynab.APICalls,
		"ynab",
	)
	ch <- prometheus.MustNewConstMetric(
		e.APICalls,
		prometheus.CounterValue,
		OpenAICalls,
		"openai",
	)
	ch <- prometheus.MustNewConstMetric(
		e.OpenAITokens,
		prometheus.CounterValue,
		float64(OaiUsage.CompletionTokens),
		"completion",
	)
	ch <- prometheus.MustNewConstMetric(
		e.OpenAITokens,
		prometheus.CounterValue,
		float64(OaiUsage.TotalTokens),
		"total",
	)
	ch <- prometheus.MustNewConstMetric(
		e.OpenAITokens,
		prometheus.CounterValue,
		float64(OaiUsage.PromptTokens),
		"prompt",
	)
	ch <- prometheus.MustNewConstMetric(
		e.APIErrors,
		prometheus.CounterValue,
		ynab.APIErrors,
		"ynab",
	)
	ch <- prometheus.MustNewConstMetric(
		e.ProgramErrors,
		prometheus.CounterValue,
		ProgramErrors,
	)
	ch <- prometheus.MustNewConstMetric(
		e.RefreshTime,
		prometheus.GaugeValue,
		LastRefresh,
	)
}

// HealthHandler reports liveness for the HTTP server.
func HealthHandler(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("OK"))
}
