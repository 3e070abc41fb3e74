package prom

import (
	"github.com/helpcomp/ynab-category-exporter/ynab"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sashabaranov/go-openai"
)

var (
	OpenAICalls   float64 = 0
	ProgramErrors float64 = 0
	LastRefresh   float64 = 0
	OaiUsage      openai.Usage
)

type Exporter struct {
	CategoryBudgeted *prometheus.Desc
	CategoryActivity *prometheus.Desc
	CategoryBalance  *prometheus.Desc
	Categories       *prometheus.Desc
	CategoryGroups   *prometheus.Desc
	OpenAITokens     *prometheus.Desc
	APICalls         *prometheus.Desc
	APIErrors        *prometheus.Desc
	ProgramErrors    *prometheus.Desc
	RefreshTime      *prometheus.Desc
	yc               *ynab.Client
}

func (e *Exporter) Describe(ch chan<- *prometheus.Desc) {
	ch <- e.CategoryBudgeted
	ch <- e.CategoryActivity
	ch <- e.CategoryBalance
	ch <- e.Categories
	ch <- e.CategoryGroups
	ch <- e.OpenAITokens
	ch <- e.APICalls
	ch <- e.APIErrors
	ch <- e.ProgramErrors
	ch <- e.RefreshTime
}

func NewExporter(namespace string, client *ynab.Client) *Exporter {
	return &Exporter{
		CategoryBudgeted: prometheusCategoryStatsDesc(
			namespace,
			"budgeted",
			"Budgeted amount for the given category",
		),
		CategoryActivity: prometheusCategoryStatsDesc(
			namespace,
			"activity",
			"Activity amount for the given category",
		),
		CategoryBalance: prometheusCategoryStatsDesc(
			namespace,
			"balance",
			"Balance for the given category",
		),
		Categories: prometheus.NewDesc(
			prometheus.BuildFQName(
				namespace,
				"group",
				"categories",
			),
			"How many visible categories in the given group",
			[]string{"group_id", "group_name"},
			nil,
		),
		CategoryGroups: prometheus.NewDesc(
			prometheus.BuildFQName(
				namespace,
				"budget",
				"category_groups",
			),
			"How many non-empty category groups in the budget",
			[]string{"budget_id"},
			nil,
		),
		OpenAITokens: prometheus.NewDesc(
			prometheus.BuildFQName(
				namespace,
				"openai",
				"tokens",
			),
			"Count of OpenAI Tokens",
			[]string{"type"},
			nil,
		),
		APICalls: prometheus.NewDesc(
			prometheus.BuildFQName(
				namespace,
				"status",
				"api_calls",
			),
			"Count of API calls",
			[]string{"type"},
			nil,
		),
		APIErrors: prometheus.NewDesc(
			prometheus.BuildFQName(
				namespace,
				"status",
				"api_errors",
			),
			"Count of API Errors",
			[]string{"type"},
			nil,
		),
		ProgramErrors: prometheusStatusDesc(
			namespace,
			"program_errors",
			"Current status of the system",
		),
		RefreshTime: prometheusStatusDesc(
			namespace,
			"refresh_time",
			"Time the category snapshot was last refreshed (Unix Time / Epoch)",
		),
		yc: client,
	}
}

func prometheusCategoryStatsDesc(namespace string, metric string, help string) *prometheus.Desc {
	return prometheus.NewDesc(
		prometheus.BuildFQName(
			namespace,
			"category",
			metric,
		),
		help,
		[]string{"category_id", "category_name", "group_name"},
		nil,
	)
}

func prometheusStatusDesc(namespace string, metric string, help string) *prometheus.Desc {
	return prometheus.NewDesc(
		prometheus.BuildFQName(
			namespace,
			"status",
			metric,
		),
		help,
		[]string{},
		nil,
	)
}
