package main

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "net/http/pprof"

	"github.com/alecthomas/kong"
	"github.com/helpcomp/ynab-category-exporter/config"
	"github.com/helpcomp/ynab-category-exporter/httperror"
	"github.com/helpcomp/ynab-category-exporter/prom"
	"github.com/helpcomp/ynab-category-exporter/ynab"
	"github.com/prometheus/client_golang/prometheus"
	versioncollector "github.com/prometheus/client_golang/prometheus/collectors/version"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/version"
	"github.com/prometheus/exporter-toolkit/web"
	"github.com/rs/zerolog/log"
	"github.com/sashabaranov/go-openai"
)

const AppName = "ynab-category-exporter"
const AppDesc = "Go-based service around the YNAB API. It resolves a budget by name, keeps a cleaned snapshot of its category groups (hidden categories and empty groups removed), and exposes the result over HTTP and Prometheus metrics."

var cli struct {
	MetricsPath      string `env:"EXPORTER_METRICS_PATH" help:"${env} - Path under which to expose metrics" default:"/metrics"`
	ConfigPath       string `env:"CONFIG_PATH" help:"${env} - Path to config file" default:"./config.yml"`
	ListenAddress    string `env:"EXPORTER_LISTEN_ADDRESS" help:"${env} - Address to listen on for web interface and telemetry" default:"9718"`
	CredentialsPath  string `env:"YNAB_CREDENTIALS_PATH" help:"${env} - Path to the YNAB credentials JSON file" default:"~/.ynab_credentials.json"`
	BudgetName       string `env:"YNAB_BUDGET_NAME" help:"${env} - Display name of the budget to resolve" default:"My Budget"`
	AzureAIAPIKey    string `env:"AZURE_API_KEY" help:"${env} - API Key for Azure OpenAI. If none is provided, OpenAI support is disabled"`
	AzureEndpoint    string `env:"AZURE_ENDPOINT" help:"${env} - Azure OpenAI Endpoint"`
	OpenAIAPIKey     string `env:"OPENAI_API_KEY" help:"${env} - API Key for OpenAI. If none is provided, OpenAI support is disabled"`
	OpenAIModel      string `env:"OPENAI_MODEL" help:"${env} - OpenAI Model type. Default is gpt-3.5-turbo-instruct" default:"gpt-3.5-turbo-instruct"`
	RefreshTime      uint16 `env:"REFRESH_TIME" help:"${env} - Time in minutes for category refresh (Default 1440 / 1 day)" default:"1440"`
	EnablePrometheus bool   `env:"ENABLE_PROMETHEUS" help:"${env} - Enable Prometheus metrics" default:"true"`
}

func main() {
	// Variable Setup //
	///////////////////
	kong.Parse(&cli,
		kong.Name(AppName),
		kong.Description(AppDesc),
	)
	log.Logger = log.Output(os.Stderr).With().Caller().Logger() // Logger
	var oai *openai.Client                                      // OpenAI
	cfg := config.InitConfig(cli.ConfigPath)                    // Config

	// The YAML config can override the flag defaults
	budgetName := cli.BudgetName
	if cfg.AppConfig.BudgetName != "" {
		budgetName = cfg.AppConfig.BudgetName
	}
	credentialsPath := cli.CredentialsPath
	if cfg.AppConfig.CredentialsPath != "" {
		credentialsPath = cfg.AppConfig.CredentialsPath
	}

	// AI Setup //
	/////////////
	// OpenAI
	if cli.OpenAIAPIKey == "" {
		cli.OpenAIAPIKey = cfg.OpenAI.APIKey
	}
	if cli.OpenAIAPIKey != "" {
		oai = openai.NewClient(cli.OpenAIAPIKey)
	}
	// AzureAI
	if cli.AzureAIAPIKey != "" {
		if cli.AzureEndpoint == "" {
			log.Error().Msg("Azure Endpoint is required if Azure API Key is provided")
		} else {
			oai = openai.NewClientWithConfig(openai.DefaultAzureConfig(cli.AzureAIAPIKey, cli.AzureEndpoint))
		}
	}

	// Start //
	///////////
	log.Logger.Info().
		Str("version", version.Info()).
		Msg("Starting " + AppName)

	// YNAB client - resolves the budget and cleans the category tree up front
	yc, err := ynab.New(&http.Client{Timeout: time.Second * 30}, credentialsPath, ynab.DefaultBaseURL, budgetName)
	if err != nil {
		log.Fatal().Err(err).Msg("Could not initialize YNAB client")
	}
	prom.LastRefresh = float64(time.Now().Unix())
	log.Info().
		Str("budget_id", yc.BudgetID()).
		Int("category_groups", len(yc.CategoryGroups())).
		Msgf("Resolved budget %q", budgetName)

	// Create a channel to listen for interrupt signals
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)

	// Refresher
	ticker := time.NewTicker(time.Duration(cli.RefreshTime) * time.Minute)
	quit := make(chan struct{})

	refresh := func() {
		if err := yc.Refresh(); err != nil {
			prom.ProgramErrors++
			log.Error().Err(err).Msg("Category refresh failed, keeping previous snapshot")
			return
		}
		prom.LastRefresh = float64(time.Now().Unix())
		log.Info().Int("category_groups", len(yc.CategoryGroups())).Msg("Refreshed categories")
	}

	// No Prometheus Support, refresh only
	if !cli.EnablePrometheus {
		log.Info().Msg("Prometheus metrics are disabled. Refresh only.")
		for {
			select {
			case <-ticker.C:
				refresh()
			case <-quit:
				ticker.Stop()
				return
			case sig := <-sigChan:
				log.Info().Msgf("Received signal %s. Exiting...", sig)
				ticker.Stop()
				return
			}
		}
	}

	// Prometheus Support. Refresh and Metrics
	go func() {
		for {
			select {
			case <-ticker.C:
				refresh()
			case <-quit:
				ticker.Stop()
				return
			}
		}
	}()

	// Metric Registration
	prometheus.MustRegister(
		versioncollector.NewCollector(AppName),
		prom.NewExporter(AppName, yc),
	)

	// HTTP Server
	http.Handle(cli.MetricsPath, promhttp.Handler())
	http.HandleFunc("/categories", yc.HandleCategories)
	http.HandleFunc("/category_ids", yc.HandleCategoryIDs)
	http.HandleFunc("/categorize", categorizeHandler(yc, cfg, oai))
	if cli.MetricsPath != "/" && cli.MetricsPath != "" {
		landingConfig := web.LandingConfig{
			Name:        AppName,
			Description: AppDesc,
			Version:     version.Print(AppName),
			Links: []web.LandingLinks{
				{
					Address: cli.MetricsPath,
					Text:    "Metrics",
				},
				{
					Address: "/categories",
					Text:    "Categories",
				},
				{
					Address: "/health",
					Text:    "Health",
				},
			},
		}
		landingPage, err := web.NewLandingPage(landingConfig)

		if err != nil {
			log.Fatal().Err(err).Msg("")
		}
		http.Handle("/", landingPage)
		http.HandleFunc("/health", prom.HealthHandler)
	}

	log.Info().Msgf("Starting HTTP server on listen address :%s and metric path %s", cli.ListenAddress, cli.MetricsPath)

	server := &http.Server{
		Addr:         ":" + cli.ListenAddress,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Listen and serve
	go func() {
		log.Printf("Server starting on %s", server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("Error starting HTTP server")
		}
	}()

	// Handle shutdown
	<-sigChan
	log.Info().Msg("Shutdown Signal Received")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	log.Info().Msg("Shutting down HTTP server...")
	_ = server.Shutdown(ctx)
	log.Info().Msg("Stopping Category Refresh ticker")
	ticker.Stop()
	log.Info().Msg("Shutdown Complete; Exiting...")
}

// categorizeHandler suggests a budget category for the description query
// parameter.
func categorizeHandler(yc *ynab.Client, cfg *config.MasterConfig, oai *openai.Client) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		description := req.URL.Query().Get("description")
		if description == "" {
			httperror.Send(w, req, http.StatusBadRequest, "Missing description parameter")
			return
		}

		suggested := SuggestCategory(yc, cfg, oai, description)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(suggested)
	}
}
