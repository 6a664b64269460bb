package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"text/tabwriter"
	"time"

	"libreader/internal/browser"
	"libreader/internal/config"
	"libreader/internal/formatter"
	"libreader/internal/logging"
	"libreader/internal/metrics"
	"libreader/internal/model"
	"libreader/internal/scraper"
	"libreader/internal/server"
	_ "libreader/internal/sites/minato"
	_ "libreader/internal/sites/nakano"
	_ "libreader/internal/sites/nerima"
	_ "libreader/internal/sites/suginami"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var version = "dev"

const passwordEnv = "LIBREADER_PASSWORD"

var (
	region       string
	userID       string
	password     string
	lists        string
	outputFormat string
	outputFile   string
	timeout      time.Duration
	showUI       bool
	proxyURL     string
	logLevel     string
)

func main() {
	cfg := config.LoadOrDefault()

	rootCmd := &cobra.Command{
		Use:     "libreader",
		Short:   "Read loans and reservations from municipal library portals",
		Version: version,
		Long: `libreader logs into a public library's web portal with your card number
and password, then lists what you have borrowed and reserved. It drives a
headless Chromium, so the portals' JavaScript runs as in a normal browser.`,
		SilenceUsage: true,
	}
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(newFetchCmd(cfg), newServeCmd(), newRegionsCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newFetchCmd(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Fetch loans and reservations for one patron",
		Example: `  # Print current loans and reservations
  LIBREADER_PASSWORD=secret libreader fetch --region nakano --user 0012345678

  # Only reservations, as JSON
  libreader fetch --region minato --user 0012345678 --password secret --list reservations -f json

  # Write a CSV file (format inferred from the extension)
  libreader fetch --region nerima --user 0012345678 -o library.csv`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFetch(cmd, cfg)
		},
	}

	cmd.Flags().StringVarP(&region, "region", "r", "", "Library region code (see 'libreader regions')")
	cmd.Flags().StringVarP(&userID, "user", "u", "", "Library card number")
	cmd.Flags().StringVar(&password, "password", "", "Password, defaults to the "+passwordEnv+" env var")
	cmd.Flags().StringVarP(&lists, "list", "l", "all", "Lists to read (all, loans, reservations)")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "text", "Output format ("+strings.Join(formatter.Formats, ", ")+")")
	cmd.Flags().StringVarP(&outputFile, "output", "o", "", "Output file path (format inferred from extension if -f not specified)")
	cmd.Flags().DurationVarP(&timeout, "timeout", "t", cfg.Browser.ScrapeTimeout, "Overall timeout")
	cmd.Flags().BoolVar(&showUI, "showui", !cfg.Browser.Headless, "Show browser UI (disable headless mode)")
	cmd.Flags().StringVarP(&proxyURL, "proxy", "p", cfg.Browser.ProxyURL, "Proxy URL (e.g. http://127.0.0.1:7890), defaults to LIBREADER_PROXY env var")
	_ = cmd.MarkFlagRequired("region")
	_ = cmd.MarkFlagRequired("user")

	return cmd
}

func runFetch(cmd *cobra.Command, cfg *config.Config) error {
	// If output file is specified but format is not, infer format from file extension
	if outputFile != "" && !cmd.Flags().Changed("format") {
		if inferred := formatter.FromExtension(outputFile); inferred != "" {
			outputFormat = inferred
		}
	}
	if password == "" {
		password = os.Getenv(passwordEnv)
	}

	wanted, err := validateFlags()
	if err != nil {
		return err
	}

	log, err := logging.New(logging.CLIConfig(logLevel))
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer log.Sync()

	reader := scraper.NewReader(browserConfig(cfg, !showUI, proxyURL), log)

	ctx, cancel := context.WithTimeout(cmd.Context(), timeout)
	defer cancel()
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, err := reader.Read(ctx, region, model.Credentials{UserID: userID, Password: password}, wanted...)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", region, err)
	}

	site, _ := scraper.Get(region)
	outputContent, err := formatter.Format(scraper.NewResultContent(site.Name(), result), outputFormat)
	if err != nil {
		return fmt.Errorf("failed to format output: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(outputContent), 0644); err != nil {
			return fmt.Errorf("failed to write to file: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Output written to: %s\n", outputFile)
	} else {
		fmt.Println(outputContent)
	}
	return nil
}

func validateFlags() ([]scraper.List, error) {
	if _, ok := scraper.Get(region); !ok {
		return nil, fmt.Errorf("unknown region: %s (known: %s)", region, strings.Join(regionCodes(), ", "))
	}
	if strings.TrimSpace(userID) == "" {
		return nil, fmt.Errorf("--user is required")
	}
	if password == "" {
		return nil, fmt.Errorf("--password or %s is required", passwordEnv)
	}
	if !formatter.Valid(outputFormat) {
		return nil, fmt.Errorf("invalid output format: %s", outputFormat)
	}
	if timeout <= 0 {
		return nil, fmt.Errorf("invalid timeout: %s", timeout)
	}
	if _, err := logging.ParseLevel(logLevel); err != nil {
		return nil, fmt.Errorf("invalid log level: %s", logLevel)
	}
	return scraper.ParseLists(lists)
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the library API over HTTP",
		Long: `serve exposes GET/POST /library, /regions, /healthz and /metrics.
It is configured from the environment (PORT, HOST, SCRAPE_TIMEOUT,
RATE_LIMIT_RPS, BROWSER_NO_SANDBOX, ...).`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}

			logCfg := logging.DefaultConfig()
			logCfg.Level = cfg.Logging.Level
			logCfg.Development = cfg.Logging.Development
			log, err := logging.New(logCfg)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}
			defer log.Sync()

			m := metrics.New()
			reader := scraper.NewReader(
				browserConfig(cfg, cfg.Browser.Headless, cfg.Browser.ProxyURL),
				log,
				scraper.WithObserver(m),
			)
			srv := server.New(cfg, reader, m, log, version)

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			log.Info("starting libreader",
				zap.String("version", version),
				zap.Strings("regions", regionCodes()),
				zap.Bool("rate_limit", cfg.RateLimit.Enabled),
			)
			return srv.Run(ctx)
		},
	}
}

func newRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "List supported library regions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, s := range scraper.Regions() {
				fmt.Fprintf(w, "%s\t%s\n", s.Region(), s.Name())
			}
			return w.Flush()
		},
	}
}

func browserConfig(cfg *config.Config, headless bool, proxy string) browser.Config {
	return browser.Config{
		Headless:  headless,
		ProxyURL:  proxy,
		Bin:       cfg.Browser.Bin,
		NoSandbox: cfg.Browser.NoSandbox,
		Timeout:   cfg.Browser.StepTimeout,
	}
}

func regionCodes() []string {
	var codes []string
	for _, s := range scraper.Regions() {
		codes = append(codes, s.Region())
	}
	return codes
}
