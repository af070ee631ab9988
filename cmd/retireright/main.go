package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/retireright/internal/calculation"
	"github.com/rgehrsitz/retireright/internal/config"
	"github.com/rgehrsitz/retireright/internal/domain"
	"github.com/rgehrsitz/retireright/internal/store"
	"github.com/rgehrsitz/retireright/internal/store/postgres"
	"github.com/rgehrsitz/retireright/internal/store/sqlite"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const (
	envAddr        = "RETIRERIGHT_ADDR"
	envDB          = "RETIRERIGHT_DB"
	envDatabaseURL = "DATABASE_URL"
	defaultDBPath  = "retireright.db"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "retireright %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.Main.Path + " " + bi.Main.Version
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "retireright",
		Short: "Household retirement projection calculator",
		Long: `Projects a household's retirement year by year: Social Security, account
withdrawals, federal, state and local taxes, and ending balances.`,
		SilenceUsage: true,
	}
	root.PersistentFlags().String("regulatory", "", "Path to a regulatory rules YAML file (default: embedded rules)")
	root.PersistentFlags().Bool("debug", false, "Log engine decisions to stderr")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		compareCmd(),
		serveCmd(),
		tuiCmd(),
		jurisdictionsCmd(),
		runsCmd(),
		versionCmd(),
	)
	return root
}

// loadRules returns the --regulatory rule set, or the embedded rules.
func loadRules(cmd *cobra.Command) (*domain.RegulatoryConfig, error) {
	path, _ := cmd.Flags().GetString("regulatory")
	if path == "" {
		return config.DefaultRegulatory()
	}
	return config.LoadRegulatoryFromFile(path)
}

// newEngine builds a projection engine honoring --regulatory and --debug.
func newEngine(cmd *cobra.Command) (*calculation.ProjectionEngine, error) {
	rules, err := loadRules(cmd)
	if err != nil {
		return nil, err
	}
	engine := calculation.NewProjectionEngine(rules, nil)
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		engine.SetLogger(simpleCLILogger{})
	}
	return engine, nil
}

// loadConfig parses a household file against the engine's rule set.
func loadConfig(engine *calculation.ProjectionEngine, path string) (*domain.Configuration, error) {
	return config.NewInputParserWithRules(engine.Rules).LoadFromFile(path)
}

// openStore selects Postgres when DATABASE_URL is set, otherwise SQLite.
func openStore(ctx context.Context) (store.Store, error) {
	if url := os.Getenv(envDatabaseURL); url != "" {
		return postgres.New(ctx, url)
	}
	path := os.Getenv(envDB)
	if path == "" {
		path = defaultDBPath
	}
	return sqlite.New(path)
}

func main() {
	// a missing .env is normal
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
