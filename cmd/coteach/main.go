// coteach is a classroom feedback loop: students ask questions in a chat
// interface, each question is classified into a subject-area topic and
// persisted, and instructors read an aggregated dashboard of the learning
// gaps.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"coteach/internal/config"
	"coteach/internal/logging"
	"coteach/internal/service"
	"coteach/internal/store"
	"coteach/internal/tui"
)

var (
	// Global flags
	cfgPath string
	dbPath  string
	verbose bool

	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "coteach",
	Short: "coteach - classroom feedback loop with topic insights",
	Long: `coteach collects student questions, classifies each into a coarse
subject-area topic and keeps a durable log, so instructors can see where the
class is struggling.

Run without arguments to start the student chat interface. Use "coteach
dashboard" for the faculty view.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// .env is optional; real environment always wins.
		_ = godotenv.Load()

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return err
		}
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err = logging.New(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.File)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: launch the student chat.
		return runChat(cmd, args)
	},
}

// openService opens the store and wires the service. The returned func
// closes the store.
func openService() (*service.Service, func(), error) {
	st, err := store.Open(cfg.Database.Path, logger.Named("store"))
	if err != nil {
		return nil, nil, err
	}
	svc := service.New(st, service.Options{
		Rules:           cfg.Classifier.Rules,
		UrgencyKeywords: cfg.Classifier.UrgencyKeywords,
		Recommendations: cfg.Recommendations,
		PageSize:        cfg.Dashboard.PageSize,
	}, logger.Named("service"))
	return svc, func() { _ = st.Close() }, nil
}

func runChat(cmd *cobra.Command, args []string) error {
	svc, closeStore, err := openService()
	if err != nil {
		return err
	}
	defer closeStore()
	return tui.RunChat(svc)
}

func main() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file (default: "+config.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "database file (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(dashboardCmd)
	rootCmd.AddCommand(logCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statusCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
