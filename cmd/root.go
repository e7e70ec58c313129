package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/caseguide/internal/app"
	"github.com/abhisek/caseguide/internal/clip"
	"github.com/abhisek/caseguide/internal/config"
	"github.com/abhisek/caseguide/internal/content"
	"github.com/abhisek/caseguide/internal/logging"
	"github.com/abhisek/caseguide/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "caseguide",
	Short: "Write your partner case study with AI",
	Long:  "caseguide walks a Shopify partner through writing a case study, one step at a time, with prompts to paste into an AI tool.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("content", "", "Path to a guide content YAML file (overrides CASEGUIDE_CONTENT)")
	pf.String("journal-path", "", "Path to the journal database (overrides CASEGUIDE_JOURNAL_PATH)")
	pf.String("log-file", "", "Write logs to this file (overrides CASEGUIDE_LOG_FILE)")

	rootCmd.Flags().Bool("watch", false, "Reload the content file when it changes")
	rootCmd.Flags().Bool("journal", false, "Record step transitions in the journal")

	rootCmd.AddCommand(stepsCmd)
	rootCmd.AddCommand(previewCmd)
	rootCmd.AddCommand(worksheetCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the environment and lets explicitly set flags win.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("content") {
		cfg.ContentPath, _ = flags.GetString("content")
	}
	if flags.Changed("journal-path") {
		cfg.JournalPath, _ = flags.GetString("journal-path")
	}
	if flags.Changed("log-file") {
		cfg.LogFile, _ = flags.GetString("log-file")
	}
	if f := flags.Lookup("watch"); f != nil && f.Changed {
		cfg.Watch, _ = flags.GetBool("watch")
	}
	if f := flags.Lookup("journal"); f != nil && f.Changed {
		cfg.Journal, _ = flags.GetBool("journal")
	}
	return cfg, nil
}

// loadContent returns the guide from cfg.ContentPath, or the embedded guide.
func loadContent(cfg config.Config) (*content.Guide, error) {
	if cfg.ContentPath == "" {
		return content.Default(), nil
	}
	g, err := content.Load(cfg.ContentPath)
	if err != nil {
		return nil, fmt.Errorf("load content: %w", err)
	}
	return g, nil
}

// openJournal opens the journal database named by cfg.
func openJournal(cfg config.Config) (*store.Store, error) {
	path, err := store.DefaultDBPath(cfg.JournalPath)
	if err != nil {
		return nil, fmt.Errorf("resolve journal path: %w", err)
	}
	st, err := store.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open journal: %w", err)
	}
	return st, nil
}

// runApp loads configuration and content, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	logger, closer, err := logging.New(cfg.LogFile, cfg.LogLevel)
	if err != nil {
		return fmt.Errorf("open log: %w", err)
	}
	defer closer.Close()

	guide, err := loadContent(cfg)
	if err != nil {
		return err
	}

	opts := app.Options{
		Content:       guide,
		ContentPath:   cfg.ContentPath,
		Watch:         cfg.Watch,
		Copier:        clip.System{},
		Logger:        logger,
		MarkdownStyle: cfg.MarkdownStyle,
		DownloadDir:   cfg.DownloadDir,
		ToastDuration: cfg.ToastDuration,
	}

	if cfg.Journal {
		st, err := openJournal(cfg)
		if err != nil {
			// The guide works without the journal.
			fmt.Fprintln(os.Stderr, "Journal unavailable:", err)
		} else {
			defer st.Close()
			opts.Journal = st.JournalRepo()
		}
	}

	logger.Info("Starting guide.", "content", contentSource(cfg), "watch", cfg.Watch, "journal", opts.Journal != nil)
	return app.Run(cmd.Context(), opts)
}

func contentSource(cfg config.Config) string {
	if cfg.ContentPath == "" {
		return "embedded"
	}
	return cfg.ContentPath
}
