// jsonloc: batch translation of i18next JSON localization files with
// Google Cloud Translation.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/minios-linux/jsonloc/config"
	"github.com/minios-linux/jsonloc/discover"
	"github.com/minios-linux/jsonloc/i18n"
	"github.com/minios-linux/jsonloc/langmeta"
	"github.com/minios-linux/jsonloc/pipeline"
	"github.com/minios-linux/jsonloc/translate"
)

// Version information (set via -ldflags during build)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func logInfo(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.BlueString("[INFO]")+" "+format+"\n", args...)
}

func logSuccess(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.GreenString("[OK]")+" "+format+"\n", args...)
}

func logWarning(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.YellowString("[WARN]")+" "+format+"\n", args...)
}

func logError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, color.RedString("[ERROR]")+" "+format+"\n", args...)
}

// ---------------------------------------------------------------------------
// Global flags
// ---------------------------------------------------------------------------

var (
	rootDir string
	verbose bool
)

// ---------------------------------------------------------------------------
// Root command (translate)
// ---------------------------------------------------------------------------

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "jsonloc",
		Short: i18n.T("Translate i18next JSON files with Google Cloud Translation"),
		Long: `jsonloc: batch translation of i18next JSON localization files.

Every *.json file below the root (excluding node_modules, vendor and
bower_components) is translated into each target language and written
next to the source as <name>.<lang>.json. Only string values are
translated; numbers, booleans, nulls and arrays are copied unchanged.

Configuration is read from .jsonloc.yaml, .env and the environment:
  GOOGLE_PROJECT_ID   Google Cloud project ID
  GOOGLE_API_KEY      API key for Cloud Translation
  SOURCE_LANGUAGE     language of the input files (e.g. en)
  TARGET_LANGUAGES    comma-separated target languages (e.g. fr,de)

Optional:
  JSONLOC_ENDPOINT, JSONLOC_LOCATION, JSONLOC_TIMEOUT, JSONLOC_PROXY,
  JSONLOC_EXCLUDE, JSONLOC_KEEP_GOING

Commands:
  status      Show configuration and the files that would be written
  init        Create a .jsonloc.yaml project file
  version     Show version information`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTranslate(cmd.Context())
		},
	}

	// Global persistent flags, inherited by all subcommands
	root.PersistentFlags().StringVar(&rootDir, "root", ".", "Project root directory")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every translated string and skipped file")

	root.AddCommand(
		newStatusCmd(),
		newInitCmd(),
		newVersionCmd(),
	)

	return root
}

func main() {
	i18n.Init("")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		logError("%v", err)
		stop()
		os.Exit(1)
	}
}

// ---------------------------------------------------------------------------
// version (display version information)
// ---------------------------------------------------------------------------

func newVersionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: i18n.T("Show version information"),
		Long:  `Display version, commit hash, and build date.`,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "jsonloc version %s\n", version)
			fmt.Fprintf(cmd.OutOrStdout(), "  commit:    %s\n", commit)
			fmt.Fprintf(cmd.OutOrStdout(), "  built:     %s\n", date)
		},
	}

	return cmd
}

// ---------------------------------------------------------------------------
// translate (root command action)
// ---------------------------------------------------------------------------

func runTranslate(ctx context.Context) error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}
	if err := cfg.RequireCredentials(); err != nil {
		return err
	}

	logInfo(i18n.T("Source language: %s"), langmeta.Label(cfg.SourceLang))
	logInfo(i18n.T("Target languages: %s"), langLabels(cfg.Languages))

	files, err := discover.Find(cfg.Root, discoverOptions(cfg))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logWarning(i18n.T("No JSON files found in %s"), cfg.Root)
		return nil
	}
	logInfo(i18n.N("Found %d JSON file", "Found %d JSON files", len(files)), len(files))

	client := translate.NewGoogleClient(translate.GoogleConfig{
		ProjectID:  cfg.ProjectID,
		APIKey:     cfg.APIKey,
		SourceLang: cfg.SourceLang,
		Endpoint:   cfg.Endpoint,
		Location:   cfg.Location,
		Proxy:      cfg.Proxy,
		Timeout:    cfg.Timeout,
	})
	adapter := &translate.Adapter{
		Service: client,
		Verbose: verbose,
		OnLog:   logInfo,
		OnError: logError,
	}

	saved := 0
	proc := pipeline.New(adapter, pipeline.Options{
		Languages: cfg.Languages,
		KeepGoing: cfg.KeepGoing,
		OnFile: func(path string) {
			logInfo(i18n.T("Processing file: %s"), path)
		},
		OnLanguage: func(path, lang string, count int) {
			if verbose {
				logInfo(i18n.T("  %s: %d strings"), langmeta.Label(lang), count)
			}
		},
		OnSaved: func(outPath string) {
			saved++
			logSuccess(i18n.T("Translated file saved: %s"), outPath)
		},
		OnSkip: func(path string, err error) {
			logWarning(i18n.T("Skipping %s: %v"), path, err)
		},
	})

	if err := proc.Run(ctx, files); err != nil {
		if errors.Is(err, context.Canceled) {
			return errors.New(i18n.T("interrupted"))
		}
		return err
	}

	logSuccess(i18n.T("Done: %d files written"), saved)
	return nil
}

func discoverOptions(cfg *config.Config) discover.Options {
	return discover.Options{
		Exclude:     cfg.Exclude,
		OutputLangs: cfg.Languages,
		OnSkip: func(path string) {
			if verbose {
				logInfo(i18n.T("Skipping generated file: %s"), path)
			}
		},
	}
}

// ---------------------------------------------------------------------------
// status (read-only: configuration + planned outputs)
// ---------------------------------------------------------------------------

func newStatusCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: i18n.T("Show configuration and the files that would be written"),
		Long: `Show the loaded configuration, the discovered JSON files and the
output file each of them produces per target language. Existing outputs
(which will be overwritten) are marked. Does not modify any files and
does not contact the translation API.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus()
		},
	}

	return cmd
}

func runStatus() error {
	cfg, err := config.Load(rootDir)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "\n%s\n", color.BlueString(i18n.T("Configuration")))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	absRoot, _ := filepath.Abs(cfg.Root)
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Root:"), absRoot)
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Project:"), orNone(cfg.ProjectID))
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("API key:"), setOrNot(cfg.APIKey != ""))
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Source:"), langmeta.Label(cfg.SourceLang))
	fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Targets:"), langLabels(cfg.Languages))
	if cfg.ProjectFile != "" {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Config file:"), cfg.ProjectFile)
	}
	if cfg.EnvFile != "" {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Env file:"), cfg.EnvFile)
	}
	if cfg.KeepGoing {
		fmt.Fprintf(os.Stderr, "  %-12s %s\n", i18n.T("Keep going:"), i18n.T("yes"))
	}
	fmt.Fprintln(os.Stderr)

	files, err := discover.Find(cfg.Root, discoverOptions(cfg))
	if err != nil {
		return err
	}
	if len(files) == 0 {
		logInfo(i18n.T("No JSON files found in %s"), cfg.Root)
		return nil
	}

	fmt.Fprintf(os.Stderr, "%s\n", color.BlueString(i18n.T("Files")))
	fmt.Fprintln(os.Stderr, strings.Repeat("─", 60))

	existing := 0
	for _, f := range files {
		fmt.Fprintf(os.Stderr, "  %s\n", f)
		for _, lang := range cfg.Languages {
			out := pipeline.OutputPath(f, lang)
			mark := color.HiBlackString("+")
			if fileExists(out) {
				mark = color.YellowString("~")
				existing++
			}
			fmt.Fprintf(os.Stderr, "    %s %s\n", mark, out)
		}
	}
	fmt.Fprintln(os.Stderr)

	total := len(files) * len(cfg.Languages)
	logInfo(i18n.T("%d files, %d outputs (%d new, %d to overwrite)"),
		len(files), total, total-existing, existing)
	return nil
}

// ---------------------------------------------------------------------------
// init (create .jsonloc.yaml)
// ---------------------------------------------------------------------------

func newInitCmd() *cobra.Command {
	var (
		sourceLang string
		languages  string
		force      bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: i18n.T("Create a .jsonloc.yaml project file"),
		Long: `Write a .jsonloc.yaml file in the project root with the source and
target languages. Credentials are never written to this file; keep them
in the environment or in .env.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(sourceLang, languages, force)
		},
	}

	cmd.Flags().StringVar(&sourceLang, "source", "en", "Source language code")
	cmd.Flags().StringVar(&languages, "languages", "", "Comma-separated target languages (e.g. fr,de,es)")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing .jsonloc.yaml")

	return cmd
}

func runInit(sourceLang, languages string, force bool) error {
	path := filepath.Join(rootDir, config.ProjectFileName)
	if fileExists(path) && !force {
		return fmt.Errorf(i18n.T("%s already exists (use --force to overwrite)"), path)
	}

	pf := &config.ProjectFile{
		SourceLang: strings.TrimSpace(sourceLang),
		Languages:  config.SplitList(languages),
	}
	if err := pf.Save(rootDir); err != nil {
		return err
	}
	logSuccess(i18n.T("Created %s"), path)
	if len(pf.Languages) == 0 {
		logInfo(i18n.T("No target languages set; add them to %s or set TARGET_LANGUAGES"), config.ProjectFileName)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Shared helpers
// ---------------------------------------------------------------------------

// fileExists returns true if the file exists and is not a directory.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// langLabels formats languages with their native names, comma-separated.
func langLabels(langs []string) string {
	labels := make([]string, len(langs))
	for i, l := range langs {
		labels[i] = langmeta.Label(l)
	}
	return strings.Join(labels, ", ")
}

func orNone(s string) string {
	if s == "" {
		return color.HiBlackString(i18n.T("(not set)"))
	}
	return s
}

func setOrNot(ok bool) string {
	if ok {
		return color.GreenString(i18n.T("set"))
	}
	return color.HiBlackString(i18n.T("(not set)"))
}
