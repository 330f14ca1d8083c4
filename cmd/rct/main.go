// Package main provides the CLI entrypoint for rct.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/sin1227488801/rct/internal/config"
	"github.com/sin1227488801/rct/internal/model"
	"github.com/sin1227488801/rct/internal/snippet"
	"github.com/sin1227488801/rct/internal/stats"
	"github.com/sin1227488801/rct/internal/statsui"
	"github.com/sin1227488801/rct/internal/store"
	"github.com/sin1227488801/rct/internal/tui"
	"github.com/sin1227488801/rct/internal/typing"
)

const (
	defaultUser        = "local"
	defaultLang        = "go"
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 50
	defaultCurveWindow = 10
)

var (
	practiceUser       string
	practiceLang       string
	practiceFocusWeak  bool
	practiceWeakFactor float64
	practiceWeakWindow int

	statsUser        string
	statsLang        string
	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsQualityOnly bool
	statsPlain       bool

	booksAddLang string
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "rct",
		Short:         "Code typing trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	rootCmd.Flags().StringVar(&practiceUser, "user", defaultUser, "user id for recorded attempts")
	rootCmd.Flags().StringVar(&practiceLang, "lang", defaultLang, "language book to practice")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward weak snippets")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak snippets")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent attempts to compute weak snippets")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newStatsCmd())
	rootCmd.AddCommand(newBooksCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "user", &practiceUser, fileCfg.Practice.User)
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)

	cfg := model.PracticeConfig{
		UserID:     practiceUser,
		Lang:       practiceLang,
		FocusWeak:  practiceFocusWeak,
		WeakFactor: practiceWeakFactor,
		WeakWindow: practiceWeakWindow,
	}
	if err := validatePracticeConfig(cfg); err != nil {
		return err
	}

	bookPath := config.DefaultBookPath(cfg.Lang)
	items, err := snippet.LoadBook(bookPath, cfg.Lang)
	if err != nil {
		return bookLoadError(cfg.Lang, bookPath, err)
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	var weights map[string]float64
	if cfg.FocusWeak {
		aggs, err := st.ListSnippetAggregates(context.Background(), cfg.WeakWindow, cfg.UserID, cfg.Lang)
		if err != nil {
			logErrf("failed to load weak snippets: %v\n", err)
		} else {
			weights = stats.SnippetWeights(aggs, cfg.WeakFactor)
			if len(weights) == 0 {
				logErrln("no stats available for weak-snippet focus yet; picking uniformly")
			}
		}
	}

	m, err := tui.NewModel(cfg, st, items, weights, qualityPolicy(fileCfg), statsOptions(fileCfg))
	if err != nil {
		return err
	}
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return m.Err()
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsUser, "user", defaultUser, "user filter")
	cmd.Flags().StringVar(&statsLang, "lang", "", "language filter")
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N attempts")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().BoolVar(&statsQualityOnly, "quality-only", false, "keep only attempts that meet the quality standard")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the TUI")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	applyIntConfig(cmd, "curve-window", &statsCurveWindow, fileCfg.Stats.CurveWindow)

	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}

	filter := model.StatsFilter{
		UserID:      statsUser,
		Lang:        statsLang,
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		QualityOnly: statsQualityOnly,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logErrf("failed to close db: %v\n", cerr)
		}
	}()

	if statsPlain {
		return runPlainStats(cmd.OutOrStdout(), st, filter, statsOptions(fileCfg))
	}

	m := statsui.NewModel(st, filter, statsOptions(fileCfg))
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
}

func runPlainStats(w io.Writer, st *store.Store, filter model.StatsFilter, gap stats.Options) error {
	report, err := stats.BuildReport(context.Background(), st, filter, gap)
	if err != nil {
		return fmt.Errorf("failed to build report: %w", err)
	}
	if err := stats.RenderSummary(w, report.Summary); err != nil {
		return fmt.Errorf("failed to render summary: %w", err)
	}
	if report.Summary.TotalAttempts == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if err := stats.RenderCurves(w, report, filter.CurveWindow, stats.TerminalWidth()); err != nil {
		return fmt.Errorf("failed to render curves: %w", err)
	}
	return nil
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newBooksCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "books",
		Short: "List snippet books",
		Args:  cobra.NoArgs,
		RunE:  runBooksCmd,
	}
	cmd.AddCommand(newBooksAddCmd())
	return cmd
}

func runBooksCmd(cmd *cobra.Command, _ []string) error {
	booksDir := config.DefaultBooksDir()
	entries, err := os.ReadDir(booksDir)
	if err != nil {
		if os.IsNotExist(err) {
			logErrln("No books found. Import with: rct books add <file> --lang <code>")
			return fmt.Errorf("books directory does not exist")
		}
		return fmt.Errorf("failed to read books directory: %w", err)
	}
	langs := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".txt") {
			continue
		}
		langs = append(langs, strings.TrimSuffix(entry.Name(), ".txt"))
	}
	if len(langs) == 0 {
		logErrln("No books found. Import with: rct books add <file> --lang <code>")
		return fmt.Errorf("no books found")
	}
	sort.Strings(langs)
	for _, lang := range langs {
		path := config.DefaultBookPath(lang)
		items, err := snippet.LoadBook(path, lang)
		if err != nil {
			logErrf("failed to load book %s: %v\n", lang, err)
			continue
		}
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%s\t%d snippets\n", lang, len(items)); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newBooksAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <file>",
		Short: "Import snippets into a book",
		Args:  cobra.ExactArgs(1),
		RunE:  runBooksAddCmd,
	}
	cmd.Flags().StringVar(&booksAddLang, "lang", defaultLang, "language book to import into")
	return cmd
}

func runBooksAddCmd(_ *cobra.Command, args []string) error {
	src := args[0]
	lang := strings.TrimSpace(strings.ToLower(booksAddLang))
	if lang == "" {
		return fmt.Errorf("--lang must not be empty")
	}

	// Parse first so a malformed file never lands in the book.
	items, err := snippet.LoadBook(src, lang)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", src, err)
	}
	data, err := os.ReadFile(src)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", src, err)
	}

	dest := config.DefaultBookPath(lang)
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("failed to create books directory: %w", err)
	}
	f, err := os.OpenFile(dest, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open book: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logErrf("failed to close book: %v\n", cerr)
		}
	}()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("failed to stat book: %w", err)
	}
	if info.Size() > 0 {
		if _, err := fmt.Fprintf(f, "\n%s\n", snippet.Separator); err != nil {
			return fmt.Errorf("failed to write book: %w", err)
		}
	}
	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write book: %w", err)
	}
	logErrf("Imported %d snippets into %s\n", len(items), dest)
	return nil
}

func qualityPolicy(fileCfg config.FileConfig) typing.QualityPolicy {
	policy := typing.DefaultQualityPolicy()
	if fileCfg.Quality.MinAccuracy != nil {
		policy.MinAccuracy = *fileCfg.Quality.MinAccuracy
	}
	if fileCfg.Quality.ReasonableMinSeconds != nil {
		policy.ReasonableMin = time.Duration(*fileCfg.Quality.ReasonableMinSeconds) * time.Second
	}
	if fileCfg.Quality.ReasonableMaxSeconds != nil {
		policy.ReasonableMax = time.Duration(*fileCfg.Quality.ReasonableMaxSeconds) * time.Second
	}
	return policy
}

func statsOptions(fileCfg config.FileConfig) stats.Options {
	opts := stats.Options{}
	if fileCfg.Stats.SessionGapMinutes != nil {
		opts = stats.SessionGapFromMinutes(*fileCfg.Stats.SessionGapMinutes)
	}
	opts.Quality = qualityPolicy(fileCfg)
	return opts
}

func validatePracticeConfig(cfg model.PracticeConfig) error {
	if strings.TrimSpace(cfg.UserID) == "" {
		return fmt.Errorf("--user must not be empty")
	}
	if strings.TrimSpace(cfg.Lang) == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func bookLoadError(lang, path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load snippet book: %v", err),
		fmt.Sprintf("expected book at: %s", path),
		fmt.Sprintf("language %q has no book yet", lang),
		"List books: rct books",
		fmt.Sprintf("Import: rct books add <file> --lang %s", lang),
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# rct configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# user = %q            # User id for recorded attempts
# lang = %q              # Language book to practice
# focus-weak = false     # Bias practice toward weak snippets
# weak-factor = %.1f     # Weight factor for weak snippets
# weak-window = %d       # Number of recent attempts to compute weak snippets

[stats]
# session-gap-minutes = %d  # Gap that splits practice sessions
# curve-window = %d         # Moving average window for curves

[quality]
# min-accuracy = %.1f          # Accuracy threshold for quality attempts
# reasonable-min-seconds = %d  # Shortest duration counted as a real attempt
# reasonable-max-seconds = %d  # Durations at or above this are discarded
`,
		defaultUser,
		defaultLang,
		defaultWeakFactor,
		defaultWeakWindow,
		int(stats.DefaultSessionGap/time.Minute),
		defaultCurveWindow,
		typing.DefaultMinAccuracy,
		int(typing.DefaultReasonableMin/time.Second),
		int(typing.DefaultReasonableMax/time.Second),
	)
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}

func logErrln(args ...any) {
	if _, err := fmt.Fprintln(os.Stderr, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
