// Package main provides the CLI entrypoint for telaffuz.
package main

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/telaffuz/internal/audio"
	"github.com/verte-zerg/telaffuz/internal/config"
	"github.com/verte-zerg/telaffuz/internal/logging"
	"github.com/verte-zerg/telaffuz/internal/model"
	"github.com/verte-zerg/telaffuz/internal/pronounce"
	"github.com/verte-zerg/telaffuz/internal/recorder"
	"github.com/verte-zerg/telaffuz/internal/sentences"
	"github.com/verte-zerg/telaffuz/internal/session"
	"github.com/verte-zerg/telaffuz/internal/speech"
	"github.com/verte-zerg/telaffuz/internal/stats"
	"github.com/verte-zerg/telaffuz/internal/statsui"
	"github.com/verte-zerg/telaffuz/internal/store"
	"github.com/verte-zerg/telaffuz/internal/tui"
)

const (
	defaultWeakTop     = 3
	defaultWeakFactor  = 2.0
	defaultWeakWindow  = 20
	defaultMaxSeconds  = 15.0
	defaultCurveWindow = 10
)

var (
	logLevel  string
	logFormat string
	logger    zerolog.Logger
	fileCfg   config.FileConfig

	practiceModel      string
	practiceSentences  string
	practiceSave       bool
	practiceSampleRate int
	practiceMaxSeconds float64
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64
	practiceWeakWindow int

	statsSince       string
	statsLast        int
	statsCurveWindow int
	statsSource      string
	statsPlain       bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:               "telaffuz",
		Short:             "Turkish pronunciation trainer",
		SilenceUsage:      true,
		SilenceErrors:     false,
		PersistentPreRunE: setupCmd,
		RunE:              runPracticeCmd,
	}

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", logging.DefaultFormat, "log format (console, plain, json)")

	rootCmd.Flags().StringVar(&practiceModel, "model", config.DefaultModelPath(), "speech model directory")
	rootCmd.Flags().StringVar(&practiceSentences, "sentences", config.DefaultSentencesPath(), "sentence list, one per line (built-in list when missing)")
	rootCmd.Flags().BoolVar(&practiceSave, "save", true, "store results in the stats database")
	rootCmd.Flags().IntVar(&practiceSampleRate, "sample-rate", recorder.DefaultSampleRate, "microphone sample rate in Hz")
	rootCmd.Flags().Float64Var(&practiceMaxSeconds, "max-seconds", defaultMaxSeconds, "maximum length of one take")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias practice toward weak vowels")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak vowels to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak vowels")
	rootCmd.Flags().IntVar(&practiceWeakWindow, "weak-window", defaultWeakWindow, "number of recent sessions to compute weak vowels")

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newSentencesCmd())
	rootCmd.AddCommand(newStatsCmd())

	return rootCmd
}

func setupCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	fileCfg = cfg
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-format", &logFormat, fileCfg.Log.Format)
	logger = logging.New(logLevel, logFormat, os.Stderr)
	return nil
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "model", &practiceModel, fileCfg.Analysis.Model)
	applyBoolConfig(cmd, "save", &practiceSave, fileCfg.Analysis.Save)
	applyStringConfig(cmd, "sentences", &practiceSentences, fileCfg.Practice.Sentences)
	applyIntConfig(cmd, "sample-rate", &practiceSampleRate, fileCfg.Practice.SampleRate)
	applyFloatConfig(cmd, "max-seconds", &practiceMaxSeconds, fileCfg.Practice.MaxSeconds)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)
	applyIntConfig(cmd, "weak-window", &practiceWeakWindow, fileCfg.Practice.WeakWindow)

	cfg := model.Config{
		ModelPath:     practiceModel,
		SentencesPath: practiceSentences,
		Save:          practiceSave,
		SampleRate:    practiceSampleRate,
		MaxSeconds:    practiceMaxSeconds,
		FocusWeak:     practiceFocusWeak,
		WeakTop:       practiceWeakTop,
		WeakFactor:    practiceWeakFactor,
		WeakWindow:    practiceWeakWindow,
	}
	if err := validateConfig(cfg); err != nil {
		return err
	}

	list, err := sentences.LoadOrDefault(cfg.SentencesPath)
	if err != nil {
		return fmt.Errorf("failed to load sentences from %s: %w", cfg.SentencesPath, err)
	}

	recognizer, err := speech.NewVosk(cfg.ModelPath)
	if err != nil {
		return modelLoadError(cfg.ModelPath, err)
	}
	defer recognizer.Close()

	rec, err := recorder.New(cfg.SampleRate, cfg.MaxSeconds)
	if err != nil {
		return fmt.Errorf("failed to open microphone: %w", err)
	}
	defer func() {
		if cerr := rec.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("failed to close audio device")
		}
	}()

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	runner := &session.Runner{
		Analyzer:    pronounce.NewAnalyzer(audio.WAVLoader{}, pronounce.WithLogger(logger)),
		Transcriber: recognizer,
		Log:         logger,
	}
	if cfg.Save {
		runner.Store = st
	}

	weakSet := map[rune]struct{}{}
	if cfg.FocusWeak {
		aggs, err := st.GetWeakPhonemes(context.Background(), cfg.WeakWindow)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to load weak vowels")
		} else {
			weakSet = stats.SelectWeakPhonemes(aggs, cfg.WeakTop)
			if len(weakSet) == 0 {
				logger.Info().Msg("no stats available for weak-vowel focus yet; picking sentences uniformly")
			}
		}
	}

	m := tui.NewModel(tui.Options{
		Config:        cfg,
		Runner:        runner,
		Capture:       rec,
		Sentences:     list,
		WeakSet:       weakSet,
		RecordingPath: config.RecordingPath,
		Log:           logger,
	})
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
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

func newSentencesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentences",
		Short: "List practice sentences",
		Args:  cobra.NoArgs,
		RunE:  runSentencesCmd,
	}
	cmd.Flags().StringVar(&practiceSentences, "sentences", config.DefaultSentencesPath(), "sentence list, one per line (built-in list when missing)")
	return cmd
}

func runSentencesCmd(cmd *cobra.Command, _ []string) error {
	applyStringConfig(cmd, "sentences", &practiceSentences, fileCfg.Practice.Sentences)
	list, err := sentences.LoadOrDefault(practiceSentences)
	if err != nil {
		return fmt.Errorf("failed to load sentences from %s: %w", practiceSentences, err)
	}
	for i, sentence := range list {
		if _, err := fmt.Fprintf(cmd.OutOrStdout(), "%3d  %s\n", i+1, sentence); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show stats",
		Args:  cobra.NoArgs,
		RunE:  runStatsCmd,
	}
	cmd.Flags().StringVar(&statsSince, "since", "", "start date (YYYY-MM-DD)")
	cmd.Flags().IntVar(&statsLast, "last", 0, "limit to last N sessions")
	cmd.Flags().IntVar(&statsCurveWindow, "curve-window", defaultCurveWindow, "moving average window")
	cmd.Flags().StringVar(&statsSource, "source", "", "session source filter (practice, analyze)")
	cmd.Flags().BoolVar(&statsPlain, "plain", false, "print a text report instead of the interactive view")
	return cmd
}

func runStatsCmd(cmd *cobra.Command, _ []string) error {
	var sinceTime *time.Time
	if statsSince != "" {
		parsed, err := time.ParseInLocation("2006-01-02", statsSince, time.Local)
		if err != nil {
			return fmt.Errorf("invalid --since value: %w", err)
		}
		sinceTime = &parsed
	}
	switch statsSource {
	case "", model.SourcePractice, model.SourceAnalyze:
	default:
		return fmt.Errorf("--source must be %q or %q", model.SourcePractice, model.SourceAnalyze)
	}

	cfg := model.StatsConfig{
		Since:       sinceTime,
		Last:        statsLast,
		CurveWindow: statsCurveWindow,
		Source:      statsSource,
	}

	st, err := store.Open(config.DefaultDBPath())
	if err != nil {
		return fmt.Errorf("failed to open db: %w", err)
	}
	defer func() {
		if cerr := st.Close(); cerr != nil {
			logger.Warn().Err(cerr).Msg("failed to close db")
		}
	}()

	if statsPlain || !term.IsTerminal(int(os.Stdout.Fd())) {
		report, err := stats.BuildReport(context.Background(), st, cfg)
		if err != nil {
			return fmt.Errorf("failed to build report: %w", err)
		}
		return report.Render(cmd.OutOrStdout(), cfg)
	}

	m := statsui.NewModel(statsui.StoreLoader(st), cfg)
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run stats TUI: %w", err)
	}
	return nil
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
	return fmt.Sprintf(`# telaffuz configuration
# Uncomment a value to enable it. CLI flags override config values.

[analysis]
# model = %q   # Speech model directory
# save = true             # Store results in the stats database

[practice]
# sentences = %q
# sample-rate = %d        # Microphone sample rate in Hz
# max-seconds = %.1f       # Maximum length of one take
# focus-weak = false      # Bias practice toward weak vowels
# weak-top = %d            # Number of weak vowels to focus on
# weak-factor = %.1f      # Weight factor for weak vowels
# weak-window = %d        # Number of recent sessions to compute weak vowels

[log]
# level = %q             # debug, info, warn, error
# format = %q         # console, plain, json
`,
		config.DefaultModelPath(),
		config.DefaultSentencesPath(),
		recorder.DefaultSampleRate,
		defaultMaxSeconds,
		defaultWeakTop,
		defaultWeakFactor,
		defaultWeakWindow,
		logging.DefaultLevel,
		logging.DefaultFormat,
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.SampleRate <= 0 {
		return fmt.Errorf("--sample-rate must be > 0")
	}
	if cfg.MaxSeconds <= 0 {
		return fmt.Errorf("--max-seconds must be > 0")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	if cfg.WeakWindow < 0 {
		return fmt.Errorf("--weak-window must be >= 0")
	}
	return nil
}

func modelLoadError(path string, err error) error {
	lines := []string{
		fmt.Sprintf("failed to load speech model: %v", err),
		fmt.Sprintf("expected a Vosk model directory at: %s", path),
		"Download a Turkish model from https://alphacephei.com/vosk/models and unpack it there,",
		"or pass --model <dir>. To analyze without a model use: telaffuz analyze --recognized <text>",
	}
	return fmt.Errorf("%s", strings.Join(lines, "\n"))
}
