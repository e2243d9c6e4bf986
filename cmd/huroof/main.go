// Package main provides the CLI entrypoint for huroof.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/huroofhub/huroof/internal/audio"
	"github.com/huroofhub/huroof/internal/config"
	"github.com/huroofhub/huroof/internal/logging"
	"github.com/huroofhub/huroof/internal/model"
	"github.com/huroofhub/huroof/internal/quran"
	"github.com/huroofhub/huroof/internal/report"
	"github.com/huroofhub/huroof/internal/session"
	"github.com/huroofhub/huroof/internal/tui"
)

const commandTimeout = time.Minute

var (
	practiceChapter     int
	practiceVerse       int
	practiceAPIURL      string
	practiceArabic      string
	practiceTranslation string
	practiceTimeout     time.Duration
	practiceSettle      time.Duration
	practiceSkip        time.Duration
	practicePlayer      string

	logLevel string
	logFile  string

	verseNumber int
	verseRandom bool
	verseColor  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "huroof",
		Short:         "Quran letter recitation trainer",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runPracticeCmd,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&practiceAPIURL, "api-url", quran.DefaultBaseURL, "Quran API base URL")
	flags.StringVar(&practiceArabic, "arabic-edition", quran.DefaultArabicEdition, "edition providing verse text and audio")
	flags.StringVar(&practiceTranslation, "translation-edition", quran.DefaultTranslationEdition, "translation edition (empty disables translations)")
	flags.DurationVar(&practiceTimeout, "timeout", quran.DefaultTimeout, "per-request HTTP timeout")
	flags.StringVar(&logLevel, "log-level", logging.DefaultLevel, "log level (debug, info, warn, error)")
	flags.StringVar(&logFile, "log-file", config.DefaultLogPath(), "log file path")

	rootCmd.Flags().IntVar(&practiceChapter, "chapter", 0, "chapter to practice (1-114); opens the chapter picker when unset")
	rootCmd.Flags().IntVar(&practiceVerse, "verse", 1, "verse number to start from")
	rootCmd.Flags().DurationVar(&practiceSettle, "settle-delay", session.DefaultSettleDelay, "pause after a completed verse")
	rootCmd.Flags().DurationVar(&practiceSkip, "skip-delay", session.DefaultSkipDelay, "pause after a skipped verse")
	rootCmd.Flags().StringVar(&practicePlayer, "player", "", "audio player command (detected when empty)")

	rootCmd.AddCommand(newChaptersCmd())
	rootCmd.AddCommand(newVerseCmd())
	rootCmd.AddCommand(newConfigCmd())

	return rootCmd
}

func runPracticeCmd(cmd *cobra.Command, _ []string) error {
	fileCfg, err := loadFileConfig(cmd)
	if err != nil {
		return err
	}
	applyIntConfig(cmd, "chapter", &practiceChapter, fileCfg.Practice.Chapter)
	applyStringConfig(cmd, "player", &practicePlayer, fileCfg.Practice.Player)
	if err := applyDurationConfig(cmd, "settle-delay", &practiceSettle, fileCfg.Practice.SettleDelay); err != nil {
		return err
	}
	if err := applyDurationConfig(cmd, "skip-delay", &practiceSkip, fileCfg.Practice.SkipDelay); err != nil {
		return err
	}

	cfg := currentConfig()
	if err := validateConfig(cfg); err != nil {
		return err
	}

	log, closer, err := logging.NewLogger(logLevel, logFile)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)
	log.WithFields(logrus.Fields{
		"chapter": cfg.Chapter,
		"verse":   cfg.Verse,
		"api":     cfg.APIURL,
	}).Info("starting practice")

	player := audio.NewPlayer(cfg.Player, log)
	if !player.Available() {
		log.Info("no audio player found; recitation disabled")
	}

	m := tui.NewModel(tui.Options{
		Config: cfg,
		Data:   quran.NewProvider(newClient(cfg, log), log),
		Player: player,
		Log:    log,
	})
	defer m.Close()

	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func newChaptersCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "chapters",
		Short: "List the chapters of the Quran",
		Args:  cobra.NoArgs,
		RunE:  runChaptersCmd,
	}
}

func runChaptersCmd(cmd *cobra.Command, _ []string) error {
	cfg, log, closer, err := commandSetup(cmd)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	chapters, err := newClient(cfg, log).ListChapters(ctx)
	if err != nil {
		return fmt.Errorf("failed to list chapters: %w", err)
	}
	return report.RenderChapterTable(cmd.OutOrStdout(), chapters)
}

func newVerseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verse <chapter>",
		Short: "Print a verse with its translation",
		Args:  cobra.ExactArgs(1),
		RunE:  runVerseCmd,
	}
	cmd.Flags().IntVar(&verseNumber, "number", 1, "verse number within the chapter")
	cmd.Flags().BoolVar(&verseRandom, "random", false, "pick a random verse")
	cmd.Flags().BoolVar(&verseColor, "color", false, "force colored output")
	cmd.MarkFlagsMutuallyExclusive("number", "random")
	return cmd
}

func runVerseCmd(cmd *cobra.Command, args []string) error {
	chapterID, err := parseChapterArg(args[0])
	if err != nil {
		return err
	}
	cfg, log, closer, err := commandSetup(cmd)
	if err != nil {
		return err
	}
	defer closeQuietly(closer)

	ctx, cancel := context.WithTimeout(cmd.Context(), commandTimeout)
	defer cancel()
	client := newClient(cfg, log)

	ch, err := client.Chapter(ctx, chapterID)
	if err != nil {
		return verseError(chapterID, err)
	}
	var v model.Verse
	if verseRandom {
		v, err = quran.RandomVerse(ch, rand.New(rand.NewSource(time.Now().UnixNano())))
	} else {
		v, err = quran.VerseByNumber(ch, verseNumber)
	}
	if err != nil {
		return verseError(chapterID, err)
	}
	out := cmd.OutOrStdout()
	return report.RenderVerse(out, ch.ChapterSummary, v, report.DefaultOptions(out, verseColor))
}

func parseChapterArg(arg string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("invalid chapter %q", arg)
	}
	if id < 1 || id > quran.ChapterCount {
		return 0, fmt.Errorf("chapter must be between 1 and %d", quran.ChapterCount)
	}
	return id, nil
}

func verseError(chapterID int, err error) error {
	if errors.Is(err, quran.ErrNotFound) {
		if verseRandom {
			return fmt.Errorf("chapter %d not found", chapterID)
		}
		return fmt.Errorf("verse %d:%d not found", chapterID, verseNumber)
	}
	return fmt.Errorf("failed to fetch chapter %d: %w", chapterID, err)
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
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

// loadFileConfig reads the config file and applies the settings shared by all
// commands.
func loadFileConfig(cmd *cobra.Command) (config.FileConfig, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return config.FileConfig{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "api-url", &practiceAPIURL, fileCfg.Practice.APIURL)
	applyStringConfig(cmd, "arabic-edition", &practiceArabic, fileCfg.Practice.ArabicEdition)
	applyStringConfig(cmd, "translation-edition", &practiceTranslation, fileCfg.Practice.TranslationEdition)
	applyStringConfig(cmd, "log-level", &logLevel, fileCfg.Log.Level)
	applyStringConfig(cmd, "log-file", &logFile, fileCfg.Log.File)
	if err := applyDurationConfig(cmd, "timeout", &practiceTimeout, fileCfg.Practice.Timeout); err != nil {
		return config.FileConfig{}, err
	}
	return fileCfg, nil
}

// commandSetup prepares config and logging for the non-interactive commands.
// They fall back to stderr when the log file cannot be opened.
func commandSetup(cmd *cobra.Command) (model.Config, logrus.FieldLogger, io.Closer, error) {
	if _, err := loadFileConfig(cmd); err != nil {
		return model.Config{}, nil, nil, err
	}
	cfg := currentConfig()
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, nil, nil, err
	}
	log, closer, err := logging.NewLogger(logLevel, logFile)
	if err != nil {
		log, closer, err = logging.NewLogger(logLevel, "")
		if err != nil {
			return model.Config{}, nil, nil, err
		}
	}
	return cfg, log, closer, nil
}

func currentConfig() model.Config {
	return model.Config{
		Chapter:            practiceChapter,
		Verse:              practiceVerse,
		APIURL:             practiceAPIURL,
		ArabicEdition:      practiceArabic,
		TranslationEdition: practiceTranslation,
		Timeout:            practiceTimeout,
		SettleDelay:        practiceSettle,
		SkipDelay:          practiceSkip,
		Player:             practicePlayer,
	}
}

func newClient(cfg model.Config, log logrus.FieldLogger) *quran.Client {
	return quran.NewClient(
		quran.WithBaseURL(cfg.APIURL),
		quran.WithEditions(cfg.ArabicEdition, cfg.TranslationEdition),
		quran.WithTimeout(cfg.Timeout),
		quran.WithLogger(log),
	)
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

func applyDurationConfig(cmd *cobra.Command, name string, target *time.Duration, value *string) error {
	if cmd.Flags().Changed(name) {
		return nil
	}
	d, ok, err := config.ParseDuration(name, value)
	if err != nil {
		return err
	}
	if ok {
		*target = d
	}
	return nil
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# huroof configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# chapter = 1                         # Chapter to open on start (1-%d)
# api-url = %q
# arabic-edition = %q          # Verse text and recitation
# translation-edition = %q        # Empty string disables translations
# timeout = %q                       # Per-request HTTP timeout
# settle-delay = %q                # Pause after a completed verse
# skip-delay = %q                  # Pause after a skipped verse
# player = "mpv --no-video --really-quiet"

[log]
# level = %q
# file = %q
`,
		quran.ChapterCount,
		quran.DefaultBaseURL,
		quran.DefaultArabicEdition,
		quran.DefaultTranslationEdition,
		quran.DefaultTimeout,
		session.DefaultSettleDelay,
		session.DefaultSkipDelay,
		logging.DefaultLevel,
		config.DefaultLogPath(),
	)
}

func validateConfig(cfg model.Config) error {
	if cfg.Chapter < 0 || cfg.Chapter > quran.ChapterCount {
		return fmt.Errorf("--chapter must be between 1 and %d", quran.ChapterCount)
	}
	if cfg.Verse < 1 {
		return fmt.Errorf("--verse must be >= 1")
	}
	if strings.TrimSpace(cfg.APIURL) == "" {
		return fmt.Errorf("--api-url must not be empty")
	}
	if strings.TrimSpace(cfg.ArabicEdition) == "" {
		return fmt.Errorf("--arabic-edition must not be empty")
	}
	if cfg.Timeout <= 0 {
		return fmt.Errorf("--timeout must be > 0")
	}
	if cfg.SettleDelay < 0 || cfg.SkipDelay < 0 {
		return fmt.Errorf("delays must not be negative")
	}
	return nil
}

func closeQuietly(c io.Closer) {
	if c == nil {
		return
	}
	if err := c.Close(); err != nil {
		// Best-effort report to stderr.
		_, _ = fmt.Fprintf(os.Stderr, "failed to close log: %v\n", err)
	}
}
