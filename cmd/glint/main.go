// Command glint checks and replays glint pages headlessly.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/zoobzio/capitan"
	"github.com/zoobzio/glint"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Global flags
	verbose    bool
	configPath string

	// Logger
	logger = zap.NewNop()
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "glint",
	Short: "Validate and replay interactive pages without a browser",
	Long: `glint runs the page behaviour (live field validation, notices, loading
buttons, status badges, progress and points) against an HTML file using an
in-memory DOM and a simulated clock.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config := zap.NewProductionConfig()
		if verbose {
			config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = config.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		hookSignals(logger)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		capitan.Shutdown()
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Page config file (YAML or JSON)")

	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(simulateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig returns the --config file, or the defaults when none is given.
func loadConfig() (glint.Config, error) {
	if configPath == "" {
		return glint.DefaultConfig(), nil
	}
	cfg, err := glint.LoadConfigFile(configPath)
	if err != nil {
		return glint.Config{}, err
	}
	logger.Debug("Loaded config", zap.String("path", configPath))
	return cfg, nil
}

// hookSignals routes glint events into the logger. Page events are debug
// noise; reload problems are warnings.
func hookSignals(l *zap.Logger) {
	debug := func(msg string) func(context.Context, *capitan.Event) {
		return func(_ context.Context, e *capitan.Event) {
			l.Debug(msg, eventFields(e)...)
		}
	}
	warn := func(msg string) func(context.Context, *capitan.Event) {
		return func(_ context.Context, e *capitan.Event) {
			l.Warn(msg, eventFields(e)...)
		}
	}

	capitan.Hook(glint.PageBootstrapped, debug("Page bootstrapped"))
	capitan.Hook(glint.FieldValidated, debug("Field validated"))
	capitan.Hook(glint.DebounceFired, debug("Debounced call fired"))
	capitan.Hook(glint.NoticeShown, debug("Notice shown"))
	capitan.Hook(glint.NoticeDismissing, debug("Notice dismissing"))
	capitan.Hook(glint.NoticeRemoved, debug("Notice removed"))
	capitan.Hook(glint.LoadingStarted, debug("Loading started"))
	capitan.Hook(glint.LoadingRestored, debug("Loading restored"))
	capitan.Hook(glint.RippleCreated, debug("Ripple created"))
	capitan.Hook(glint.StatusStarted, debug("Status transition started"))
	capitan.Hook(glint.StatusApplied, debug("Status applied"))
	capitan.Hook(glint.ProgressShown, debug("Progress shown"))
	capitan.Hook(glint.ProgressHidden, debug("Progress hidden"))
	capitan.Hook(glint.PointsUpdated, debug("Points updated"))

	capitan.Hook(glint.ReloadStarted, debug("Reload watching"))
	capitan.Hook(glint.ReloadChangeReceived, debug("Config change received"))
	capitan.Hook(glint.ReloadStopped, debug("Reload stopped"))
	capitan.Hook(glint.ReloadStateChanged, func(_ context.Context, e *capitan.Event) {
		l.Info("Reload state changed", eventFields(e)...)
	})
	capitan.Hook(glint.ReloadApplySucceeded, func(_ context.Context, e *capitan.Event) {
		l.Info("Config applied", eventFields(e)...)
	})
	capitan.Hook(glint.ReloadDecodeFailed, warn("Config decode failed"))
	capitan.Hook(glint.ReloadValidationFailed, warn("Config rejected"))
	capitan.Hook(glint.ReloadApplyFailed, warn("Config apply failed"))
}

// eventFields converts the glint keys present on e into zap fields.
func eventFields(e *capitan.Event) []zap.Field {
	var fields []zap.Field
	str := func(name string, v string, ok bool) {
		if ok {
			fields = append(fields, zap.String(name, v))
		}
	}

	v, ok := glint.KeyField.From(e)
	str("field", v, ok)
	v, ok = glint.KeyKind.From(e)
	str("kind", v, ok)
	v, ok = glint.KeyVerdict.From(e)
	str("verdict", v, ok)
	v, ok = glint.KeyNoticeID.From(e)
	str("notice_id", v, ok)
	v, ok = glint.KeyNoticeKind.From(e)
	str("notice_kind", v, ok)
	v, ok = glint.KeyMessage.From(e)
	str("message", v, ok)
	v, ok = glint.KeyStatus.From(e)
	str("status", v, ok)
	v, ok = glint.KeyProgress.From(e)
	str("progress", v, ok)
	v, ok = glint.KeyState.From(e)
	str("state", v, ok)
	v, ok = glint.KeyOldState.From(e)
	str("old_state", v, ok)
	v, ok = glint.KeyNewState.From(e)
	str("new_state", v, ok)
	v, ok = glint.KeyError.From(e)
	str("error", v, ok)
	v, ok = glint.KeyContentType.From(e)
	str("content_type", v, ok)

	if n, ok := glint.KeyPoints.From(e); ok {
		fields = append(fields, zap.Int("points", n))
	}
	if d, ok := glint.KeyLifetime.From(e); ok {
		fields = append(fields, zap.Duration("lifetime", d))
	}
	if d, ok := glint.KeyWait.From(e); ok {
		fields = append(fields, zap.Duration("wait", d))
	}
	return fields
}
