package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"github.com/zoobzio/clockz"
	"github.com/zoobzio/glint"
	"github.com/zoobzio/glint/pkg/redis"
	"go.uber.org/zap"
)

var (
	simulateOut   string
	simulateWatch bool
	redisAddr     string
	redisKey      string
)

var simulateCmd = &cobra.Command{
	Use:   "simulate PAGE SCENARIO",
	Short: "Replay a scripted session against a page and print the result",
	Long: `Bootstrap PAGE on a simulated clock, replay SCENARIO (YAML or JSON) and
print the resulting HTML. With --watch, the config is watched and the
scenario is replayed after every accepted change. The config comes from
--config, or from a Redis key with --redis-addr and --redis-key.`,
	Args: cobra.ExactArgs(2),
	RunE: runSimulate,
}

func init() {
	simulateCmd.Flags().StringVarP(&simulateOut, "out", "o", "", "Write the rendered page to a file instead of stdout")
	simulateCmd.Flags().BoolVarP(&simulateWatch, "watch", "w", false, "Replay whenever the config changes")
	simulateCmd.Flags().StringVar(&redisAddr, "redis-addr", "", "Watch the config in Redis at this address")
	simulateCmd.Flags().StringVar(&redisKey, "redis-key", "glint:config", "Redis key holding the config (YAML or JSON by suffix)")
}

func runSimulate(cmd *cobra.Command, args []string) error {
	pagePath, scenarioPath := args[0], args[1]

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if !simulateWatch {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return replay(ctx, cmd.OutOrStdout(), pagePath, scenarioPath, cfg)
	}

	source, name, err := watchSource()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	reloader := glint.NewReloader(source,
		func(ctx context.Context, _, curr glint.Config) error {
			return replay(ctx, cmd.OutOrStdout(), pagePath, scenarioPath, curr)
		},
	).Codec(glint.CodecFor(name)).Seed(glint.DefaultConfig).ErrorHistorySize(5)

	if err := reloader.Start(ctx); err != nil {
		logger.Warn("Initial config rejected, waiting for a fix",
			zap.String("config", name),
			zap.Error(err),
		)
	}

	<-ctx.Done()
	logger.Info("Stopped watching", zap.String("state", reloader.State().String()))
	return nil
}

// watchSource picks the config source for --watch and returns it with a
// name whose suffix selects the codec.
func watchSource() (glint.Source, string, error) {
	if redisAddr != "" {
		client := goredis.NewClient(&goredis.Options{Addr: redisAddr})
		logger.Info("Watching Redis config",
			zap.String("addr", redisAddr),
			zap.String("key", redisKey),
		)
		return redis.New(client, redisKey), redisKey, nil
	}
	if configPath == "" {
		return nil, "", errors.New("--watch requires --config or --redis-addr")
	}
	return glint.NewFileSource(configPath), configPath, nil
}

// replay renders one run of the scenario and writes it out.
func replay(ctx context.Context, stdout io.Writer, pagePath, scenarioPath string, cfg glint.Config) error {
	out, err := render(ctx, pagePath, scenarioPath, cfg)
	if err != nil {
		return err
	}
	if simulateOut == "" {
		_, err = io.WriteString(stdout, out)
		return err
	}
	if err := os.WriteFile(simulateOut, []byte(out), 0o600); err != nil {
		return fmt.Errorf("failed to write %s: %w", simulateOut, err)
	}
	logger.Info("Rendered page", zap.String("out", simulateOut))
	return nil
}

// render bootstraps a fresh page on a fake clock and replays the scenario.
func render(ctx context.Context, pagePath, scenarioPath string, cfg glint.Config) (string, error) {
	scenario, err := LoadScenario(scenarioPath)
	if err != nil {
		return "", err
	}
	doc, err := readPage(pagePath)
	if err != nil {
		return "", err
	}

	clock := clockz.NewFakeClock()
	page := glint.NewPage(doc,
		glint.WithClock(clock),
		glint.WithConfig(cfg),
		glint.WithIDs(sequentialIDs()),
	)
	defer page.Close()

	if err := page.Bootstrap(ctx); err != nil {
		return "", err
	}
	if err := scenario.Run(page, doc, clock); err != nil {
		return "", err
	}
	page.Settle()
	return doc.String(), nil
}

// sequentialIDs keeps notice ids stable so repeated runs diff cleanly.
func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("notice-%d", n)
	}
}
