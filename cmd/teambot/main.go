package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/lmittmann/tint"
	"github.com/urfave/cli/v3"

	"github.com/tzrikka/teambot/internal/logger"
	"github.com/tzrikka/teambot/internal/otel"
	"github.com/tzrikka/teambot/pkg/config"
	"github.com/tzrikka/teambot/pkg/temporal"
)

func main() {
	bi, _ := debug.ReadBuildInfo()

	cmd := &cli.Command{
		Name:    "teambot",
		Usage:   "Slack chatbot for small team rituals",
		Version: bi.Main.Version,
		Flags:   config.Flags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			initLog(cmd.Bool("dev") || cmd.Bool("pretty-log"))

			provider, err := otel.InitMetrics(ctx, otel.Options{
				Disabled:    cmd.Bool("otlp-disabled"),
				Endpoint:    cmd.String("otlp-endpoint"),
				Timeout:     time.Duration(cmd.Int64("otlp-timeout-ms")) * time.Millisecond,
				Compression: cmd.String("otlp-compression"),
			})
			if err != nil {
				logger.Fatal("failed to initialize OpenTelemetry metrics", err)
			}
			defer func() {
				if err := provider.Shutdown(context.Background()); err != nil {
					slog.Error("failed to shut down OpenTelemetry metrics", slog.Any("error", err))
				}
			}()

			return temporal.Run(ctx, cmd)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}
}

// initLog initializes the default logger for the Slack API client and the
// Temporal worker, based on whether it's running in development mode or not.
func initLog(pretty bool) {
	var handler slog.Handler
	if pretty {
		handler = tint.NewHandler(os.Stdout, &tint.Options{
			AddSource:  true,
			Level:      slog.LevelDebug,
			TimeFormat: "15:04:05.000",
		})
	} else {
		handler = slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
			AddSource: true,
		})
	}

	slog.SetDefault(slog.New(handler))
}
