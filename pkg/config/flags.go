package config

import (
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
	"go.temporal.io/sdk/client"

	"github.com/tzrikka/teambot/internal/logger"
	"github.com/tzrikka/teambot/pkg/bot"
	"github.com/tzrikka/xdg"
)

const (
	DirName        = "teambot"
	ConfigFileName = "config.toml"

	DefaultOTLPEndpoint = "https://localhost:4318"
	DefaultOTLPTimeout  = 10000 // 10 seconds.

	DefaultTaskQueue = "teambot"

	DefaultSlackHTTPTimeout = 30 * time.Second
	DefaultActivityTimeout  = 2 * time.Minute
)

// configFile returns the path to the app's configuration file.
// It also creates an empty file if it doesn't already exist.
func configFile() altsrc.StringSourcer {
	path, _ := xdg.FindConfigFile(DirName, ConfigFileName)
	if path != "" {
		return altsrc.StringSourcer(path)
	}

	path, err := xdg.CreateFile(xdg.ConfigHome, DirName, ConfigFileName)
	if err != nil {
		logger.Fatal("failed to create config file", err)
	}
	return altsrc.StringSourcer(path)
}

// Flags defines CLI flags to configure a Temporal worker. These flags are usually
// set using environment variables or the application's configuration file.
func Flags() []cli.Flag {
	path := configFile()

	return []cli.Flag{
		&cli.BoolFlag{
			Name:  "dev",
			Usage: "simple setup, but unsafe for production",
		},
		&cli.BoolFlag{
			Name:  "pretty-log",
			Usage: "human-readable console logging, instead of JSON",
		},

		// https://pkg.go.dev/go.temporal.io/sdk/internal#ClientOptions
		&cli.StringFlag{
			Name:  "temporal-address",
			Usage: "Temporal server address",
			Value: client.DefaultHostPort,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TEMPORAL_ADDRESS"),
				toml.TOML("temporal.address", path),
			),
		},
		&cli.StringFlag{
			Name:  "temporal-namespace",
			Usage: "Temporal namespace",
			Value: client.DefaultNamespace,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TEMPORAL_NAMESPACE"),
				toml.TOML("temporal.namespace", path),
			),
		},

		// Worker parameters.
		&cli.StringFlag{
			Name:  "temporal-task-queue",
			Usage: "Temporal task queue for the TeamBot worker",
			Value: DefaultTaskQueue,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TEMPORAL_TASK_QUEUE"),
				toml.TOML("temporal.task_queue", path),
			),
		},
		&cli.DurationFlag{
			Name:  "temporal-activity-timeout",
			Usage: "Start-to-close timeout of Slack activities (including all pages of paginated calls)",
			Value: DefaultActivityTimeout,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TEMPORAL_ACTIVITY_TIMEOUT"),
				toml.TOML("temporal.activity_timeout", path),
			),
		},

		// https://github.com/open-telemetry/opentelemetry-go/blob/main/exporters/otlp/otlpmetric/otlpmetrichttp/doc.go
		&cli.BoolFlag{
			Name:  "otlp-disabled",
			Usage: "Disable exporting OTLP metrics",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("OTEL_EXPORTER_OTLP_DISABLED"),
				toml.TOML("otlp.disabled", path),
			),
		},
		&cli.StringFlag{
			Name:  "otlp-endpoint",
			Usage: "OTLP endpoint using HTTP",
			Value: DefaultOTLPEndpoint,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("OTEL_EXPORTER_OTLP_ENDPOINT"),
				toml.TOML("otlp.endpoint", path),
			),
		},
		&cli.Int64Flag{
			Name:  "otlp-timeout-ms",
			Usage: "OTLP batch export timeout in milliseconds",
			Value: DefaultOTLPTimeout,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("OTEL_EXPORTER_OTLP_TIMEOUT_MS"),
				toml.TOML("otlp.timeout_ms", path),
			),
		},
		&cli.StringFlag{
			Name:  "otlp-compression",
			Usage: "OTLP compression method (e.g. gzip)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("OTEL_EXPORTER_OTLP_COMPRESSION"),
				toml.TOML("otlp.compression", path),
			),
		},

		// Slack.
		&cli.StringFlag{
			Name:  "slack-bot-token",
			Usage: "Slack bot token (xoxb-...)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_BOT_TOKEN"),
				toml.TOML("slack.bot_token", path),
			),
			Required: true,
		},
		&cli.StringFlag{
			Name:  "slack-api-url",
			Usage: "Slack API base URL (for testing)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_API_URL"),
				toml.TOML("slack.api_url", path),
			),
		},
		&cli.DurationFlag{
			Name:  "slack-http-timeout",
			Usage: "Timeout of each HTTP request to the Slack API",
			Value: DefaultSlackHTTPTimeout,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_HTTP_TIMEOUT"),
				toml.TOML("slack.http_timeout", path),
			),
		},
		&cli.StringFlag{
			Name:  "slack-reference-channel",
			Usage: "ID of the Slack channel whose members are invited to surprise channels (default = all users)",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_REFERENCE_CHANNEL"),
				toml.TOML("slack.reference_channel", path),
			),
		},
		&cli.StringFlag{
			Name:  "slack-channel-name-prefix",
			Usage: "Prefix for the names of surprise channels",
			Value: bot.DefaultChannelNamePrefix,
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SLACK_CHANNEL_NAME_PREFIX"),
				toml.TOML("slack.channel_name_prefix", path),
			),
		},
		&cli.BoolFlag{
			Name:  "surprise-exclude-bot",
			Usage: "Don't invite the bot itself to surprise channels",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("SURPRISE_EXCLUDE_BOT"),
				toml.TOML("surprise.exclude_bot", path),
			),
		},
		&cli.StringSliceFlag{
			Name:  "test-account-signup-urls",
			Usage: "Signup page URLs listed in the test account instructions",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("TEST_ACCOUNT_SIGNUP_URLS"),
				toml.TOML("test_account.signup_urls", path),
			),
		},

		// Metrics.
		&cli.StringFlag{
			Name:  "metrics-signals-file",
			Usage: "Optional CSV file to record received Temporal signals",
			Sources: cli.NewValueSourceChain(
				cli.EnvVar("METRICS_SIGNALS_FILE"),
				toml.TOML("metrics.signals_file", path),
			),
			TakesFile: true,
		},
	}
}
