package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	journy "github.com/journy-io/sdk-go"
	"github.com/journy-io/sdk-go/internal/config"
)

// errFailedResult is returned when the API answered with a failure. The
// result itself has already been printed.
var errFailedResult = errors.New("request failed")

// Streams holds the I/O used by the tool.
type Streams struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// DefaultStreams returns the process standard streams.
func DefaultStreams() Streams {
	return Streams{Stdin: os.Stdin, Stdout: os.Stdout, Stderr: os.Stderr}
}

// app is shared by all subcommands once the root command has run.
type app struct {
	streams    Streams
	configFile string
	envFile    string
	cfg        *config.Config
	client     *journy.Client
}

func run(args []string, streams Streams) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cmd := newRootCommand(streams)
	cmd.SetArgs(args[1:])
	cmd.SetIn(streams.Stdin)
	cmd.SetOut(streams.Stdout)
	cmd.SetErr(streams.Stderr)
	return cmd.ExecuteContext(ctx)
}

func newRootCommand(streams Streams) *cobra.Command {
	a := &app{streams: streams}

	cmd := &cobra.Command{
		Use:   "journy",
		Short: "Send data to and query the journy.io API",
		Long: `journy calls the journy.io API with the key from --api-key, the
JOURNY_API_KEY environment variable, a .env file or a YAML config file.

Every command prints the API result as JSON and exits with status 1 when
the API reports a failure.`,
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(cmd *cobra.Command, _ []string) error {
			if a.client == nil {
				return nil
			}
			return a.client.Close(cmd.Context())
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&a.configFile, "config", "", "Path to a YAML config file")
	flags.StringVar(&a.envFile, "env-file", ".env", "Path to a dotenv file")
	flags.String("api-key", "", "API key (default: $JOURNY_API_KEY)")
	flags.String("api-url", "", "API base URL (default: https://api.journy.io)")
	flags.Duration("timeout", 0, "Per-request timeout (default: 5s)")
	flags.String("log-level", "", "Log level: debug, info, warn, error (default: warn)")
	flags.String("log-format", "", "Log format: text or json (default: text)")
	flags.Int("queue-concurrency", 0, "Send requests through a FIFO queue with this concurrency")
	flags.Float64("rate-limit", 0, "Maximum requests per second")
	flags.Int("rate-burst", 0, "Burst size for --rate-limit")

	cmd.AddCommand(
		a.validateCommand(),
		a.snippetCommand(),
		a.trackCommand(),
		a.upsertUserCommand(),
		a.deleteUserCommand(),
		a.upsertAccountCommand(),
		a.deleteAccountCommand(),
		a.membersCommand("add-users", "Add users to an account"),
		a.membersCommand("remove-users", "Remove users from an account"),
		a.linkCommand(),
		a.configCommand(),
	)
	return cmd
}

func (a *app) setup(cmd *cobra.Command, _ []string) error {
	if err := config.LoadEnvFile(a.envFile); err != nil {
		return err
	}
	cfg, err := config.Load(a.configFile, cmd.Flags())
	if err != nil {
		return err
	}
	a.cfg = cfg
	logger, err := cfg.NewLogger(a.streams.Stderr)
	if err != nil {
		return err
	}

	a.client, err = journy.New(cfg.APIKey, cfg.ClientOptions(logger)...)
	if err != nil {
		return fmt.Errorf("create client: %w", err)
	}
	return nil
}

// printResult writes result as indented JSON and turns a failed result into
// errFailedResult.
func printResult[T any](a *app, result journy.Result[T], err error) error {
	if err != nil {
		return err
	}
	enc := json.NewEncoder(a.streams.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("encode result: %w", err)
	}
	if !result.Success {
		return errFailedResult
	}
	return nil
}

// parsePairs parses key=value arguments into Properties.
func parsePairs(flag string, pairs []string) (journy.Properties, error) {
	if len(pairs) == 0 {
		return nil, nil
	}
	out := make(journy.Properties, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("--%s expects key=value, got %q", flag, pair)
		}
		out[key] = value
	}
	return out, nil
}

func fatal(stderr io.Writer, err error) {
	if !errors.Is(err, errFailedResult) {
		fmt.Fprintf(stderr, "error: %v\n", err)
	}
	os.Exit(1)
}
