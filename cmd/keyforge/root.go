package main

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/EmekaIwuagwu/keyforge/internal/config"
	"github.com/EmekaIwuagwu/keyforge/internal/crypto"
	"github.com/EmekaIwuagwu/keyforge/internal/input"
	"github.com/EmekaIwuagwu/keyforge/internal/monitoring"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// flagKeys maps command line flags onto configuration keys
var flagKeys = map[string]string{
	"scheme":               "scheme",
	"network":              "network",
	"output":               "output",
	"node-url":             "node_url",
	"log-level":            "log.level",
	"log-format":           "log.format",
	"strict":               "insert.strict",
	"password":             "password.value",
	"password-interactive": "password.interactive",
	"password-filename":    "password.filename",
}

// app carries the state of one command invocation
type app struct {
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer

	prompter   input.Prompter
	configPath string

	cfg          *config.Config
	logger       zerolog.Logger
	invocationID string
	started      time.Time
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *app {
	return &app{
		stdin:    stdin,
		stdout:   stdout,
		stderr:   stderr,
		prompter: input.NewTerminalPrompter(),
		logger:   zerolog.Nop(),
	}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "keyforge",
		Short: "Substrate key inspection, signing and keystore utility",
		Long: `keyforge derives accounts from secret phrases, seeds and URIs for the
sr25519, ed25519 and ecdsa schemes, signs messages and transactions, and
inserts keys into a node keystore.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
	}
	root.SetIn(a.stdin)
	root.SetOut(a.stdout)
	root.SetErr(a.stderr)

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "Path to configuration file (default ./"+config.DefaultConfigFile+" when present)")
	flags.String("scheme", "sr25519", "Signature scheme: sr25519, ed25519 or ecdsa")
	flags.Uint16("network", 42, "SS58 network identifier used for addresses")
	flags.String("output", "text", "Output type: text or json")
	flags.String("password", "", "Password appended to the secret URI")
	flags.Bool("password-interactive", false, "Prompt for the password without echo")
	flags.String("password-filename", "", "File containing the password")
	flags.String("log-level", "warn", "Log level: debug, info, warn or error")
	flags.String("log-format", "console", "Log format: console or json")
	flags.Bool("strict", false, "Fail the command when the keystore cannot be reached")

	root.AddCommand(
		a.inspectCmd(),
		a.signCmd(),
		a.signTransactionCmd(),
		a.insertCmd(),
		a.generateCmd(),
	)

	return root
}

// setup loads configuration and builds the invocation logger
func (a *app) setup(cmd *cobra.Command, args []string) error {
	a.started = time.Now()

	v := viper.New()
	bindChanged(v, cmd.Flags())

	cfg, err := config.LoadConfig(v, a.configPath)
	if err != nil {
		return err
	}
	a.cfg = cfg

	logger, err := setupLogger(cfg.Log, a.stderr)
	if err != nil {
		return err
	}
	a.invocationID = uuid.NewString()
	a.logger = logger.With().
		Str("invocation_id", a.invocationID).
		Str("command", cmd.Name()).
		Logger()

	a.logger.Debug().
		Str("scheme", cfg.Scheme).
		Str("output", cfg.Output).
		Msg("Configuration loaded")

	return nil
}

// push sends invocation metrics when a pushgateway is configured
func (a *app) push(cmd *cobra.Command) {
	if a.cfg.Metrics.PushgatewayURL == "" {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Collectors already carry a command label, so runs are grouped per invocation
	err := monitoring.Push(ctx, a.cfg.Metrics.PushgatewayURL, a.cfg.Metrics.Job, map[string]string{
		"instance": a.invocationID,
	})
	if err != nil {
		a.logger.Warn().Err(err).Msg("Failed to push metrics")
	}
}

// record reports the outcome of a command run and passes err through
func (a *app) record(cmd *cobra.Command, err error) error {
	monitoring.RecordCommand(cmd.Name(), a.cfg.Scheme, err, time.Since(a.started).Seconds())
	if err != nil {
		a.logger.Error().Err(err).Msg("Command failed")
	}
	a.push(cmd)
	return err
}

func (a *app) capability() crypto.Capability {
	return crypto.ForScheme(a.cfg.SchemeType())
}

func (a *app) networkOverride() *uint16 {
	if network, ok := a.cfg.NetworkOverride(); ok {
		return &network
	}
	return nil
}

// bindChanged copies explicitly set flags into v. Flag defaults are left to
// config.SetDefaults so an unset flag never shadows the file or environment.
func bindChanged(v *viper.Viper, flags *pflag.FlagSet) {
	flags.Visit(func(f *pflag.Flag) {
		if key, ok := flagKeys[f.Name]; ok {
			v.Set(key, f.Value.String())
		}
	})
}

func setupLogger(cfg config.LogConfig, w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(cfg.Level))
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix

	if cfg.Format == "json" {
		return zerolog.New(w).
			Level(level).
			With().
			Timestamp().
			Logger(), nil
	}

	return zerolog.New(zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}).
		Level(level).
		With().
		Timestamp().
		Logger(), nil
}
