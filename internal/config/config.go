package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/EmekaIwuagwu/keyforge/internal/types"
	"github.com/spf13/viper"
)

// DefaultNodeURL is the node JSON-RPC endpoint used when none is configured
const DefaultNodeURL = "http://localhost:9933"

// DefaultConfigFile is read from the working directory when present
const DefaultConfigFile = "keyforge.yaml"

// Config represents the main application configuration
type Config struct {
	Scheme   string         `mapstructure:"scheme"`
	Network  *uint16        `mapstructure:"network"`
	Output   string         `mapstructure:"output"`
	NodeURL  string         `mapstructure:"node_url"`
	Log      LogConfig      `mapstructure:"log"`
	Insert   InsertConfig   `mapstructure:"insert"`
	Runtime  RuntimeConfig  `mapstructure:"runtime"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Password PasswordConfig `mapstructure:"password"`
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // console, json
}

// InsertConfig represents keystore insertion configuration
type InsertConfig struct {
	// Strict makes transport errors fail the command
	Strict bool `mapstructure:"strict"`
}

// RuntimeConfig describes the chain the transactions are signed for
type RuntimeConfig struct {
	SpecVersion        uint32 `mapstructure:"spec_version"`
	TransactionVersion uint32 `mapstructure:"transaction_version"`
	GenesisHash        string `mapstructure:"genesis_hash"`
	Tip                uint64 `mapstructure:"tip"`
	EraPeriod          uint64 `mapstructure:"era_period"`
	CheckpointBlock    uint64 `mapstructure:"checkpoint_block"`
	CheckpointHash     string `mapstructure:"checkpoint_hash"`
	AddressFormat      string `mapstructure:"address_format"`   // multi, id
	SignatureFormat    string `mapstructure:"signature_format"` // multi, raw
}

// MetricsConfig represents monitoring configuration
type MetricsConfig struct {
	PushgatewayURL string `mapstructure:"pushgateway_url"`
	Job            string `mapstructure:"job"`
}

// PasswordConfig represents how the key password is obtained
type PasswordConfig struct {
	Value       string `mapstructure:"value"`
	Set         bool   `mapstructure:"-"`
	Interactive bool   `mapstructure:"interactive"`
	Filename    string `mapstructure:"filename"`
}

// envOnlyKeys have no default because their absence is meaningful
var envOnlyKeys = []string{
	"network",
	"password.value",
	"password.interactive",
	"password.filename",
}

// SetDefaults registers default values on v
func SetDefaults(v *viper.Viper) {
	v.SetDefault("scheme", string(types.SchemeSr25519))
	v.SetDefault("output", string(types.OutputText))
	v.SetDefault("node_url", DefaultNodeURL)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("insert.strict", false)
	v.SetDefault("runtime.spec_version", 0)
	v.SetDefault("runtime.transaction_version", 0)
	v.SetDefault("runtime.genesis_hash", "")
	v.SetDefault("runtime.tip", 0)
	v.SetDefault("runtime.era_period", 0)
	v.SetDefault("runtime.checkpoint_block", 0)
	v.SetDefault("runtime.checkpoint_hash", "")
	v.SetDefault("runtime.address_format", "multi")
	v.SetDefault("runtime.signature_format", "multi")
	v.SetDefault("metrics.pushgateway_url", "")
	v.SetDefault("metrics.job", "keyforge")
}

// LoadConfig loads configuration from an optional file and environment
// variables into v, which may already have flags bound to it
func LoadConfig(v *viper.Viper, configPath string) (*Config, error) {
	SetDefaults(v)

	// Allow environment variable overrides
	v.SetEnvPrefix("KEYFORGE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Keys without a default are invisible to Unmarshal unless bound
	for _, key := range envOnlyKeys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind environment for %s: %w", key, err)
		}
	}

	if configPath == "" {
		if _, err := os.Stat(DefaultConfigFile); err == nil {
			configPath = DefaultConfigFile
		}
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	config.Password.Set = v.IsSet("password.value")

	// Validate configuration
	if err := ValidateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// ValidateConfig validates the configuration
func ValidateConfig(config *Config) error {
	if _, err := types.ParseScheme(config.Scheme); err != nil {
		return err
	}

	if _, err := types.ParseOutputType(config.Output); err != nil {
		return err
	}

	if config.Network != nil && *config.Network > types.MaxNetwork {
		return fmt.Errorf("network identifier %d exceeds %d", *config.Network, types.MaxNetwork)
	}

	if config.NodeURL == "" {
		return errors.New("node_url must not be empty")
	}

	if config.Password.Interactive && config.Password.Filename != "" {
		return errors.New("password.interactive and password.filename are mutually exclusive")
	}

	switch config.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("unsupported log format: %s", config.Log.Format)
	}

	switch config.Runtime.AddressFormat {
	case "", "multi", "id":
	default:
		return fmt.Errorf("unsupported runtime.address_format: %s", config.Runtime.AddressFormat)
	}

	switch config.Runtime.SignatureFormat {
	case "", "multi", "raw":
	default:
		return fmt.Errorf("unsupported runtime.signature_format: %s", config.Runtime.SignatureFormat)
	}

	return nil
}

// SchemeType returns the parsed signature scheme
func (c *Config) SchemeType() types.Scheme {
	scheme, _ := types.ParseScheme(c.Scheme)
	return scheme
}

// OutputType returns the parsed report output type
func (c *Config) OutputType() types.OutputType {
	output, _ := types.ParseOutputType(c.Output)
	return output
}

// NetworkOverride returns the explicit network identifier, if any
func (c *Config) NetworkOverride() (uint16, bool) {
	if c.Network == nil {
		return 0, false
	}
	return *c.Network, true
}
