package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	dbm "github.com/cosmos/cosmos-db"
	"github.com/spf13/cast"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/paw-chain/pawswap/app"
)

const (
	envPrefix = "PAWSWAP"

	configKeyChainID        = "chain-id"
	configKeyDBBackend      = "db-backend"
	configKeyLogLevel       = "log-level"
	configKeyCommissionRate = "factory.commission-rate"
	configKeyOperatorFee    = "factory.operator-fee"
	configKeyTraceEndpoint  = "telemetry.trace-endpoint"
)

// Config is the node configuration assembled from app.toml, PAWSWAP_*
// environment variables and command line flags, in increasing precedence.
type Config struct {
	ChainID        string
	DBBackend      string
	LogLevel       string
	CommissionRate string
	OperatorFee    string
	TraceEndpoint  string
}

// AppConfig returns the subset handed to app.New.
func (c Config) AppConfig() app.Config {
	return app.Config{
		ChainID:        c.ChainID,
		CommissionRate: c.CommissionRate,
		OperatorFee:    c.OperatorFee,
	}
}

// DefaultNodeHome returns $HOME/.pawswap, or .pawswap when the home
// directory cannot be resolved.
func DefaultNodeHome() string {
	userHome, err := os.UserHomeDir()
	if err != nil {
		return "." + app.Name
	}
	return filepath.Join(userHome, "."+app.Name)
}

func configPath(home string) string {
	return filepath.Join(home, "config", "app.toml")
}

func dataDir(home string) string {
	return filepath.Join(home, "data")
}

func newViper(home string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(configPath(home))
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	defaults := app.DefaultConfig()
	v.SetDefault(configKeyChainID, defaults.ChainID)
	v.SetDefault(configKeyDBBackend, string(dbm.GoLevelDBBackend))
	v.SetDefault(configKeyLogLevel, "info")
	v.SetDefault(configKeyCommissionRate, defaults.CommissionRate)
	v.SetDefault(configKeyOperatorFee, defaults.OperatorFee)
	v.SetDefault(configKeyTraceEndpoint, "")
	return v
}

// bindFlags lets the chain id and log level flags override the file and the
// environment when they are set explicitly.
func bindFlags(v *viper.Viper, flagSet *pflag.FlagSet) error {
	for key, name := range map[string]string{
		configKeyChainID:  flagChainID,
		configKeyLogLevel: flagLogLevel,
	} {
		flag := flagSet.Lookup(name)
		if flag == nil {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind %s: %w", name, err)
		}
	}
	return nil
}

// loadConfig reads app.toml when present and resolves every key. A missing
// file is not an error; init has not run yet.
func loadConfig(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("read %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var (
		cfg Config
		err error
	)
	for key, dst := range map[string]*string{
		configKeyChainID:        &cfg.ChainID,
		configKeyDBBackend:      &cfg.DBBackend,
		configKeyLogLevel:       &cfg.LogLevel,
		configKeyCommissionRate: &cfg.CommissionRate,
		configKeyOperatorFee:    &cfg.OperatorFee,
		configKeyTraceEndpoint:  &cfg.TraceEndpoint,
	} {
		// unquoted rates decode from toml as floats
		if *dst, err = cast.ToStringE(v.Get(key)); err != nil {
			return Config{}, fmt.Errorf("%s: %w", key, err)
		}
		*dst = strings.TrimSpace(*dst)
	}
	if err := cfg.AppConfig().Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// writeConfig persists cfg as app.toml under home.
func writeConfig(home string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(configPath(home)), 0o755); err != nil {
		return err
	}
	v := viper.New()
	v.Set(configKeyChainID, cfg.ChainID)
	v.Set(configKeyDBBackend, cfg.DBBackend)
	v.Set(configKeyLogLevel, cfg.LogLevel)
	v.Set(configKeyCommissionRate, cfg.CommissionRate)
	v.Set(configKeyOperatorFee, cfg.OperatorFee)
	v.Set(configKeyTraceEndpoint, cfg.TraceEndpoint)
	return v.WriteConfigAs(configPath(home))
}
