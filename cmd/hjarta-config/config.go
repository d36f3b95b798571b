package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/0xalexb/hjarta-config/config/store"
	"github.com/0xalexb/hjarta-config/logging"
)

const envPrefix = "HJARTA"

type databaseConfig struct {
	Type        string `mapstructure:"type"         validate:"oneof=none sqlite postgres"`
	DSN         string `mapstructure:"dsn"          validate:"required_unless=Type none"`
	Table       string `mapstructure:"table"`
	AutoMigrate bool   `mapstructure:"auto_migrate"`
}

type logConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format" validate:"oneof=json text"`
}

type serverConfig struct {
	Address       string        `mapstructure:"address"        validate:"required"`
	ReloadTimeout time.Duration `mapstructure:"reload_timeout" validate:"gte=0"`
}

type cliConfig struct {
	Files          []string          `mapstructure:"files"`
	ReloadInterval time.Duration     `mapstructure:"reload_interval" validate:"gte=0"`
	Samples        bool              `mapstructure:"samples"`
	Overrides      map[string]string `mapstructure:"-"`
	Database       databaseConfig    `mapstructure:"database"`
	Log            logConfig         `mapstructure:"log"`
	Server         serverConfig      `mapstructure:"server"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("reload_interval", 0)
	v.SetDefault("samples", false)

	v.SetDefault("database.type", "none")
	v.SetDefault("database.dsn", "")
	v.SetDefault("database.table", store.DefaultTable)
	v.SetDefault("database.auto_migrate", true)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", logging.FormatJSON)

	v.SetDefault("server.address", ":8080")
	v.SetDefault("server.reload_timeout", 30*time.Second)
}

// readConfig merges, in increasing precedence, defaults, the config file,
// HJARTA_* environment variables and flags.
func readConfig(cmd *cobra.Command, v *viper.Viper) (cliConfig, error) {
	configFile, _ := cmd.Flags().GetString("config")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("hjarta")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configNotFound) {
			return cliConfig{}, fmt.Errorf("read config file: %w", err)
		}
	}

	var cfg cliConfig

	err = v.Unmarshal(&cfg)
	if err != nil {
		return cliConfig{}, fmt.Errorf("decode config: %w", err)
	}

	// Override keys keep their casing and colons, which viper keys would not.
	cfg.Overrides, err = cmd.Flags().GetStringToString("set")
	if err != nil {
		return cliConfig{}, fmt.Errorf("read overrides: %w", err)
	}

	err = validator.New(validator.WithRequiredStructEnabled()).Struct(cfg)
	if err != nil {
		return cliConfig{}, fmt.Errorf("invalid config: %w", err)
	}

	if cfg.Database.Type != "none" {
		err = store.ValidateTableName(cfg.Database.Table)
		if err != nil {
			return cliConfig{}, err //nolint:wrapcheck // already descriptive
		}
	}

	return cfg, nil
}

func newLogger(cmd *cobra.Command, cfg logConfig) *slog.Logger {
	return logging.NewLogger(logging.LoggerConfig{Level: cfg.Level, Format: cfg.Format}, cmd.ErrOrStderr())
}
