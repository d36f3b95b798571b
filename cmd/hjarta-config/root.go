package main

import (
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	hjarta "github.com/0xalexb/hjarta-config"
)

// cli carries the state shared by the subcommands of one invocation.
type cli struct {
	v      *viper.Viper
	cfg    cliConfig
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{v: viper.New()}
	setDefaults(c.v)

	cmd := &cobra.Command{
		Use:     "hjarta-config",
		Version: hjarta.Version,
		Short:   "Layered, hot-reloadable configuration server",
		Long: `hjarta-config merges configuration from defaults, settings files,
a database table and command-line overrides, and serves the result over HTTP.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := readConfig(cmd, c.v)
			if err != nil {
				return err
			}

			c.cfg = cfg
			c.logger = newLogger(cmd, cfg.Log)

			return nil
		},
	}

	addPersistentFlags(cmd.PersistentFlags())
	bindFlags(c.v, cmd.PersistentFlags())

	cmd.AddCommand(
		c.newServeCmd(),
		c.newGetCmd(),
		c.newDumpCmd(),
		c.newSeedCmd(),
	)

	return cmd
}

func addPersistentFlags(flags *pflag.FlagSet) {
	flags.String("config", "", "config file path (default: ./hjarta.yaml)")
	flags.StringSlice("file", nil, "settings file (.json, .yaml, .yml); repeat for more layers (env: HJARTA_FILES)")
	flags.Duration("reload-interval", 0, "periodic reload interval, 0 disables (env: HJARTA_RELOAD_INTERVAL)")
	flags.Bool("samples", false, "push the sample settings as a layer (env: HJARTA_SAMPLES)")
	flags.StringToString("set", nil, "override a key, e.g. --set General:AppName=demo")
	flags.String("db-type", "", "database type: none, sqlite, postgres (env: HJARTA_DATABASE_TYPE)")
	flags.String("db-dsn", "", "database connection string (env: HJARTA_DATABASE_DSN)")
	flags.String("db-table", "", "settings table name (env: HJARTA_DATABASE_TABLE)")
	flags.String("log-level", "", "log level: debug, info, warn, error (env: HJARTA_LOG_LEVEL)")
	flags.String("log-format", "", "log format: json, text (env: HJARTA_LOG_FORMAT)")
}

// bindFlags maps viper keys onto persistent flags so flags win over env and file values.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) {
	for key, flag := range map[string]string{
		"files":           "file",
		"reload_interval": "reload-interval",
		"samples":         "samples",
		"database.type":   "db-type",
		"database.dsn":    "db-dsn",
		"database.table":  "db-table",
		"log.level":       "log-level",
		"log.format":      "log-format",
	} {
		_ = v.BindPFlag(key, flags.Lookup(flag))
	}
}
