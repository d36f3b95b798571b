package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/0xalexb/hjarta-config/settings"
)

func (c *cli) newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Write the sample settings into the configuration table",
		Long: `Create the configuration table if needed and upsert one row per sample
settings section, keyed by section name with a JSON object value.`,
		Args: cobra.NoArgs,
		RunE: c.runSeed,
	}
}

func (c *cli) runSeed(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	dbCfg := c.cfg.Database
	dbCfg.AutoMigrate = true

	st, err := openStore(ctx, dbCfg)
	if err != nil {
		return err
	}

	defer func() { _ = st.Close() }()

	seedRows, err := settings.Rows(settings.Sample(1)...)
	if err != nil {
		return fmt.Errorf("encode samples: %w", err)
	}

	for _, row := range seedRows {
		err = st.Upsert(ctx, row.Key, row.Value)
		if err != nil {
			return fmt.Errorf("seed %q: %w", row.Key, err)
		}

		c.logger.Debug("seeded section", slog.String("key", row.Key))
	}

	_, err = fmt.Fprintf(cmd.OutOrStdout(), "seeded %d sections into %s\n", len(seedRows), dbCfg.Table)

	return err //nolint:wrapcheck // write errors are reported as is
}
