package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/0xalexb/hjarta-config/config"
	"github.com/0xalexb/hjarta-config/config/flat"
)

var errUnknownFormat = fmt.Errorf("%w: unknown output format", config.ErrMisconfigured)

func (c *cli) newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump",
		Short: "Print the merged configuration",
		Long: `Print every merged entry. The "flat" format prints one KEY=VALUE line
per entry, with null values shown as KEY=<null>; "json" prints the flat map;
"yaml" prints the rebuilt tree.`,
		Args: cobra.NoArgs,
		RunE: c.runDump,
	}

	cmd.Flags().String("format", "flat", "output format: flat, json, yaml")
	cmd.Flags().String("prefix", "", "only dump the section under this path")

	return cmd
}

func (c *cli) runDump(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	prefix, _ := cmd.Flags().GetString("prefix")

	root, err := c.buildRoot(cmd.Context())
	if err != nil {
		return err
	}

	defer func() { _ = root.Close() }()

	mapping := root.All()
	if prefix != "" {
		mapping = root.Section(prefix).Entries()
	}

	return writeMapping(cmd.OutOrStdout(), mapping, format)
}

func writeMapping(w io.Writer, mapping flat.Mapping, format string) error {
	switch format {
	case "flat":
		for _, entry := range mapping.Entries() {
			value := "<null>"
			if entry.Value.Valid {
				value = entry.Value.String
			}

			_, err := fmt.Fprintf(w, "%s=%s\n", entry.Path, value)
			if err != nil {
				return err //nolint:wrapcheck // write errors are reported as is
			}
		}

		return nil
	case "json":
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		return encoder.Encode(mapping.Nullable()) //nolint:wrapcheck // write errors are reported as is
	case "yaml":
		tree, _ := flat.Unflatten(mapping, "")

		out, err := yaml.Marshal(tree)
		if err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}

		_, err = w.Write(out)

		return err //nolint:wrapcheck // write errors are reported as is
	default:
		return fmt.Errorf("%w: %q", errUnknownFormat, format)
	}
}
