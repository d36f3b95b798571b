package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/0xalexb/hjarta-config/config"
)

func (c *cli) newGetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "get KEY",
		Short: "Print one configuration value",
		Long: `Print the value stored at KEY, e.g. "Notifications:UserSettings:UseMail".
With --section, print the subtree under KEY as JSON instead.`,
		Args: cobra.ExactArgs(1),
		RunE: c.runGet,
	}

	cmd.Flags().Bool("section", false, "print the section under KEY as JSON")

	return cmd
}

func (c *cli) runGet(cmd *cobra.Command, args []string) error {
	key := args[0]

	root, err := c.buildRoot(cmd.Context())
	if err != nil {
		return err
	}

	defer func() { _ = root.Close() }()

	asSection, _ := cmd.Flags().GetBool("section")
	if asSection {
		tree, ok := root.Section(key).Tree()
		if !ok {
			return fmt.Errorf("%w: %s", config.ErrKeyNotFound, key)
		}

		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")

		return encoder.Encode(tree) //nolint:wrapcheck // write errors are reported as is
	}

	value, ok := root.Value(key)
	if !ok {
		return fmt.Errorf("%w: %s", config.ErrKeyNotFound, key)
	}

	_, err = fmt.Fprintln(cmd.OutOrStdout(), value)

	return err //nolint:wrapcheck // write errors are reported as is
}
