package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
)

func newVerifyCmd(configFile *string) *cobra.Command {
	var dump bool

	cmd := &cobra.Command{
		Use:   "verify FILE",
		Short: "Check a routing file without uploading it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd.Context(), cmd, *configFile)
			if err != nil {
				return err
			}
			defer a.close()

			table, err := a.compile(cmd, args[0])
			if err != nil {
				return err
			}
			if !dump {
				return nil
			}

			out, err := yaml.Marshal(table.Nodes())
			if err != nil {
				return fmt.Errorf("failed to render table: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().BoolVar(&dump, "dump", false, "print the compiled routing table as YAML")
	return cmd
}
