package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"sbconf/internal/netif"
)

func newInterfacesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "interfaces",
		Short: "List the local networks nodes can be reached on",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			nets, err := netif.Networks()
			if err != nil {
				return err
			}
			if len(nets) == 0 {
				return netif.ErrNoNetwork
			}
			for _, n := range nets {
				fmt.Fprintln(cmd.OutOrStdout(), n.String())
			}
			return nil
		},
	}
}
