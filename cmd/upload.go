package main

import (
	"time"

	"github.com/spf13/cobra"
	"sbconf/internal/logger"
	"sbconf/internal/netif"
	"sbconf/internal/provision"
)

func newUploadCmd(configFile *string) *cobra.Command {
	var (
		subnet string
		port   int
		settle time.Duration
	)

	cmd := &cobra.Command{
		Use:   "upload FILE",
		Short: "Compile a routing file and upload it to every node it names",
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

			pcfg := provision.Config{Prefix: a.cfg.Network.Subnet, Port: a.cfg.Network.Port}
			if pcfg.Settle, err = a.cfg.Network.SettleDuration(); err != nil {
				return err
			}
			if cmd.Flags().Changed("subnet") {
				pcfg.Prefix = subnet
			}
			if cmd.Flags().Changed("port") {
				pcfg.Port = port
			}
			if cmd.Flags().Changed("settle") {
				pcfg.Settle = settle
			}
			if pcfg.Prefix == "" {
				if pcfg.Prefix, err = netif.DefaultPrefix(); err != nil {
					return err
				}
			}

			seq, err := provision.New(pcfg,
				provision.WithLogger(a.log),
				provision.WithTranscript(a.transcript),
				provision.WithMetrics(a.metrics),
			)
			if err != nil {
				return err
			}
			a.log.With(logger.Fields{"module": "provision"}).Infof("uploading %d nodes to %s0", len(table.Order()), seq.Prefix())

			return seq.Deploy(cmd.Context(), table)
		},
	}
	cmd.Flags().StringVar(&subnet, "subnet", "", "subnet prefix the node IDs are appended to, e.g. 192.168.1.")
	cmd.Flags().IntVar(&port, "port", provision.DefaultPort, "node service port")
	cmd.Flags().DurationVar(&settle, "settle", provision.DefaultSettle, "pause after every message")
	return cmd
}
