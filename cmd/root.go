package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"sbconf/internal/clientmqtt"
	"sbconf/internal/config"
	"sbconf/internal/logger"
	"sbconf/internal/metrics"
	"sbconf/internal/routes"
	"sbconf/internal/transcript"
)

var errCompileFailed = errors.New("compile failed")

func newRootCmd() *cobra.Command {
	var configFile string

	root := &cobra.Command{
		Use:           "sbconf",
		Short:         "SoundBlocks configurator",
		Long:          `sbconf compiles SoundBlocks routing files and uploads them to the nodes.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&configFile, "config", "c", "", "Path to configuration file")

	root.AddCommand(
		newVerifyCmd(&configFile),
		newUploadCmd(&configFile),
		newInterfacesCmd(),
	)
	return root
}

// app is what every command sets up before doing its work.
type app struct {
	cfg        *config.Config
	log        *logger.Log
	metrics    *metrics.Metrics
	transcript transcript.Transcript
	mqtt       *clientmqtt.ClientMQTT
}

func newApp(ctx context.Context, cmd *cobra.Command, configFile string) (*app, error) {
	cfg, err := config.NewConfig(configFile)
	if err != nil {
		return nil, fmt.Errorf("configuration file read error: %w", err)
	}

	log, err := logger.NewLogger(cfg.Logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create a logger: %w", err)
	}
	log.With(logger.Fields{"module": "logger"}).Debug("newLogger created ok")

	a := &app{
		cfg:        cfg,
		log:        log,
		metrics:    metrics.New(),
		transcript: transcript.NewWriter(cmd.OutOrStdout()),
	}

	if cfg.MQTT.Enabled {
		a.mqtt = clientmqtt.NewClient(log, ConvertConfigClientMQTT(cfg.MQTT))
		if err := a.mqtt.Start(ctx); err != nil {
			// The local transcript still works; carry on without the mirror.
			log.With(logger.Fields{"module": "mqtt"}).Errorf("failed to start MQTT transcript: %v", err)
			a.mqtt = nil
		} else {
			a.transcript = transcript.Multi{a.transcript, a.mqtt}
		}
	}
	return a, nil
}

func (a *app) close() {
	if a.mqtt != nil {
		if err := a.mqtt.Stop(); err != nil {
			a.log.Error("failed to stop MQTT service:", err.Error())
		}
	}
	if path := a.cfg.Metrics.Textfile; path != "" {
		if err := a.metrics.WriteTextfile(path); err != nil {
			a.log.With(logger.Fields{"module": "metrics"}).Errorf("failed to write %s: %v", path, err)
		}
	}
}

// compile reads the configuration at path ("-" is stdin) and reports the
// outcome on the transcript.
func (a *app) compile(cmd *cobra.Command, path string) (*routes.Table, error) {
	var in io.Reader
	if path == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		in = f
	}

	a.transcript.Println("Parsing...")
	table, err := routes.Compile(in)
	a.metrics.Compiled(err)

	var le *routes.LineError
	switch {
	case err == nil:
	case errors.As(err, &le), errors.Is(err, routes.ErrEmptyInput):
		a.transcript.Println("Error: " + err.Error())
		a.log.With(logger.Fields{"module": "routes"}).Debugf("compile of %s failed: %v", path, err)
		return nil, errCompileFailed
	default:
		return nil, err
	}

	a.transcript.Println("Verified... OK.")
	a.log.With(logger.Fields{"module": "routes"}).Debugf("%s compiled, %d nodes", path, len(table.Order()))
	return table, nil
}

// ConvertConfigClientMQTT converts the file settings to client settings.
func ConvertConfigClientMQTT(cfg config.MQTTConf) clientmqtt.MQTTConf {
	return clientmqtt.MQTTConf{
		ClientID: cfg.ClientID,
		Schema:   "tcp",
		Host:     cfg.Host,
		Port:     cfg.Port,
		User:     cfg.User,
		Password: cfg.Password,
		Topic:    cfg.Topic,
		Qos:      cfg.Qos,
	}
}
