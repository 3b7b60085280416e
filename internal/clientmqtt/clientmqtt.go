// Package clientmqtt mirrors transcript lines to an MQTT topic so a remote
// console can follow a deployment.
package clientmqtt

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"sbconf/internal/logger"
)

const publishTimeout = 2 * time.Second

// ClientMQTT структура клиента MQTT.
type ClientMQTT struct {
	log       logger.Logger
	cfgClient MQTTConf
	client    mqtt.Client
	opts      *mqtt.ClientOptions
}

// NewClient конструктор.
func NewClient(log logger.Logger, cfgClient MQTTConf) *ClientMQTT {
	if cfgClient.Schema == "" {
		cfgClient.Schema = "tcp"
	}
	return &ClientMQTT{
		log:       log,
		cfgClient: cfgClient,
	}
}

func (c *ClientMQTT) brokerURL() string {
	return fmt.Sprintf("%s://%s:%s", c.cfgClient.Schema, c.cfgClient.Host, c.cfgClient.Port)
}

// Start connects to the broker, giving up when ctx is done.
func (c *ClientMQTT) Start(ctx context.Context) error {
	if c.log.GetLevel() == "debug" {
		mqtt.ERROR = log.New(os.Stderr, "[ERROR] ", 0)
		mqtt.CRITICAL = log.New(os.Stderr, "[CRIT] ", 0)
		mqtt.WARN = log.New(os.Stderr, "[WARN]  ", 0)
	}

	c.opts = mqtt.NewClientOptions().
		AddBroker(c.brokerURL()).
		SetUsername(c.cfgClient.User).
		SetPassword(c.cfgClient.Password).
		SetOnConnectHandler(c.connectHandler).
		SetConnectionLostHandler(c.connectLostHandler).
		SetClientID(c.cfgClient.ClientID).
		SetOrderMatters(true).
		SetCleanSession(true).
		SetAutoReconnect(true).
		SetMaxReconnectInterval(5 * time.Second).
		SetKeepAlive(30 * time.Second)

	c.client = mqtt.NewClient(c.opts)

	token := c.client.Connect()
	select {
	case <-token.Done():
		if token.Error() != nil {
			return token.Error()
		}
	case <-ctx.Done():
		return errors.New("context canceled")
	}

	c.log.With(logger.Fields{"module": "mqtt"}).Infof("Status: %v", c.client.IsConnected())
	return nil
}

// Stop disconnects, letting in-flight publications finish.
func (c *ClientMQTT) Stop() error {
	if c.client != nil && c.client.IsConnected() {
		c.client.Disconnect(500)
	}
	return nil
}

// Println publishes one transcript line. Lines are dropped while the client
// is not connected.
func (c *ClientMQTT) Println(line string) {
	if c.client == nil || !c.client.IsConnected() {
		c.log.With(logger.Fields{"module": "mqtt"}).Debugf("not connected, dropping line %q", line)
		return
	}
	token := c.client.Publish(c.cfgClient.Topic, c.cfgClient.Qos, false, line)
	if !token.WaitTimeout(publishTimeout) {
		c.log.With(logger.Fields{"module": "mqtt"}).Warnf("publish to %s timed out", c.cfgClient.Topic)
		return
	}
	if token.Error() != nil {
		c.log.With(logger.Fields{"module": "mqtt"}).Errorf("error publish topic %s. %v", c.cfgClient.Topic, token.Error())
	}
}

func (c *ClientMQTT) connectHandler(_ mqtt.Client) {
	c.log.With(logger.Fields{"module": "mqtt"}).Info("client connected to server")
}

func (c *ClientMQTT) connectLostHandler(_ mqtt.Client, err error) {
	c.log.With(logger.Fields{"module": "mqtt"}).Errorf("server connect lost: %v", err)
}
