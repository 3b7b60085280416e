package clientmqtt

import (
	"context"
	"net"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/goleak"
	"sbconf/internal/logger"
)

func TestBrokerURL(t *testing.T) {
	c := NewClient(logger.Discard(), MQTTConf{Host: "broker", Port: "1883"})
	assert.Equal(t, "tcp://broker:1883", c.brokerURL())

	c = NewClient(logger.Discard(), MQTTConf{Schema: "ssl", Host: "broker", Port: "8883"})
	assert.Equal(t, "ssl://broker:8883", c.brokerURL())
}

func TestPrintlnBeforeStart(t *testing.T) {
	defer goleak.VerifyNone(t)

	c := NewClient(logger.Discard(), MQTTConf{Host: "broker", Port: "1883", Topic: "t"})
	c.Println("dropped")
	assert.NoError(t, c.Stop())
}

func TestStartRefused(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Skip("no loopback listener:", err)
	}
	addr := ln.Addr().(*net.TCPAddr)
	ln.Close()

	c := NewClient(logger.Discard(), MQTTConf{
		ClientID: "test",
		Host:     "127.0.0.1",
		Port:     strconv.Itoa(addr.Port),
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	assert.Error(t, c.Start(ctx))
	assert.NoError(t, c.Stop())
}
