package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultPort, cfg.Network.Port)
	assert.Equal(t, "info", cfg.Logger.Level)

	d, err := cfg.Network.SettleDuration()
	require.NoError(t, err)
	assert.Equal(t, 500*time.Millisecond, d)
}

func TestNewConfig_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.toml")
	err := os.WriteFile(path, []byte(`
[logger]
log-level = "debug"

[network]
subnet = "10.0.0."
settle = "50ms"

[mqtt]
enabled = true
server = "broker"
qos = 1
`), 0o600)
	require.NoError(t, err)

	cfg, err := NewConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logger.Level)
	assert.Equal(t, "10.0.0.", cfg.Network.Subnet)
	assert.Equal(t, DefaultPort, cfg.Network.Port)
	assert.Equal(t, "broker", cfg.MQTT.Host)
	assert.Equal(t, "1883", cfg.MQTT.Port)
	assert.Equal(t, byte(1), cfg.MQTT.Qos)
}

func TestNewConfig_Sample(t *testing.T) {
	_, err := NewConfig(filepath.Join("..", "..", "configs", "conf.toml"))
	assert.NoError(t, err)
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"port":   func(c *Config) { c.Network.Port = 70000 },
		"settle": func(c *Config) { c.Network.Settle = "soon" },
		"neg":    func(c *Config) { c.Network.Settle = "-1s" },
		"mqtt":   func(c *Config) { c.MQTT.Enabled = true },
		"qos":    func(c *Config) { c.MQTT.Qos = 3 },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
	cfg := Default()
	assert.NoError(t, cfg.Validate())
}
