package config

import (
	"fmt"
	"time"

	"github.com/BurntSushi/toml"
)

// Значения по умолчанию прошивки узла.
const (
	DefaultPort   = 12000
	DefaultSettle = "500ms"
)

// Config структура конфигурации.
type Config struct {
	Logger  LogConf     `toml:"logger"`  // Logger - конфигурация регистратора.
	Network NetworkConf `toml:"network"` // Network - куда загружаются маршруты.
	MQTT    MQTTConf    `toml:"mqtt"`    // MQTT - зеркало протокола в брокер.
	Metrics MetricsConf `toml:"metrics"` // Metrics - выгрузка метрик в файл.
}

// LogConf структура конфигурации.
type LogConf struct {
	Level   string `toml:"log-level"` // Level - уровень логирования.
	NoColor bool   `toml:"no-color"`  // NoColor - без цветов.
}

// NetworkConf структура конфигурации.
type NetworkConf struct {
	// Subnet - префикс подсети, к нему добавляется ID узла ("192.168.1.").
	// Пусто - первая локальная IPv4 сеть.
	Subnet string `toml:"subnet"`
	Port   int    `toml:"port"`   // Port - порт сервиса узла.
	Settle string `toml:"settle"` // Settle - пауза после каждого сообщения.
}

// MQTTConf структура конфигурации.
type MQTTConf struct {
	Enabled  bool   `toml:"enabled"`  // Enabled - включить публикацию.
	ClientID string `toml:"clientID"` // ClientID - имя клиента.
	Host     string `toml:"server"`   // Host - адрес MQTT сервера.
	Port     string `toml:"port"`     // Port - порт MQTT сервера.
	User     string `toml:"user"`     // User - логин для подключения к MQTT серверу.
	Password string `toml:"password"` // Password - пароль для подключения к MQTT серверу.
	Topic    string `toml:"topic"`    // Topic - топик для строк протокола.
	Qos      byte   `toml:"qos"`      // Qos - качество обслуживания.
}

// MetricsConf структура конфигурации.
type MetricsConf struct {
	Textfile string `toml:"textfile"`
}

// Default значения по умолчанию.
func Default() Config {
	return Config{
		Logger: LogConf{Level: "info"},
		Network: NetworkConf{
			Port:   DefaultPort,
			Settle: DefaultSettle,
		},
		MQTT: MQTTConf{
			ClientID: "sbconf",
			Port:     "1883",
			Topic:    "soundblocks/transcript",
		},
	}
}

// NewConfig конструктор. Пустой путь - значения по умолчанию.
func NewConfig(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return &cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return &cfg, err
	}
	return &cfg, nil
}

// Validate проверяет значения конфигурации.
func (c *Config) Validate() error {
	if c.Network.Port <= 0 || c.Network.Port > 65535 {
		return fmt.Errorf("network.port %d out of range", c.Network.Port)
	}
	if _, err := c.Network.SettleDuration(); err != nil {
		return err
	}
	if c.MQTT.Enabled && c.MQTT.Host == "" {
		return fmt.Errorf("mqtt.server is required when mqtt is enabled")
	}
	if c.MQTT.Qos > 2 {
		return fmt.Errorf("mqtt.qos %d out of range", c.MQTT.Qos)
	}
	return nil
}

// SettleDuration разбирает паузу между сообщениями.
func (n NetworkConf) SettleDuration() (time.Duration, error) {
	d, err := time.ParseDuration(n.Settle)
	if err != nil {
		return 0, fmt.Errorf("network.settle: %w", err)
	}
	if d < 0 {
		return 0, fmt.Errorf("network.settle must not be negative")
	}
	return d, nil
}
