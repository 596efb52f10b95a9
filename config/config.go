// Initializing common application configuration
package config

import (
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Push     PushConfig     `mapstructure:"push"`
	Worker   WorkerConfig   `mapstructure:"worker"`
}

type ServerConfig struct {
	AppVersion   string `json:"appVersion"`
	Host         string `json:"host" validate:"required"`
	Port         string `json:"port" validate:"required"`
	Timeout      time.Duration
	Idle_timeout time.Duration
	Env          string `json:"environment"`
	Mode         string `mapstructure:"mode"`
}

type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// ReminderConfig holds the deployment-level constants of the matching engine.
// All of them are fixed at process start; there is no runtime re-configuration.
type ReminderConfig struct {
	// Timezone is the single IANA zone all schedules and "now" are compared in.
	Timezone string `mapstructure:"timezone"`
	// TickInterval is the cadence of the matching tick.
	TickInterval time.Duration `mapstructure:"tick_interval"`
	// MatchWindow widens the due check to the preceding N minutes, covering
	// ticks delayed by clock drift or cold starts. Zero means exact-minute.
	MatchWindow time.Duration `mapstructure:"match_window"`
	// DailyClaimTTL is how long a daily dispatch claim is kept before it may
	// be garbage collected. Must exceed 24h so a day's claim outlives its day.
	DailyClaimTTL time.Duration `mapstructure:"daily_claim_ttl"`
	// WorkerPoolSize bounds the concurrent claim+send fan-out within one tick.
	WorkerPoolSize int `mapstructure:"worker_pool_size"`
}

type PushConfig struct {
	Endpoint  string        `mapstructure:"endpoint"`
	ServerKey string        `mapstructure:"server_key"`
	Timeout   time.Duration `mapstructure:"timeout"`
	Enabled   bool          `mapstructure:"enabled"`
}

type WorkerConfig struct {
	CleanupInterval time.Duration `mapstructure:"cleanup_interval"`
}

type RedisConfig struct {
	URL      string `json:"URL"`
	Host     string `json:"host" validate:"required"`
	Port     int    `json:"port" validate:"required"`
	Password string `json:"password" validate:"required"`
	DB       int    `json:"db" validate:"required"`

	MaxRetries   int
	PoolSize     int
	MinIdleConns int
	MaxIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolTimeout  time.Duration
}

func LoadConfig() (*viper.Viper, error) {

	viperInstance := viper.New()

	viperInstance.AddConfigPath("./config")
	viperInstance.SetConfigName("config")
	viperInstance.SetConfigType("yaml")

	setDefaults(viperInstance)

	err := viperInstance.ReadInConfig()

	if err != nil {
		return nil, err
	}
	return viperInstance, nil
}

func ParseConfig(v *viper.Viper) (*Config, error) {

	var c Config

	err := v.Unmarshal(&c)
	if err != nil {
		log.Fatalf("unable to decode config into struct, %v", err)
		return nil, err
	}
	return &c, nil
}

func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "localhost")
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "release")

	// Reminder defaults: one tick per minute in a single fixed zone,
	// exact-minute matching.
	v.SetDefault("reminder.timezone", "Africa/Casablanca")
	v.SetDefault("reminder.tick_interval", time.Minute)
	v.SetDefault("reminder.match_window", 0)
	v.SetDefault("reminder.daily_claim_ttl", 48*time.Hour)
	v.SetDefault("reminder.worker_pool_size", 8)

	// Push defaults
	v.SetDefault("push.endpoint", "https://fcm.googleapis.com/fcm/send")
	v.SetDefault("push.timeout", 10*time.Second)
	v.SetDefault("push.enabled", true)

	// Worker defaults
	v.SetDefault("worker.cleanup_interval", time.Hour)
}

func GetEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
