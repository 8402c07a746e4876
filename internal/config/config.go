package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type PaymentConfig struct {
	Env string     `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer    `yaml:"http_server"`
	PaymentDB     `yaml:"payment_db"`
	LogConfig     `yaml:"log_config"`
	Oracle        `yaml:"oracle"`
	KafkaService  `yaml:"kafka-service"`
	WalletService `yaml:"wallet-service"`
	Payment       `yaml:"payment"`
}

type HTTPServer struct {
	Host string `yaml:"host" env:"HTTP_HOST" env-default:"0.0.0.0"`
	Port string `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
}

type PaymentDB struct {
	Dsn            string `yaml:"dsn" env:"PAYMENT_DB_DSN"`
	MigrationsPath string `yaml:"migrations_path" env:"MIGRATIONS_PATH"`
}

type LogConfig struct {
	LogLevel  string `yaml:"log_level" env-default:"info"`
	LogFormat string `yaml:"log_format" env-default:"json"`
	LogOutput string `yaml:"log_output" env-default:"stdout"`
}

type Oracle struct {
	BaseURL         string        `yaml:"base_url" env-default:"https://api.rapira.net"`
	Pair            string        `yaml:"pair" env-default:"USDT/RUB"`
	FallbackRate    string        `yaml:"fallback_rate" env:"ORACLE_FALLBACK_RATE"`
	CacheTTL        time.Duration `yaml:"cache_ttl" env-default:"30s"`
	RefreshInterval time.Duration `yaml:"refresh_interval" env-default:"30s"`
	RequestTimeout  time.Duration `yaml:"request_timeout" env-default:"10s"`
}

type KafkaService struct {
	Host            string `yaml:"host" env:"KAFKA_HOST"`
	Port            string `yaml:"port" env:"KAFKA_PORT"`
	SettlementTopic string `yaml:"settlement_topic" env-default:"settlement-events"`
}

type WalletService struct {
	Host string `yaml:"host" env:"WALLET_HOST"`
	Port string `yaml:"port" env:"WALLET_PORT"`
}

type Payment struct {
	SessionTTL            time.Duration `yaml:"session_ttl" env-default:"30m"`
	TargetCurrency        string        `yaml:"target_currency" env-default:"USDT"`
	RequiredConfirmations int32         `yaml:"required_confirmations" env-default:"1"`
}

func MustLoad() *PaymentConfig {

	// Processing env config variable and file
	configPath := os.Getenv("PAYMENT_CONFIG_PATH")

	if configPath == "" {
		log.Fatalf("PAYMENT_CONFIG_PATH was not found\n")
	}

	if _, err := os.Stat(configPath); err != nil {
		log.Fatalf("failed to find config file: %v\n", err)
	}

	// YAML to struct object
	var cfg PaymentConfig
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		log.Fatalf("failed to read config file: %v", err)
	}

	return &cfg
}
