package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type HTTPServerConfig struct {
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	TimeoutGraceful time.Duration `yaml:"timeout_graceful_shutdown" env:"HTTP_TIMEOUT_GRACEFUL" env-default:"15s"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

// MongoDBConfig configures the optional order archive. An empty URI disables
// archiving entirely.
type MongoDBConfig struct {
	URI      string `yaml:"uri" env:"MONGO_URI"`
	User     string `yaml:"user" env:"MONGO_USER"`
	Password string `yaml:"password" env:"MONGO_PASSWORD"`
	Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"cart_service_db"`
}

// NATSConfig configures the optional checkout event publisher. An empty URL
// disables publishing.
type NATSConfig struct {
	URL string `yaml:"url" env:"NATS_URL"`
}

// SMTPConfig configures the optional receipt sender. An empty host disables
// receipt emails.
type SMTPConfig struct {
	Host        string `yaml:"host" env:"SMTP_HOST"`
	Port        int    `yaml:"port" env:"SMTP_PORT" env-default:"587"`
	Username    string `yaml:"username" env:"SMTP_USERNAME"`
	Password    string `yaml:"password" env:"SMTP_PASSWORD"`
	SenderEmail string `yaml:"sender_email" env:"SMTP_SENDER_EMAIL"`
	Encryption  string `yaml:"encryption" env:"SMTP_ENCRYPTION" env-default:"tls"`
	ServerName  string `yaml:"server_name" env:"SMTP_SERVER_NAME"`
}

type ShopAPIConfig struct {
	BaseURL string        `yaml:"base_url" env:"SHOP_API_BASE_URL" env-default:"https://accelerator-guitar-shop-api-v1.glitch.me"`
	Timeout time.Duration `yaml:"timeout" env:"SHOP_API_TIMEOUT" env-default:"10s"`
}

// CartConfig holds the snapshot key and its retention. A zero TTL keeps the
// snapshot until it is overwritten, matching a browser's local storage.
type CartConfig struct {
	SnapshotKey string        `yaml:"snapshot_key" env:"CART_SNAPSHOT_KEY" env-default:"cart-state-value"`
	TTL         time.Duration `yaml:"ttl" env:"CART_TTL" env-default:"0"`
}

type ProductCacheConfig struct {
	TTL time.Duration `yaml:"ttl" env:"PRODUCT_CACHE_TTL" env-default:"5m"`
}

type LoggerConfig struct {
	Level      string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
	Encoding   string `yaml:"encoding" env:"LOG_ENCODING" env-default:"json"`
	TimeFormat string `yaml:"time_format" env:"LOG_TIME_FORMAT" env-default:"2006-01-02T15:04:05.000Z07:00"`
}

type Config struct {
	Env          string             `yaml:"env" env:"ENV" env-default:"local"`
	HTTPServer   HTTPServerConfig   `yaml:"http_server"`
	Redis        RedisConfig        `yaml:"redis"`
	MongoDB      MongoDBConfig      `yaml:"mongo"`
	NATS         NATSConfig         `yaml:"nats"`
	SMTP         SMTPConfig         `yaml:"smtp"`
	ShopAPI      ShopAPIConfig      `yaml:"shop_api"`
	Cart         CartConfig         `yaml:"cart"`
	ProductCache ProductCacheConfig `yaml:"product_cache"`
	Logger       LoggerConfig       `yaml:"logger"`
}

func LoadConfig(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path == "" {
		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, err
		}
		return &cfg, nil
	}

	err := cleanenv.ReadConfig(path, &cfg)
	if err != nil {
		if _, ok := err.(*os.PathError); ok {
			log.Printf("Warning: Config file not found at %s, attempting to load from environment variables only.", path)
			if errEnv := cleanenv.ReadEnv(&cfg); errEnv != nil {
				return nil, errEnv
			}
			return &cfg, nil
		}
		return nil, err
	}
	return &cfg, nil
}

func MustLoad() *Config {
	configPath := os.Getenv("CONFIG_PATH_CART_SERVICE")
	if configPath == "" {
		configPath = "config.yaml"
	}
	cfg, err := LoadConfig(configPath)
	if err != nil {
		log.Fatalf("cannot load config: %v", err)
	}
	return cfg
}
