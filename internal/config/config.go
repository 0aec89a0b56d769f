// Package config loads the service configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

const (
	EnvDev   = "dev"
	EnvStage = "stage"
	EnvProd  = "prod"
)

const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
)

const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheRedis  = "redis"
)

type Config struct {
	Env           string `yaml:"env" env:"ENV" validate:"oneof=dev stage prod"`
	Storage       string `yaml:"storage" env:"STORAGE" validate:"oneof=postgres mongo"`
	PublicBaseURL string `yaml:"public_base_url" env:"PUBLIC_BASE_URL" validate:"required,http_url"`
	Log           `yaml:"log"`
	HTTPServer    `yaml:"http_server"`
	Postgres      `yaml:"postgres"`
	Mongo         `yaml:"mongo"`
	Cache         `yaml:"cache"`
	Redis         `yaml:"redis"`
	FileAnalyse   `yaml:"file_analyse"`
}

type Log struct {
	Level string `yaml:"level" env:"LOG_LEVEL" validate:"oneof=debug info warn error"`
}

// SlogLevel returns the slog level matching Level.
func (l *Log) SlogLevel() slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(l.Level))); err != nil {
		return slog.LevelInfo
	}
	return level
}

var defaultLog = Log{
	Level: "info",
}

type HTTPServer struct {
	Port           int           `yaml:"port" env:"HTTP_PORT" validate:"min=1,max=65535"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT"`
	IdleTimeout    time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT"`
	MaxHeaderBytes int           `yaml:"max_header_bytes" env:"HTTP_MAX_HEADER_BYTES"`
	CertFile       string        `yaml:"cert_file" env:"HTTP_CERT_FILE"`
	KeyFile        string        `yaml:"key_file" env:"HTTP_KEY_FILE"`
}

var defaultHTTPServer = HTTPServer{
	Port:           8080,
	ReadTimeout:    5 * time.Second,
	WriteTimeout:   10 * time.Second,
	IdleTimeout:    time.Minute,
	MaxHeaderBytes: 1 << 20,
}

func (s *HTTPServer) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

// TLS reports whether the server is configured to serve HTTPS.
func (s *HTTPServer) TLS() bool {
	return s.CertFile != "" && s.KeyFile != ""
}

type Postgres struct {
	User            string        `yaml:"user" env:"POSTGRES_USER"`
	Password        string        `yaml:"password" env:"POSTGRES_PASSWORD"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST"`
	Port            int           `yaml:"port" env:"POSTGRES_PORT"`
	DB              string        `yaml:"db" env:"POSTGRES_DB"`
	SSLMode         string        `yaml:"sslmode" env:"POSTGRES_SSLMODE"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	ConnectRetries  uint64        `yaml:"connect_retries"`
	ConnectBackoff  time.Duration `yaml:"connect_backoff"`
}

var defaultPostgres = Postgres{
	Host:            "localhost",
	Port:            5432,
	SSLMode:         "disable",
	ConnMaxIdleTime: 5 * time.Minute,
	ConnMaxLifetime: 30 * time.Minute,
	MaxIdleConns:    5,
	MaxOpenConns:    25,
	ConnectRetries:  5,
	ConnectBackoff:  500 * time.Millisecond,
}

func (p *Postgres) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User, p.Password, p.Host, p.Port, p.DB, p.SSLMode)
}

type Mongo struct {
	URI            string        `yaml:"uri" env:"MONGO_URI"`
	DB             string        `yaml:"db" env:"MONGO_DB"`
	ConnectTimeout time.Duration `yaml:"connect_timeout"`
	ConnectRetries uint64        `yaml:"connect_retries"`
	ConnectBackoff time.Duration `yaml:"connect_backoff"`
}

var defaultMongo = Mongo{
	URI:            "mongodb://localhost:27017",
	DB:             "microservices",
	ConnectTimeout: 10 * time.Second,
	ConnectRetries: 5,
	ConnectBackoff: 500 * time.Millisecond,
}

type Cache struct {
	Driver string        `yaml:"driver" env:"CACHE_DRIVER" validate:"oneof=none memory redis"`
	TTL    time.Duration `yaml:"ttl" env:"CACHE_TTL"`
}

var defaultCache = Cache{
	Driver: CacheNone,
	TTL:    10 * time.Minute,
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDR"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB"`
}

var defaultRedis = Redis{
	Addr: "localhost:6379",
}

type FileAnalyse struct {
	MaxUploadBytes int64 `yaml:"max_upload_bytes" env:"FILE_ANALYSE_MAX_UPLOAD_BYTES" validate:"gt=0"`
}

var defaultFileAnalyse = FileAnalyse{
	MaxUploadBytes: 10 << 20,
}

// Load reads the YAML config file at path on top of the defaults, then applies
// overrides from the environment and validates the result.
func Load(path string) (*Config, error) {
	const op = "config.Load"

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to open config file: %w", op, err)
	}
	defer f.Close()

	var cfg Config
	setDefaults(&cfg)

	if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to decode config file: %w", op, err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("%s: failed to parse environment: %w", op, err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("%s: invalid config: %w", op, err)
	}

	return &cfg, nil
}

func setDefaults(cfg *Config) {
	cfg.Env = EnvDev
	cfg.Storage = StoragePostgres
	cfg.PublicBaseURL = "http://localhost:8080"
	cfg.Log = defaultLog
	cfg.HTTPServer = defaultHTTPServer
	cfg.Postgres = defaultPostgres
	cfg.Mongo = defaultMongo
	cfg.Cache = defaultCache
	cfg.Redis = defaultRedis
	cfg.FileAnalyse = defaultFileAnalyse
}
