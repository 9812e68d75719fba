package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"slices"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	HTTP      HTTPConfig
	DB        DBConfig
	Redis     RedisConfig
	Kafka     KafkaConfig
	JWT       JWTConfig
	Jobs      JobsConfig
	Collect   CollectConfig
	Telemetry TelemetryConfig
}

type AppConfig struct {
	Name         string `envconfig:"APP_NAME" default:"hawker"`
	Version      string `envconfig:"APP_VERSION" default:"dev"`
	LogLevel     string `envconfig:"LOG_LEVEL" default:"info"`
	LogFormat    string `envconfig:"LOG_FORMAT" default:"json"`
	LogWarnStack bool   `envconfig:"LOG_WARN_STACK" default:"false"`
}

type HTTPConfig struct {
	Port              string        `envconfig:"HTTP_PORT" default:"8082"`
	BodyLimit         string        `envconfig:"HTTP_BODY_LIMIT" default:"64K"`
	ReadHeaderTimeout time.Duration `envconfig:"HTTP_READ_HEADER_TIMEOUT" default:"5s"`
	ShutdownTimeout   time.Duration `envconfig:"HTTP_SHUTDOWN_TIMEOUT" default:"10s"`
}

type DBConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `envconfig:"DB_DRIVER" default:"postgres"`
	DSN    string `envconfig:"DB_DSN"`

	Host     string `envconfig:"DB_HOST"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER"`
	Password string `envconfig:"DB_PASSWORD"`
	Name     string `envconfig:"DB_NAME"`
	SSLMode  string `envconfig:"DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DB_CONN_MAX_IDLE_TIME" default:"10m"`
	LogQueries      bool          `envconfig:"DB_LOG_QUERIES" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"REDIS_URL"`
	Address      string        `envconfig:"REDIS_ADDRESS"`
	Password     string        `envconfig:"REDIS_PASSWORD"`
	DB           int           `envconfig:"REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"REDIS_READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"REDIS_WRITE_TIMEOUT" default:"3s"`
}

func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type KafkaConfig struct {
	Brokers []string `envconfig:"KAFKA_BROKERS"`
	Topic   string   `envconfig:"KAFKA_FULFILLMENT_TOPIC" default:"hawker.fulfillment"`
}

func (k KafkaConfig) Enabled() bool {
	return len(k.Brokers) > 0
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Issuer   string        `envconfig:"JWT_ISSUER"`
	Audience string        `envconfig:"JWT_AUDIENCE"`
	Leeway   time.Duration `envconfig:"JWT_LEEWAY" default:"30s"`
}

type JobsConfig struct {
	Enabled        bool          `envconfig:"JOBS_ENABLED" default:"true"`
	ExpirySchedule string        `envconfig:"JOBS_EXPIRY_SCHEDULE" default:"0 * * * * *"`
	AwaitingTTL    time.Duration `envconfig:"JOBS_AWAITING_TTL" default:"30m"`
	BatchSize      int           `envconfig:"JOBS_EXPIRY_BATCH_SIZE" default:"100"`
	LockTTL        time.Duration `envconfig:"JOBS_LOCK_TTL" default:"5m"`
}

type CollectConfig struct {
	MaxAttempts int           `envconfig:"COLLECT_MAX_ATTEMPTS" default:"5"`
	Window      time.Duration `envconfig:"COLLECT_WINDOW" default:"1m"`
}

type TelemetryConfig struct {
	Enabled     bool    `envconfig:"OTEL_ENABLED" default:"false"`
	Endpoint    string  `envconfig:"OTEL_EXPORTER_OTLP_ENDPOINT" default:"localhost:4317"`
	Insecure    bool    `envconfig:"OTEL_EXPORTER_OTLP_INSECURE" default:"true"`
	SampleRatio float64 `envconfig:"OTEL_TRACES_SAMPLE_RATIO" default:"1"`
}

// LoadConfig reads .env when present, then the process environment.
func LoadConfig() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDBConfig reads only the DB_* settings. Tools that never serve traffic use it so
// they do not need JWT_SECRET and friends.
func LoadDBConfig() (DBConfig, error) {
	if err := loadDotEnv(); err != nil {
		return DBConfig{}, err
	}

	var db DBConfig
	if err := envconfig.Process("", &db); err != nil {
		return DBConfig{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := db.ensureDSN(); err != nil {
		return DBConfig{}, err
	}
	return db, nil
}

func loadDotEnv() error {
	if err := godotenv.Load(".env"); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	return nil
}

// ensureDSN builds a postgres URL from the DB_* parts when DB_DSN is not set.
func (db *DBConfig) ensureDSN() error {
	db.Driver = strings.ToLower(strings.TrimSpace(db.Driver))
	if db.DSN != "" {
		return nil
	}
	if db.Driver == "sqlite" {
		return errors.New("DB_DSN is required for the sqlite driver")
	}

	var missing []string
	for key, value := range map[string]string{"DB_HOST": db.Host, "DB_USER": db.User, "DB_NAME": db.Name} {
		if value == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("DB_DSN or %s must be set", strings.Join(missing, ", "))
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(db.User, db.Password),
		Host:     db.Host + ":" + db.Port,
		Path:     "/" + db.Name,
		RawQuery: url.Values{"sslmode": []string{db.SSLMode}}.Encode(),
	}
	db.DSN = u.String()
	return nil
}
