package config

import (
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

func New() (*Config, error) {
	var Config Config
	err := godotenv.Load(".env")
	if err != nil {
		logrus.Warn("no .env file found, reading configuration from the environment")
	}
	if err := env.Parse(&Config); err != nil {
		logrus.Fatalf("Error initializing: %s", err.Error())
		os.Exit(1)
	}
	return &Config, nil
}

type Config struct {
	APP
	Payment
	Gemini
	SMTP
	Storage
	Pipeline
	Ledger
	Kafka
	S3
	RateLimit
	CORS
}

type APP struct {
	PORT      string `env:"APP_PORT" envDefault:"8080"`
	LogLevel  string `env:"LOG_LEVEL" envDefault:"info"`
	LogFormat string `env:"LOG_FORMAT" envDefault:"text"`
}

type Payment struct {
	AccessToken string        `env:"MERCADOPAGO_ACCESS_TOKEN"`
	APIURL      string        `env:"MERCADOPAGO_API_URL" envDefault:"https://api.mercadopago.com"`
	Price       float64       `env:"PETSTORY_PRICE" envDefault:"29.90"`
	BaseURL     string        `env:"BASE_URL" envDefault:"http://localhost:8080"`
	Timeout     time.Duration `env:"MERCADOPAGO_TIMEOUT" envDefault:"15s"`
}

type Gemini struct {
	APIKey      string        `env:"GEMINI_API_KEY"`
	APIURL      string        `env:"GEMINI_API_URL" envDefault:"https://generativelanguage.googleapis.com/v1beta"`
	Model       string        `env:"GEMINI_MODEL" envDefault:"gemini-2.5-flash-image"`
	Temperature float64       `env:"GEMINI_TEMPERATURE" envDefault:"0.4"`
	Timeout     time.Duration `env:"GEMINI_TIMEOUT" envDefault:"90s"`
	MinInterval time.Duration `env:"GEMINI_MIN_INTERVAL" envDefault:"2s"`
}

type SMTP struct {
	Host     string        `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	Port     int           `env:"SMTP_PORT" envDefault:"587"`
	Username string        `env:"SMTP_USER"`
	Password string        `env:"SMTP_PASSWORD"`
	From     string        `env:"SMTP_FROM"`
	FromName string        `env:"SMTP_FROM_NAME" envDefault:"PetStory"`
	Timeout  time.Duration `env:"SMTP_TIMEOUT" envDefault:"30s"`
}

type Storage struct {
	WorkDir string `env:"WORK_DIR" envDefault:"./pedidos"`
}

type Pipeline struct {
	MaxImageSide int `env:"PIPELINE_MAX_IMAGE_SIDE" envDefault:"1536"`
}

type Ledger struct {
	SessionTTL          time.Duration `env:"LEDGER_SESSION_TTL" envDefault:"24h"`
	Retention           time.Duration `env:"LEDGER_RETENTION" envDefault:"168h"`
	ExpirySweepInterval time.Duration `env:"LEDGER_EXPIRY_SWEEP_INTERVAL" envDefault:"5m"`
	PurgeInterval       time.Duration `env:"LEDGER_PURGE_INTERVAL" envDefault:"1h"`
}

type Kafka struct {
	Enabled              bool   `env:"KAFKA_ENABLED" envDefault:"false"`
	Brokers              string `env:"KAFKA_BROKERS" envDefault:"localhost:9092"`
	PaymentConsumerGroup string `env:"KAFKA_PAYMENT_GROUP_ID" envDefault:"petstory-service"`
	PublishTopics        string `env:"KAFKA_PUBLISH_TOPICS" envDefault:"orders.admitted,orders.completed,orders.failed,payments.dlq"`
	SubscriberTopics     string `env:"KAFKA_SUBSCRIBER_TOPICS" envDefault:"payments.notifications"`

	RetryMaxAttempts int           `env:"KAFKA_RETRY_MAX_ATTEMPTS" envDefault:"5"`
	RetryBaseDelay   time.Duration `env:"KAFKA_RETRY_BASE_DELAY" envDefault:"100ms"`
	RetryMaxDelay    time.Duration `env:"KAFKA_RETRY_MAX_DELAY" envDefault:"10s"`
	RetryJitter      bool          `env:"KAFKA_RETRY_JITTER" envDefault:"true"`
}

type S3 struct {
	Enabled bool   `env:"S3_ARCHIVE_ENABLED" envDefault:"false"`
	Bucket  string `env:"S3_BUCKET"`
	Region  string `env:"AWS_REGION" envDefault:"us-east-1"`
	Prefix  string `env:"S3_PREFIX" envDefault:"orders"`
}

type RateLimit struct {
	RequestsPerSecond float64 `env:"RATE_LIMIT_RPS" envDefault:"5"`
	Burst             int     `env:"RATE_LIMIT_BURST" envDefault:"10"`
}

type CORS struct {
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:3000"`
	Origins     string `env:"CORS_ORIGINS"`
	AllowAll    bool   `env:"CORS_ALLOW_ALL" envDefault:"false"`
}

// AllowedOrigins returns the frontend URL followed by the extra CORS_ORIGINS
// entries, without trailing slashes or duplicates.
func (c CORS) AllowedOrigins() []string {
	seen := make(map[string]bool)
	var origins []string
	for _, o := range append([]string{c.FrontendURL}, strings.Split(c.Origins, ",")...) {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "" || seen[o] {
			continue
		}
		seen[o] = true
		origins = append(origins, o)
	}
	return origins
}

type RetryConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
	Jitter      bool
}

func (k Kafka) GetRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: k.RetryMaxAttempts,
		BaseDelay:   k.RetryBaseDelay,
		MaxDelay:    k.RetryMaxDelay,
		Jitter:      k.RetryJitter,
	}
}

// GetRetryConfig returns the backoff used by the payment gateway client.
func (p Payment) GetRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		BaseDelay:   200 * time.Millisecond,
		MaxDelay:    2 * time.Second,
		Jitter:      true,
	}
}

// ConfigureLogger applies the level and formatter to the global logrus logger.
func (a APP) ConfigureLogger() {
	level, err := logrus.ParseLevel(a.LogLevel)
	if err != nil {
		logrus.Warnf("unknown log level %q, falling back to info", a.LogLevel)
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
	if a.LogFormat == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
		return
	}
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
}
