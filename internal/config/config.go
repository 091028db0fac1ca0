package config

import (
	"log"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	Port        string   `env:"PORT" envDefault:"8080"`
	BaseURL     string   `env:"BASE_URL" envDefault:"http://localhost:8080"`
	CORSOrigins []string `env:"CORS_ORIGINS" envDefault:"http://localhost:3000"`
	// FrontendURL is the storefront the API redirects to after login; empty means same origin.
	FrontendURL string `env:"FRONTEND_URL"`
	JWTSecret   string `env:"JWT_SECRET"`
	// SessionSecret signs the OAuth state and the buyer's pending-order cookie.
	SessionSecret string `env:"SESSION_SECRET"`
	SecureCookies bool   `env:"SECURE_COOKIES" envDefault:"false"`

	Scylla   Scylla  `envPrefix:"SCYLLA_"`
	Redis    Redis   `envPrefix:"REDIS_"`
	Elastic  Elastic `envPrefix:"ELASTIC_"`
	MinIO    MinIO   `envPrefix:"MINIO_"`
	Stripe   Stripe  `envPrefix:"STRIPE_"`
	SMTP     SMTP    `envPrefix:"SMTP_"`
	Google   OAuth   `envPrefix:"GOOGLE_"`
	Facebook OAuth   `envPrefix:"FACEBOOK_"`
}

type Scylla struct {
	Hosts       []string `env:"HOSTS" envDefault:"127.0.0.1"`
	SSLEnabled  bool     `env:"SSL_ENABLED"`
	CACertPath  string   `env:"SSL_CA_PATH"`
	Keyspace    string   `env:"KEYSPACE" envDefault:"elite_market"`
	Username    string   `env:"ROLE"`
	Password    string   `env:"PASSWORD"`
	NumConns    int      `env:"NUM_CONNS" envDefault:"20"`
	TimeoutSecs int      `env:"TIMEOUT_SECONDS" envDefault:"5"`
}

type Redis struct {
	Host     string `env:"HOST" envDefault:"localhost:6379"`
	Password string `env:"PASSWORD"`
}

type Elastic struct {
	URL      string `env:"URL"`
	User     string `env:"USER"`
	Password string `env:"PASSWORD"`
	Index    string `env:"INDEX" envDefault:"products"`
}

type MinIO struct {
	Endpoint  string `env:"ENDPOINT"`
	AccessKey string `env:"ACCESS_KEY"`
	SecretKey string `env:"SECRET_KEY"`
	UseSSL    bool   `env:"USE_SSL"`
	Bucket    string `env:"BUCKET" envDefault:"products"`
	// PublicURL is the base the stored object names are appended to.
	PublicURL string `env:"PUBLIC_URL"`
}

type Stripe struct {
	SecretKey         string   `env:"SECRET_KEY"`
	Currency          string   `env:"CURRENCY" envDefault:"usd"`
	ShippingCountries []string `env:"SHIPPING_COUNTRIES" envDefault:"AR,ES,MX,CO,US"`
	LineItemImage     string   `env:"LINE_ITEM_IMAGE" envDefault:"https://cdn-icons-png.flaticon.com/512/3135/3135715.png"`
}

type SMTP struct {
	Host     string `env:"HOST" envDefault:"ssl0.ovh.net"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM" envDefault:"noreply@elite-market.app"`
}

type OAuth struct {
	ClientID     string `env:"CLIENT_ID"`
	ClientSecret string `env:"CLIENT_SECRET"`
}

// SiteURL is the storefront buyers are linked to from e-mails and receipts.
func (c *Config) SiteURL() string {
	if c.FrontendURL != "" {
		return c.FrontendURL
	}
	return c.BaseURL
}

// Load reads .env (if any) then parses the process environment.
func Load() (*Config, error) {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("⚠️  No .env file found, using the system environment")
	} else {
		log.Println("✅ .env loaded")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
