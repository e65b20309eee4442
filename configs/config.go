package config

import (
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

type Config struct {
	App
	Database
	Auth
	Stripe
	Cloudinary
	Email
}

type App struct {
	Port        string `env:"APP_PORT" envDefault:"8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"https://www.englishacademy.dev"`
}

type Database struct {
	URL string `env:"DATABASE_URL,required"`
}

type Auth struct {
	JWTSecret     string `env:"JWT_SECRET,required"`
	AdminEmail    string `env:"ADMIN_EMAIL"`
	AdminPassword string `env:"ADMIN_PASSWORD"`
	AdminFullName string `env:"ADMIN_FULL_NAME" envDefault:"Platform Admin"`
}

// Stripe credentials are required at boot: a missing webhook secret must fail
// startup, never an individual webhook delivery.
type Stripe struct {
	SecretKey     string `env:"STRIPE_SECRET_KEY,required"`
	WebhookSecret string `env:"STRIPE_WEBHOOK_SECRET,required"`
}

type Cloudinary struct {
	URL string `env:"CLOUDINARY_URL"`
}

type Email struct {
	BrevoAPIKey string `env:"BREVO_API_KEY"`
	SenderEmail string `env:"EMAIL_SENDER"`
	SenderName  string `env:"EMAIL_SENDER_NAME"`
}

func New() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		logrus.Warn("no .env file found, reading from system environment variables")
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
