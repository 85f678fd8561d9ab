package config

type Config struct {
	Environment Environment
	Log         Log
	HTTP        HTTPServer
	BaseURL     string `env:"BASE_URL"`
	DatabaseURL string `env:"DATABASE_URL"`

	JWT      JWT      `envPrefix:"JWT_"`
	Stripe   Stripe   `envPrefix:"STRIPE_"`
	Checkout Checkout `envPrefix:"CHECKOUT_"`
	SMTP     SMTP     `envPrefix:"SMTP_"`
	Layout   Layout   `envPrefix:"LAYOUT_"`
}

type Stripe struct {
	BaseApiURL    string `env:"BASE_API_URL" envDefault:"https://api.stripe.com"`
	SecretKey     string `env:"SECRET_KEY"`
	WebhookSecret string `env:"WEBHOOK_SECRET"`
}

type JWT struct {
	Secret string `env:"SECRET"`
}

// Checkout carries the money constants applied when the caller does not
// override them per request.
type Checkout struct {
	TaxRate     float64 `env:"TAX_RATE" envDefault:"0.10"`
	ShippingFee float64 `env:"SHIPPING_FEE" envDefault:"5.00"`
	Currency    string  `env:"CURRENCY" envDefault:"usd"`
}

type SMTP struct {
	Host     string `env:"HOST"`
	Port     int    `env:"PORT" envDefault:"587"`
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`
	From     string `env:"FROM"`
}

type Layout struct {
	CronSpec string `env:"CRON" envDefault:"0 3 * * *"`
}

type Environment struct {
	Name string `env:"ENVIRONMENT" envDefault:"development"`
}

type Log struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type HTTPServer struct {
	Host string `env:"HTTP_HOST" envDefault:"0.0.0.0"`
	Port string `env:"HTTP_PORT" envDefault:"8080"`
}
