package config

import (
	"time"

	"github.com/caarlos0/env/v10"
)

// Config centraliza la configuración del servicio.
type Config struct {
	HTTPPort string `env:"HTTP_PORT" envDefault:"8080"`

	LLMAPIKey        string        `env:"LLM_API_KEY,required,notEmpty"`
	LLMBaseURL       string        `env:"LLM_BASE_URL" envDefault:"https://api.groq.com/openai/v1"`
	LLMModel         string        `env:"LLM_MODEL" envDefault:"llama3-8b-8192"`
	LLMCallTimeout   time.Duration `env:"LLM_CALL_TIMEOUT" envDefault:"60s"`
	LLMMaxInFlight   int           `env:"LLM_MAX_IN_FLIGHT" envDefault:"16"`
	LLMRatePerSecond float64       `env:"LLM_RATE_PER_SECOND" envDefault:"0"`
	LLMRateBurst     int           `env:"LLM_RATE_BURST" envDefault:"4"`

	// EvalTraitConcurrency en 0 lanza todos los rasgos del catalogo a la vez.
	EvalTraitConcurrency int           `env:"EVAL_TRAIT_CONCURRENCY" envDefault:"0"`
	EvalTimeout          time.Duration `env:"EVAL_TIMEOUT" envDefault:"3m"`
	TraitCatalogPath     string        `env:"TRAIT_CATALOG_PATH"`

	RedisAddr       string        `env:"REDIS_ADDR"`
	RedisPassword   string        `env:"REDIS_PASSWORD"`
	RedisDB         int           `env:"REDIS_DB" envDefault:"0"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"1m"`
	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"10"`

	JWTSecret    string        `env:"JWT_SECRET"`
	JWTAccessTTL time.Duration `env:"JWT_ACCESS_TTL" envDefault:"24h"`

	CORSAllowOrigin string `env:"CORS_ALLOW_ORIGIN" envDefault:"*"`
}

// LoadConfig carga la configuración desde variables de entorno.
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
