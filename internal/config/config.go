package config

import (
	"os"
	"strings"

	"github.com/spf13/viper"
)

// readSecret reads a Docker secret from a file path specified by an env var
// with _FILE suffix. If FOO is already set directly, the file is skipped.
// If FOO_FILE is set, reads the file content and sets FOO.
func readSecret(envKey string) {
	if os.Getenv(envKey) != "" {
		return
	}
	fileKey := envKey + "_FILE"
	filePath := os.Getenv(fileKey)
	if filePath == "" {
		return
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		return
	}
	val := strings.TrimSpace(string(data))
	os.Setenv(envKey, val)
}

type Config struct {
	Server    ServerConfig
	Redis     RedisConfig
	JWT       JWTConfig
	RateLimit RateLimitConfig
	LLM       LLMConfig
	Music     MusicConfig
	SFX       SFXConfig
	TTS       TTSConfig
	R2        R2Config
	Gateway   GatewayConfig
}

type ServerConfig struct {
	Port      string
	Env       string
	LogLevel  string
	ApiDomain string
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret     string
	Expiration int // hours
}

type RateLimitConfig struct {
	ComposePerMin int
	SpotPerHour   int
}

// LLMConfig points at an OpenAI-compatible chat completion endpoint used
// for drafting production plans and ad scripts.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
}

// MusicConfig covers the music generation provider plus its hard text
// limits, which the prompt composer budgets against.
type MusicConfig struct {
	APIKey           string
	BaseURL          string
	MaxGenSeconds    float64
	CompositionLimit int
	TitleLimit       int
	SimpleLimit      int
}

// SFXConfig is the sound-effects provider, which accepts shorter prompts
// than the music provider.
type SFXConfig struct {
	APIKey      string
	BaseURL     string
	PromptLimit int
}

// TTSConfig is the speech synthesis sidecar that renders voiceover and
// reports per-sentence timings.
type TTSConfig struct {
	ServiceURL string
	Timeout    int // seconds
}

type R2Config struct {
	AccountID       string
	AccessKeyID     string
	SecretAccessKey string
	BucketName      string
	PublicURL       string
}

type GatewayConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	// Read Docker Swarm secrets from _FILE env vars before Viper binds
	readSecret("REDIS_PASSWORD")
	readSecret("LLM_API_KEY")
	readSecret("MUSIC_API_KEY")
	readSecret("SFX_API_KEY")
	readSecret("R2_ACCOUNT_ID")
	readSecret("R2_ACCESS_KEY_ID")
	readSecret("R2_SECRET_ACCESS_KEY")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// Environment variables
	viper.AutomaticEnv()

	// Bind environment variables with underscores to nested config keys
	_ = viper.BindEnv("server.port", "SERVER_PORT")
	_ = viper.BindEnv("server.env", "SERVER_ENV")
	_ = viper.BindEnv("server.log_level", "LOG_LEVEL")
	_ = viper.BindEnv("server.api_domain", "API_DOMAIN")
	_ = viper.BindEnv("redis.addr", "REDIS_ADDR")
	_ = viper.BindEnv("redis.password", "REDIS_PASSWORD")
	_ = viper.BindEnv("redis.db", "REDIS_DB")
	_ = viper.BindEnv("jwt.secret", "JWT_SECRET")
	_ = viper.BindEnv("jwt.expiration", "JWT_EXPIRATION")
	_ = viper.BindEnv("llm.api_key", "LLM_API_KEY")
	_ = viper.BindEnv("llm.base_url", "LLM_BASE_URL")
	_ = viper.BindEnv("llm.model", "LLM_MODEL")
	_ = viper.BindEnv("music.api_key", "MUSIC_API_KEY")
	_ = viper.BindEnv("music.base_url", "MUSIC_BASE_URL")
	_ = viper.BindEnv("music.max_gen_seconds", "MUSIC_MAX_GEN_SECONDS")
	_ = viper.BindEnv("music.composition_limit", "MUSIC_COMPOSITION_LIMIT")
	_ = viper.BindEnv("music.title_limit", "MUSIC_TITLE_LIMIT")
	_ = viper.BindEnv("music.simple_limit", "MUSIC_SIMPLE_LIMIT")
	_ = viper.BindEnv("sfx.api_key", "SFX_API_KEY")
	_ = viper.BindEnv("sfx.base_url", "SFX_BASE_URL")
	_ = viper.BindEnv("sfx.prompt_limit", "SFX_PROMPT_LIMIT")
	_ = viper.BindEnv("tts.service_url", "TTS_SERVICE_URL")
	_ = viper.BindEnv("tts.timeout", "TTS_SERVICE_TIMEOUT")
	_ = viper.BindEnv("r2.account_id", "R2_ACCOUNT_ID")
	_ = viper.BindEnv("r2.access_key_id", "R2_ACCESS_KEY_ID")
	_ = viper.BindEnv("r2.secret_access_key", "R2_SECRET_ACCESS_KEY")
	_ = viper.BindEnv("r2.bucket_name", "R2_BUCKET_NAME")
	_ = viper.BindEnv("r2.public_url", "R2_PUBLIC_URL")
	_ = viper.BindEnv("gateway.enabled", "GATEWAY_ENABLED")

	// Defaults
	viper.SetDefault("server.port", "8000")
	viper.SetDefault("server.env", "development")
	viper.SetDefault("server.log_level", "info")
	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.password", "")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("jwt.secret", "change-me-in-production")
	viper.SetDefault("jwt.expiration", 24)
	viper.SetDefault("ratelimit.compose_per_min", 30)
	viper.SetDefault("ratelimit.spot_per_hour", 10)

	// LLM defaults
	viper.SetDefault("llm.base_url", "https://api.groq.com/openai/v1")
	viper.SetDefault("llm.model", "llama-3.3-70b-versatile")

	// Music provider defaults; the text limits mirror the provider's
	// documented caps and feed straight into the prompt composer.
	viper.SetDefault("music.base_url", "https://api.sunoapi.org")
	viper.SetDefault("music.max_gen_seconds", 120)
	viper.SetDefault("music.composition_limit", 2500)
	viper.SetDefault("music.title_limit", 80)
	viper.SetDefault("music.simple_limit", 500)

	// SFX defaults
	viper.SetDefault("sfx.prompt_limit", 450)

	// TTS sidecar defaults
	viper.SetDefault("tts.service_url", "http://localhost:8084")
	viper.SetDefault("tts.timeout", 120)

	// Gateway defaults
	viper.SetDefault("gateway.enabled", false)

	// Try to read config file (optional)
	_ = viper.ReadInConfig()

	cfg := &Config{
		Server: ServerConfig{
			Port:      viper.GetString("server.port"),
			Env:       viper.GetString("server.env"),
			LogLevel:  viper.GetString("server.log_level"),
			ApiDomain: viper.GetString("server.api_domain"),
		},
		Redis: RedisConfig{
			Addr:     viper.GetString("redis.addr"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},
		JWT: JWTConfig{
			Secret:     viper.GetString("jwt.secret"),
			Expiration: viper.GetInt("jwt.expiration"),
		},
		RateLimit: RateLimitConfig{
			ComposePerMin: viper.GetInt("ratelimit.compose_per_min"),
			SpotPerHour:   viper.GetInt("ratelimit.spot_per_hour"),
		},
		LLM: LLMConfig{
			APIKey:  viper.GetString("llm.api_key"),
			BaseURL: viper.GetString("llm.base_url"),
			Model:   viper.GetString("llm.model"),
		},
		Music: MusicConfig{
			APIKey:           viper.GetString("music.api_key"),
			BaseURL:          viper.GetString("music.base_url"),
			MaxGenSeconds:    viper.GetFloat64("music.max_gen_seconds"),
			CompositionLimit: viper.GetInt("music.composition_limit"),
			TitleLimit:       viper.GetInt("music.title_limit"),
			SimpleLimit:      viper.GetInt("music.simple_limit"),
		},
		SFX: SFXConfig{
			APIKey:      viper.GetString("sfx.api_key"),
			BaseURL:     viper.GetString("sfx.base_url"),
			PromptLimit: viper.GetInt("sfx.prompt_limit"),
		},
		TTS: TTSConfig{
			ServiceURL: viper.GetString("tts.service_url"),
			Timeout:    viper.GetInt("tts.timeout"),
		},
		R2: R2Config{
			AccountID:       viper.GetString("r2.account_id"),
			AccessKeyID:     viper.GetString("r2.access_key_id"),
			SecretAccessKey: viper.GetString("r2.secret_access_key"),
			BucketName:      viper.GetString("r2.bucket_name"),
			PublicURL:       viper.GetString("r2.public_url"),
		},
		Gateway: GatewayConfig{
			Enabled: viper.GetBool("gateway.enabled"),
		},
	}

	return cfg, nil
}
