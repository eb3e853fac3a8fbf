package config

import (
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	Environment string `envconfig:"ENV" default:"development"`

	DBConnectionString string `envconfig:"DATABASE_URL" required:"true"`
	JWTSecret          string `envconfig:"JWT_SECRET" required:"true"`

	S3URL       string `envconfig:"S3_URL" required:"true"`
	S3Bucket    string `envconfig:"S3_BUCKET" required:"true"`
	S3Region    string `envconfig:"S3_REGION" required:"true"`
	S3AccessKey string `envconfig:"S3_ACCESS_KEY" required:"true"`
	S3SecretKey string `envconfig:"S3_SECRET_KEY" required:"true"`
	// Public base URL for objects in the bucket, used for persisted cover
	// images. Falls back to path-style addressing against S3URL when empty.
	S3PublicBaseURL string `envconfig:"S3_PUBLIC_BASE_URL"`

	// OpenAI settings
	OpenAIAPIKey  string `envconfig:"OPENAI_API_KEY" required:"true"`
	StandardModel string `envconfig:"OPENAI_STANDARD_MODEL" default:"gpt-4o-mini"`
	ImageModel    string `envconfig:"OPENAI_IMAGE_MODEL" default:"dall-e-3"`
	SpeechModel   string `envconfig:"OPENAI_SPEECH_MODEL" default:"whisper-1"`

	// Monthly usage caps, tracked independently per action kind.
	MaxGenerationsPerMonth    int `envconfig:"MAX_GENERATIONS_PER_MONTH" default:"5"`
	MaxTranscriptionsPerMonth int `envconfig:"MAX_TRANSCRIPTIONS_PER_MONTH" default:"5"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
