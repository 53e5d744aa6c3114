package internal

import (
	"fmt"
	"strings"

	"github.com/Netflix/go-env"
	"github.com/joho/godotenv"
	"github.com/samber/lo"
)

type Config struct {
	BadgerFilepath      string `env:"BADGER_FILEPATH,default=./data/strikeup"`
	InMemory            bool   `env:"IN_MEMORY,default=false"`
	LogLevel            string `env:"LOG_LEVEL,default=INFO"`
	SeedSampleData      bool   `env:"SEED_SAMPLE_DATA,default=true"`
	RecentActivityLimit int    `env:"RECENT_ACTIVITY_LIMIT,default=5"`
	MaxContentLength    int    `env:"MAX_CONTENT_LENGTH,default=1000"`
	DebugPort           int    `env:"DEBUG_PORT,default=8081"`
	CensoredWords       string `env:"CENSORED_WORDS"`
	CharReplacement     string `env:"CHARACTER_REPLACEMENT,default=*"`
}

// LoadConfig reads an optional .env file then the process environment.
func LoadConfig() (Config, error) {
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return Config{}, fmt.Errorf("config error: %w", err)
	}
	if config.RecentActivityLimit < 1 {
		return Config{}, fmt.Errorf("RECENT_ACTIVITY_LIMIT must be positive, got %d", config.RecentActivityLimit)
	}
	if config.MaxContentLength < 0 {
		return Config{}, fmt.Errorf("MAX_CONTENT_LENGTH must not be negative, got %d", config.MaxContentLength)
	}
	if _, err := CharacterRune(config.CharReplacement); err != nil {
		return Config{}, err
	}
	return config, nil
}

// Words splits CENSORED_WORDS on commas, dropping blanks.
func (c Config) Words() []string {
	return lo.Compact(lo.Map(strings.Split(c.CensoredWords, ","), func(w string, _ int) string {
		return strings.TrimSpace(w)
	}))
}

func CharacterRune(str string) (rune, error) {
	r := []rune(str)
	if len(r) != 1 {
		return 0, fmt.Errorf(
			"CHARACTER_REPLACEMENT must be a single character, got %q",
			str,
		)
	}
	return r[0], nil
}
