package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Backend struct {
		Host           string  `yaml:"host"`
		TimeoutSeconds int     `yaml:"timeout_seconds"`
		RequestsPerSec float64 `yaml:"requests_per_sec"`
	} `yaml:"backend"`

	Listing struct {
		PageSize int `yaml:"page_size"`
	} `yaml:"listing"`

	Scrape struct {
		Region string `yaml:"region"`
		Role   string `yaml:"role"`
	} `yaml:"scrape"`

	UI struct {
		// nil means "not set": fall back to the stored preference, then the
		// platform color scheme.
		DarkMode *bool `yaml:"dark_mode,omitempty"`
	} `yaml:"ui"`
}

func Default() Config {
	var cfg Config
	cfg.Backend.Host = "http://127.0.0.1:8000"
	cfg.Backend.TimeoutSeconds = 30
	cfg.Backend.RequestsPerSec = 5
	cfg.Listing.PageSize = 20
	cfg.Scrape.Region = "Remote"
	cfg.Scrape.Role = "Software Engineer"
	return cfg
}

func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	err = yaml.Unmarshal(b, &cfg)
	return cfg, err
}

// ApplyEnv lets environment variables override the file. godotenv has
// already folded any .env file into the process env by the time this runs.
func ApplyEnv(cfg Config) Config {
	if v := os.Getenv("JOBPILOT_HOST"); v != "" {
		cfg.Backend.Host = v
	}
	return cfg
}
