package config

import (
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/contentiq/backend/keywords"
	"github.com/contentiq/backend/llm"
)

const (
	configPathEnv = "CONTENTIQ_CONFIG"
	portEnv       = "PORT"
	dataDirEnv    = "DATA_DIR"
	llmAPIKeyEnv  = "LLM_API_KEY"
	llmModelEnv   = "LLM_MODEL"
)

// Config holds the settings required across the service.
type Config struct {
	Port        string              `yaml:"port"`
	DataDir     string              `yaml:"dataDir"`
	LLM         llm.ModelConfig     `yaml:"llm"`
	Industries  []keywords.Industry `yaml:"industries"`
	Competitors map[string][]string `yaml:"competitors"`
	Technology  []string            `yaml:"technologyKeywords"`
	RateLimit   RateLimitConfig     `yaml:"rateLimit"`
}

// RateLimitConfig tunes the per-IP token bucket.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	BucketSize        float64 `yaml:"bucketSize"`
}

// Load reads YAML configuration (if present) and applies environment
// overrides.
func Load() Config {
	cfg := defaultConfig()

	if path := os.Getenv(configPathEnv); path != "" {
		if raw, err := os.ReadFile(path); err != nil {
			log.Printf("config: cannot read %s: %v (falling back to defaults)", path, err)
		} else {
			var fileCfg Config
			if err := yaml.Unmarshal(raw, &fileCfg); err != nil {
				log.Printf("config: cannot parse %s: %v (falling back to defaults)", path, err)
			} else {
				cfg = mergeConfig(cfg, fileCfg)
			}
		}
	}

	cfg.applyEnvOverrides()
	return cfg
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv(portEnv); v != "" {
		c.Port = v
	}
	if v := os.Getenv(dataDirEnv); v != "" {
		c.DataDir = v
	}
	if v := os.Getenv(llmAPIKeyEnv); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv(llmModelEnv); v != "" {
		c.LLM.Model = v
	}
}

func mergeConfig(base, override Config) Config {
	if override.Port != "" {
		base.Port = override.Port
	}
	if override.DataDir != "" {
		base.DataDir = override.DataDir
	}
	if override.LLM.Endpoint != "" {
		base.LLM.Endpoint = override.LLM.Endpoint
	}
	if override.LLM.Model != "" {
		base.LLM.Model = override.LLM.Model
	}
	if override.LLM.APIKey != "" {
		base.LLM.APIKey = override.LLM.APIKey
	}
	if override.LLM.SystemPrompt != "" {
		base.LLM.SystemPrompt = override.LLM.SystemPrompt
	}
	if len(override.Industries) > 0 {
		base.Industries = override.Industries
	}
	if len(override.Competitors) > 0 {
		base.Competitors = override.Competitors
	}
	if len(override.Technology) > 0 {
		base.Technology = override.Technology
	}
	if override.RateLimit.RequestsPerSecond > 0 {
		base.RateLimit.RequestsPerSecond = override.RateLimit.RequestsPerSecond
	}
	if override.RateLimit.BucketSize > 0 {
		base.RateLimit.BucketSize = override.RateLimit.BucketSize
	}
	return base
}

// defaultConfig seeds the ordered industry lists the scorer falls back to
// when no config file is present. Industry order is significant: category
// assignment is first-match-wins.
func defaultConfig() Config {
	return Config{
		Port:    "8082",
		DataDir: "data",
		LLM: llm.ModelConfig{
			Endpoint:     "https://api.openai.com/v1/chat/completions",
			Model:        "gpt-4o-mini",
			SystemPrompt: "You write marketing-site content drafts from briefs.",
		},
		Industries: []keywords.Industry{
			{
				Name: "Healthcare Technology",
				Keywords: []string{
					"healthcare software development",
					"medical practice management system",
					"patient portal development",
				},
			},
			{
				Name: "Financial Services",
				Keywords: []string{
					"fintech software development",
					"payment platform development",
					"banking api integration",
				},
			},
			{
				Name: "E-commerce",
				Keywords: []string{
					"ecommerce platform development",
					"custom shopping cart development",
					"marketplace software",
				},
			},
		},
		Competitors: map[string][]string{},
		Technology: []string{
			"custom software development",
			"full-stack development services",
			"cloud application development",
			"api development services",
		},
		RateLimit: RateLimitConfig{RequestsPerSecond: 2, BucketSize: 5},
	}
}
