package config

import (
	"os"
	"time"
)

const (
	defaultAgentBaseURL = "http://localhost:8000"
	dockerAgentBaseURL  = "http://fastapi:8000"

	// DefaultAgentEndpoint is the streaming endpoint used by the debug
	// passthrough. The overview and analysis turns have fixed paths of
	// their own.
	DefaultAgentEndpoint = "/agent/invoke"
)

// Config holds everything resolved from the environment at startup.
type Config struct {
	Port          string
	AgentBaseURL  string
	AgentEndpoint string
	AgentTimeout  time.Duration
	Passcode      string
	SessionSecret string
	SessionFile   string
	BillsDir      string
	DebugAPIKey   string
	Development   bool
}

// Load reads the environment once. Values have local-development defaults;
// DOCKER=true switches the agent base URL to the compose-internal host.
func Load() *Config {
	cfg := &Config{
		Port:          getenv("PORT", "8080"),
		AgentBaseURL:  getenv("AGENT_BASE_URL", defaultAgentBaseURL),
		AgentEndpoint: getenv("AGENT_ENDPOINT", DefaultAgentEndpoint),
		AgentTimeout:  getDuration("AGENT_TIMEOUT", 120*time.Second),
		Passcode:      getenv("APP_PASSCODE", "demo"),
		SessionSecret: getenv("SESSION_SECRET", "local-dev-secret"),
		SessionFile:   getenv("SESSION_FILE", ".session.json"),
		BillsDir:      getenv("BILLS_DIR", "assets/docs/_89_1_house_senate_bills"),
		DebugAPIKey:   os.Getenv("DEBUG_API_KEY"),
		Development:   os.Getenv("APP_ENV") != "production",
	}

	if os.Getenv("DOCKER") == "true" && os.Getenv("AGENT_BASE_URL") == "" {
		cfg.AgentBaseURL = dockerAgentBaseURL
	}

	return cfg
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
