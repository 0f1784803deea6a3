package config

import "os"

// Config is the injected runtime configuration: store endpoint and
// database, session cache address, session-token secret, and the base
// URL the persona card images are served from.
type Config struct {
	MongoURI      string
	MongoDatabase string
	RedisAddr     string
	HTTPPort      string
	SessionSecret string
	AssetBaseURL  string
}

// Load reads configuration from the environment with development
// defaults.
func Load() *Config {
	return &Config{
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDatabase: getEnv("MONGO_DB", "bimatch"),
		RedisAddr:     getEnv("REDIS_URI", "localhost:6379"),
		HTTPPort:      getEnv("PORT", "8080"),
		SessionSecret: getEnv("SESSION_SECRET", "change-me-in-production"),
		AssetBaseURL:  getEnv("ASSET_BASE_URL", "/"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
