package config

// AnalyzeConfig configures the streaming analysis provider.
type AnalyzeConfig struct {
	Provider    string // "openai" or "sse"
	APIKey      string
	BaseURL     string
	Model       string
	Temperature float64
}

func loadAnalyzeConfig() AnalyzeConfig {
	return AnalyzeConfig{
		Provider:    getEnv("ANALYZE_PROVIDER", "openai"),
		APIKey:      getEnv("ANALYZE_API_KEY", getEnv("OPENAI_API_KEY", "")),
		BaseURL:     getEnv("ANALYZE_BASE_URL", "https://api.openai.com/v1"),
		Model:       getEnv("ANALYZE_MODEL", "gpt-4o"),
		Temperature: getEnvFloat("ANALYZE_TEMPERATURE", 0),
	}
}
