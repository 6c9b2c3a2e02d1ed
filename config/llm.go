package config

// LLMConfig 生成模型配置，走 openai 兼容协议
type LLMConfig struct {
	ApiKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

func ProvideLLMConfig(cfg *Config) *LLMConfig {
	return cfg.LLM
}
