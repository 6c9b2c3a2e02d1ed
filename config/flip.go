package config

// FlipConfig Flip 支付配置
type FlipConfig struct {
	ApiURL          string `yaml:"api_url"`          // 如 https://bigflip.id/big_sandbox_api/v2
	SecretKey       string `yaml:"secret_key"`       // Basic Auth 用户名，密码为空
	ValidationToken string `yaml:"validation_token"` // 回调 token，精确匹配校验
}

func ProvideFlipConfig(cfg *Config) *FlipConfig {
	return cfg.Flip
}
