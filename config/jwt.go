package config

type Jwt struct {
	Secret string `json:"secret" yaml:"secret"`
	// access token 有效期（秒）
	ExpiresIn int `json:"expires_in" yaml:"expires_in"`
}
