package config

type App struct {
	Env     string `json:"env" yaml:"env"`
	Debug   bool   `json:"debug" yaml:"debug"`
	SiteURL string `json:"site_url" yaml:"site_url"`
}
