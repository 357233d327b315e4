package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Convert.MaxUploadMB == 0 {
		cfg.Convert.MaxUploadMB = 50
	}
	if cfg.UI.Title == "" {
		cfg.UI.Title = "Office to Text Converter"
	}
	// ScratchDir stays empty by default; the converter falls back to the OS
	// temp directory.
}

// Default returns a config with all defaults applied.
func Default() *Config {
	cfg := &Config{}
	ApplyDefaults(cfg)
	return cfg
}
