package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Storage.DatabasePath == "" {
		cfg.Storage.DatabasePath = "/usr/local/var/storesearch/data/shop.db"
	}
	if cfg.Search.MinQueryLength == 0 {
		cfg.Search.MinQueryLength = 3
	}
	if cfg.Search.ProductLimit == 0 {
		cfg.Search.ProductLimit = 5
	}
	if cfg.Search.CategoryLimit == 0 {
		cfg.Search.CategoryLimit = 3
	}
	if cfg.Search.ManufacturerLimit == 0 {
		cfg.Search.ManufacturerLimit = 3
	}
	if cfg.Search.FallbackLimit == 0 {
		cfg.Search.FallbackLimit = 5
	}
}
