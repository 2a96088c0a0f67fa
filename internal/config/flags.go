package config

// Overrides holds values given on the command line. Zero values leave the
// loaded configuration untouched.
type Overrides struct {
	Level              string
	ScaleFactor        float64
	Format             string
	IncludeDescendants bool
}

// apply applies CLI overrides to the config.
func (o Overrides) apply(cfg *Config) {
	if o.Level != "" {
		cfg.Logging.Level = o.Level
	}
	if o.ScaleFactor != 0 {
		cfg.Export.ScaleFactor = o.ScaleFactor
	}
	if o.Format != "" {
		cfg.Export.Format = o.Format
	}
	if o.IncludeDescendants {
		cfg.Export.IncludeDescendants = true
	}
}
