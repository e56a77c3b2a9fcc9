package catalog

import "log/slog"

const defaultCatalogName = "default"

// Config configures a Store or Spatial catalog. Zero fields take defaults.
type Config struct {
	// Name labels the catalog's metrics and log lines.
	Name string
	// Capacity bounds the number of live handles. Defaults to DefaultCapacity.
	Capacity int
	// DefaultDepth is the z budget given to nodes added with Spatial.Add.
	// Zero sizes each band to fit its subtree.
	DefaultDepth int
	// Debug enables tree shape warnings and per-update timing logs.
	Debug bool
	// Logger receives warnings and debug output. Defaults to a stderr
	// logger at warn level.
	Logger Logger
}

// DefaultConfig returns the configuration used when none is supplied.
func DefaultConfig() Config {
	return Config{}.withDefaults()
}

func (c Config) withDefaults() Config {
	if c.Name == "" {
		c.Name = defaultCatalogName
	}
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	if c.DefaultDepth < 0 {
		c.DefaultDepth = 0
	}
	if c.Logger == nil {
		c.Logger = NewDefaultLogger(defaultLogLevel(c.Debug))
	}
	return c
}

func defaultLogLevel(debug bool) slog.Level {
	if debug {
		return slog.LevelDebug
	}
	return slog.LevelWarn
}
