// internal/utils/logger/config.go
package logger

type Config struct {
	LogFile     string // empty disables the file sink
	MaxSize     int    // megabytes
	MaxAge      int    // days
	MaxBackups  int
	Compress    bool
	Development bool
}

// DefaultConfig returns the default logger configuration.
func DefaultConfig() *Config {
	return &Config{
		LogFile:     "abstract-mcp.log",
		MaxSize:     100,
		MaxAge:      7,
		MaxBackups:  3,
		Compress:    true,
		Development: false,
	}
}
