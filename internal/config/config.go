// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// NativeToken describes the chain's gas token.
type NativeToken struct {
	Symbol   string `mapstructure:"symbol"`
	Name     string `mapstructure:"name"`
	Decimals uint8  `mapstructure:"decimals"`
}

// ChainConfig is the process-wide description of the single chain the server talks to.
type ChainConfig struct {
	RPCURL      string      `mapstructure:"rpc_url"`
	Name        string      `mapstructure:"name"`
	ChainID     int64       `mapstructure:"chain_id"`
	NativeToken NativeToken `mapstructure:"native_token"`
}

type Config struct {
	Chain           ChainConfig `mapstructure:"chain"`
	CallTimeout     int         `mapstructure:"call_timeout"`
	Retries         int         `mapstructure:"retries"`
	RetryMaxElapsed int         `mapstructure:"retry_max_elapsed"`
	TokenWorkers    int         `mapstructure:"token_workers"`
	DebugLogging    bool        `mapstructure:"debug_logging"`
	LogFile         string      `mapstructure:"log_file"`
	Transport       string      `mapstructure:"transport"`
	SSEAddr         string      `mapstructure:"sse_addr"`
	MetricsAddr     string      `mapstructure:"metrics_addr"`
}

const (
	DefaultRPCURL          = "https://api.mainnet.abs.xyz"
	DefaultChainName       = "Abstract Chain"
	DefaultChainID         = 2741
	DefaultNativeSymbol    = "ETH"
	DefaultNativeName      = "Ether"
	DefaultNativeDecimals  = 18
	DefaultCallTimeout     = 30000
	DefaultRetries         = 3
	DefaultRetryMaxElapsed = 10000
	DefaultTokenWorkers    = 8
	DefaultLogFile         = "abstract-mcp.log"
	DefaultTransport       = TransportStdio
	DefaultSSEAddr         = ":8080"

	TransportStdio = "stdio"
	TransportSSE   = "sse"

	envPrefix = "ABSTRACT_MCP"
)

func defaults() map[string]interface{} {
	return map[string]interface{}{
		"chain.rpc_url":               DefaultRPCURL,
		"chain.name":                  DefaultChainName,
		"chain.chain_id":              DefaultChainID,
		"chain.native_token.symbol":   DefaultNativeSymbol,
		"chain.native_token.name":     DefaultNativeName,
		"chain.native_token.decimals": DefaultNativeDecimals,
		"call_timeout":                DefaultCallTimeout,
		"retries":                     DefaultRetries,
		"retry_max_elapsed":           DefaultRetryMaxElapsed,
		"token_workers":               DefaultTokenWorkers,
		"debug_logging":               false,
		"log_file":                    DefaultLogFile,
		"transport":                   DefaultTransport,
		"sse_addr":                    DefaultSSEAddr,
		"metrics_addr":                "",
	}
}

// Default returns the built-in configuration for Abstract Chain mainnet.
func Default() *Config {
	cfg, err := LoadConfig("")
	if err != nil {
		panic(err)
	}
	return cfg
}

// LoadConfig reads configuration from path, if given, on top of the built-in defaults.
// Environment variables prefixed with ABSTRACT_MCP_ take precedence over both.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	for key, value := range defaults() {
		v.SetDefault(key, value)
	}
	loadEnvironmentVariables(v)

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func loadEnvironmentVariables(v *viper.Viper) {
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Validate re-checks a configuration after it has been changed in code (command-line overrides).
func (c *Config) Validate() error {
	return validateConfig(c)
}

func validateConfig(cfg *Config) error {
	if err := validateChain(&cfg.Chain); err != nil {
		return err
	}
	if err := validateNumericParams(cfg); err != nil {
		return err
	}
	switch cfg.Transport {
	case TransportStdio:
	case TransportSSE:
		if cfg.SSEAddr == "" {
			return errors.New("sse_addr is required for sse transport")
		}
	default:
		return errors.New("unsupported transport")
	}
	return nil
}

func validateChain(chain *ChainConfig) error {
	if chain.RPCURL == "" {
		return errors.New("chain.rpc_url is empty")
	}
	if err := validateURL(chain.RPCURL, "http", "ws"); err != nil {
		return errors.New("invalid RPC URL protocol")
	}
	if chain.Name == "" {
		return errors.New("missing chain name in configuration")
	}
	if chain.ChainID <= 0 {
		return errors.New("invalid chain_id")
	}
	if chain.NativeToken.Symbol == "" {
		return errors.New("missing native token symbol")
	}
	return nil
}

func validateNumericParams(cfg *Config) error {
	if cfg.CallTimeout < 0 {
		return errors.New("invalid call_timeout")
	}
	if cfg.Retries < 0 {
		return errors.New("invalid retries count")
	}
	if cfg.RetryMaxElapsed < 0 {
		return errors.New("invalid retry_max_elapsed")
	}
	if cfg.TokenWorkers < 1 {
		return errors.New("invalid token_workers count")
	}
	return nil
}

func validateURL(rawURL string, protocols ...string) error {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return errors.New("invalid URL format")
	}
	if parsed.Host == "" {
		return errors.New("invalid URL host")
	}
	for _, protocol := range protocols {
		if strings.HasPrefix(parsed.Scheme, protocol) {
			return nil
		}
	}
	return errors.New("invalid URL protocol")
}

// CallTimeoutDuration is the deadline applied to each fan-out wait. Zero disables it.
func (c *Config) CallTimeoutDuration() time.Duration {
	return time.Duration(c.CallTimeout) * time.Millisecond
}

func (c *Config) RetryMaxElapsedDuration() time.Duration {
	return time.Duration(c.RetryMaxElapsed) * time.Millisecond
}
