package config

import (
	"time"

	"github.com/spf13/viper"
)

// envBindings maps config keys onto the environment variables that override them.
var envBindings = map[string]string{
	"database.host":     "DATABASE_HOST",
	"database.port":     "DATABASE_PORT",
	"database.user":     "DATABASE_USER",
	"database.password": "DATABASE_PASSWORD",
	"database.name":     "DATABASE_NAME",
	"database.ssl_mode": "DATABASE_SSL_MODE",

	"redis.host":     "REDIS_HOST",
	"redis.port":     "REDIS_PORT",
	"redis.password": "REDIS_PASSWORD",
	"redis.db":       "REDIS_DB",

	"jwt.secret_key": "JWT_SECRET_KEY",

	"chain.rpc_url":       "BLOCKCHAIN_RPC_URL",
	"chain.token_address": "TOKEN_ADDRESS",
	"chain.timeout":       "CHAIN_TIMEOUT",

	"ledger.sweep_interval":  "LEDGER_SWEEP_INTERVAL",
	"ledger.sweep_batch":     "LEDGER_SWEEP_BATCH",
	"ledger.stats_cache_ttl": "LEDGER_STATS_CACHE_TTL",
	"ledger.chain_cache_ttl": "LEDGER_CHAIN_CACHE_TTL",

	"log.level":   "LOG_LEVEL",
	"log.format":  "LOG_FORMAT",
	"server.port": "PORT",
}

// Init points viper at an optional .env file and binds every known key to its variable.
// Environment variables win over the file. The returned error only concerns reading the file;
// bindings are in place either way.
func Init(file string) error {
	viper.SetConfigFile(file)
	viper.AutomaticEnv()

	for key, env := range envBindings {
		if err := viper.BindEnv(key, env); err != nil {
			return err
		}
	}
	return viper.ReadInConfig()
}

// LedgerConfig holds the knobs of the ledger core.
type LedgerConfig struct {
	ChainRPCURL   string
	TokenAddress  string
	ChainTimeout  time.Duration
	SweepInterval time.Duration
	SweepBatch    int
	StatsCacheTTL time.Duration
	ChainCacheTTL time.Duration
	JWTSecret     string
	LogLevel      string
	LogFormat     string
	ServerPort    string
}

func LoadLedgerConfig() *LedgerConfig {
	viper.SetDefault("chain.rpc_url", "http://localhost:8545")
	viper.SetDefault("chain.token_address", "")
	viper.SetDefault("chain.timeout", 10*time.Second)
	viper.SetDefault("ledger.sweep_interval", time.Minute)
	viper.SetDefault("ledger.sweep_batch", 100)
	viper.SetDefault("ledger.stats_cache_ttl", 5*time.Minute)
	viper.SetDefault("ledger.chain_cache_ttl", time.Hour)
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")
	viper.SetDefault("server.port", "8080")

	cfg := &LedgerConfig{
		ChainRPCURL:   viper.GetString("chain.rpc_url"),
		TokenAddress:  viper.GetString("chain.token_address"),
		ChainTimeout:  viper.GetDuration("chain.timeout"),
		SweepInterval: viper.GetDuration("ledger.sweep_interval"),
		SweepBatch:    viper.GetInt("ledger.sweep_batch"),
		StatsCacheTTL: viper.GetDuration("ledger.stats_cache_ttl"),
		ChainCacheTTL: viper.GetDuration("ledger.chain_cache_ttl"),
		JWTSecret:     viper.GetString("jwt.secret_key"),
		LogLevel:      viper.GetString("log.level"),
		LogFormat:     viper.GetString("log.format"),
		ServerPort:    viper.GetString("server.port"),
	}

	if cfg.ChainTimeout <= 0 {
		cfg.ChainTimeout = 10 * time.Second
	}
	if cfg.SweepBatch < 1 || cfg.SweepBatch > 1000 {
		cfg.SweepBatch = 100
	}
	return cfg
}
