package config

import (
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// envConfig mirrors Config for envconfig. It is seeded from the current
// Config so variables that are not set leave values untouched.
type envConfig struct {
	Port            string        `envconfig:"PORT"`
	DatabaseDSN     string        `envconfig:"DATABASE_DSN"`
	SecretKey       string        `envconfig:"JWT_SECRET"`
	AccessTokenTTL  time.Duration `envconfig:"ACCESS_TOKEN_TTL"`
	BcryptCost      int           `envconfig:"BCRYPT_COST"`
	RequestTimeout  time.Duration `envconfig:"REQUEST_TIMEOUT"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT"`
	LogFormat       string        `envconfig:"LOG_FORMAT"`
	AllowedOrigins  []string      `envconfig:"ALLOWED_ORIGINS"`
}

func parseEnv(config *Config) error {
	e := envConfig{
		Port:            config.EndpointAddrHTTP,
		DatabaseDSN:     config.DatabaseDSN,
		SecretKey:       config.SecretKey,
		AccessTokenTTL:  config.AccessTokenValidityDuration,
		BcryptCost:      config.BcryptCost,
		RequestTimeout:  config.RequestTimeout,
		ShutdownTimeout: config.ShutdownTimeout,
		LogFormat:       config.LogFormat,
		AllowedOrigins:  config.AllowedOrigins,
	}
	if err := envconfig.Process("", &e); err != nil {
		return err
	}

	config.EndpointAddrHTTP = portToAddr(e.Port)
	config.DatabaseDSN = e.DatabaseDSN
	config.SecretKey = e.SecretKey
	config.AccessTokenValidityDuration = e.AccessTokenTTL
	config.BcryptCost = e.BcryptCost
	config.RequestTimeout = e.RequestTimeout
	config.ShutdownTimeout = e.ShutdownTimeout
	config.LogFormat = e.LogFormat
	config.AllowedOrigins = e.AllowedOrigins
	return nil
}

// portToAddr accepts a bare port ("3000") as well as a full listen address.
func portToAddr(port string) string {
	if port == "" || strings.Contains(port, ":") {
		return port
	}
	return ":" + port
}
