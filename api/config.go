package api

import "errors"

// DefaultMaxBodyBytes caps request bodies when Config.MaxBodyBytes is zero.
const DefaultMaxBodyBytes = 1_048_576

type CORSConfig struct {
	TrustedOrigins []string `yaml:"trusted_origins"`
}

type Config struct {
	Addr         string     `yaml:"addr"`
	CertFile     string     `yaml:"cert_file"`
	KeyFile      string     `yaml:"key_file"`
	MaxBodyBytes int64      `yaml:"max_body_bytes"`
	CORS         CORSConfig `yaml:"cors"`
}

func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("api server address is required")
	}

	if c.MaxBodyBytes < 0 {
		return errors.New("api max body bytes cannot be negative")
	}

	if (c.CertFile == "") != (c.KeyFile == "") {
		return errors.New("api cert file and key file must be set together")
	}

	return nil
}
