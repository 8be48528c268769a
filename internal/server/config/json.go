package config

import (
	"encoding/json"
	"os"

	"github.com/papper-tech/auth-service/internal/flagx"
	"github.com/papper-tech/auth-service/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON
// unmarshalling. It uses timex.Duration for the token lifetime fields, which
// allows parsing both string values such as "15m" and integer nanoseconds.
//
// This struct is an intermediate DTO used only for reading JSON
// configuration files. After unmarshalling, its fields are copied into the
// runtime Config struct which uses time.Duration.
type JsonConfig struct {
	EndpointAddr    string         `json:"endpoint_addr"`
	DatabaseDSN     string         `json:"database_dsn"`
	DBMaxOpenConns  int            `json:"db_max_open_conns"`
	DBMaxIdleConns  int            `json:"db_max_idle_conns"`
	PrivateKeyPath  string         `json:"private_key_path"`
	PublicKeyPath   string         `json:"public_key_path"`
	Algorithm       string         `json:"algorithm"`
	AccessTokenTTL  timex.Duration `json:"access_token_ttl"`
	RefreshTokenTTL timex.Duration `json:"refresh_token_ttl"`
	CookieDomain    string         `json:"cookie_domain"`
	MailgunBaseURL  string         `json:"mailgun_base_url"`
	MailgunAPIKey   string         `json:"mailgun_api_key"`
	MailFrom        string         `json:"mail_from"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; if neither is set, no JSON file is loaded. Read or unmarshal
// failures panic, since the process cannot start on a broken config.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	config.EndpointAddr = c.EndpointAddr
	config.DatabaseDSN = c.DatabaseDSN
	config.DBMaxOpenConns = c.DBMaxOpenConns
	config.DBMaxIdleConns = c.DBMaxIdleConns
	config.PrivateKeyPath = c.PrivateKeyPath
	config.PublicKeyPath = c.PublicKeyPath
	config.Algorithm = c.Algorithm
	config.AccessTokenTTL = c.AccessTokenTTL.Duration
	config.RefreshTokenTTL = c.RefreshTokenTTL.Duration
	config.CookieDomain = c.CookieDomain
	config.MailgunBaseURL = c.MailgunBaseURL
	config.MailgunAPIKey = c.MailgunAPIKey
	config.MailFrom = c.MailFrom
}
