package config

import (
	"encoding/json"
	"os"
	"time"

	"todokeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. The token
// lifetime is integer minutes so the file stays hand-editable.
type JsonConfig struct {
	EndpointAddr         string `json:"endpoint_addr"`
	DatabaseDSN          string `json:"database_dsn"`
	SecretKey            string `json:"secret_key"`
	TokenValidityMinutes *int   `json:"token_validity_minutes"`
	RedisAddr            string `json:"redis_addr"`
}

// parseJson overlays Config with values loaded from a JSON file selected via
// the -c or -config flags. Absent file means no overlay. Read or unmarshal
// errors panic; the entrypoint treats a broken config file as fatal.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.EndpointAddr != "" {
		cfg.EndpointAddr = jc.EndpointAddr
	}
	if jc.DatabaseDSN != "" {
		cfg.DatabaseDSN = jc.DatabaseDSN
	}
	if jc.SecretKey != "" {
		cfg.SecretKey = jc.SecretKey
	}
	if jc.TokenValidityMinutes != nil {
		cfg.TokenValidityDuration = time.Duration(*jc.TokenValidityMinutes) * time.Minute
	}
	if jc.RedisAddr != "" {
		cfg.RedisAddr = jc.RedisAddr
	}
}
