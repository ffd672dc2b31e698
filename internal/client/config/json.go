package config

import (
	"encoding/json"
	"os"
	"time"

	"todokeeper/internal/flagx"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Timeouts are
// integer seconds so the file stays hand-editable.
type JsonConfig struct {
	ServerURL       string `json:"server_url"`
	DatabasePath    string `json:"database_path"`
	RequestTimeoutS *int   `json:"request_timeout_s"`
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

	if jc.ServerURL != "" {
		cfg.ServerURL = jc.ServerURL
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.RequestTimeoutS != nil {
		cfg.RequestTimeout = time.Duration(*jc.RequestTimeoutS) * time.Second
	}
}
