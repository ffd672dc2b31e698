// Package config loads runtime configuration for the todokeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the backend server
//	-f string   path of the local session database
//	-t int      request timeout in seconds (0 disables)
//
// # JSON schema
//
//	{
//	  "server_url": "http://localhost:8000",
//	  "database_path": "todokeeper.db",
//	  "request_timeout_s": 30
//	}
package config
