// Package config loads runtime configuration for the notes client.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables, optionally seeded from a dotenv file given
//     with -env (see parseEnv). Real environment variables win over the file.
//  3. Optional JSON file (see parseJson) selected via -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-b string   backend kind: "rest" (hosted) or "direct" (self-hosted)
//	-u string   hosted backend base URL
//	-k string   hosted backend anon key
//	-d string   PostgreSQL DSN (direct)
//	-s string   JWT signing secret (direct)
//	-t int      session lifetime in minutes (direct)
//	-p string   local session database file ("" keeps the session in memory)
//	-l string   log level
//
// # JSON schema
//
// Durations accept strings like "30s" or integer nanoseconds:
//
//	{
//	  "backend": "rest",
//	  "backend_url": "https://xyz.example.co",
//	  "anon_key": "...",
//	  "http_timeout": "30s"
//	}
package config
