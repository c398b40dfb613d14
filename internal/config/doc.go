// Package config handles application configuration loading and validation.
//
// Values are layered: built-in defaults, then an optional YAML file, then
// JELLYFAV_* environment variables (a .env file is loaded into the
// environment first). The result is validated before the app starts so a
// misconfiguration fails fast.
package config
