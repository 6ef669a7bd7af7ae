// Package config loads configuration for toolkit binaries.
//
// It uses Viper to read a YAML file and godotenv to read a .env file, then
// overlays environment variables. Files are searched in the standard
// locations (./cmd/<service>/config.yml, ./config/config.yml, ./config.yml
// and the matching .env files) unless explicit paths are given.
//
// # Usage
//
//	var cfg MyConfig
//	err := config.LoadConfig("splice", &cfg, config.WithEnvPrefix("SPLICE"))
//
// With a prefix, SPLICE_LOGGING_LEVEL=debug overrides logging.level.
package config
