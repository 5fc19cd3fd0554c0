// Package config loads configuration from YAML files, .env files and
// environment variables.
//
// # Usage
//
//	var cfg AppConfig
//	err := config.LoadConfig("dataprovider", &cfg, config.WithConfigFile("config.yml"))
//
// Environment variables override keys already defined by the file or a
// default, using the APP_ prefix with underscore-separated paths
// (e.g. APP_LOGGING_LEVEL).
package config
