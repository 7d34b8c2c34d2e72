// Package config provides configuration management for the catalog service.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections owned by the packages they configure:
//   - Server: HTTP server settings (port, pagination policy)
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and bucket settings
//   - Log: Logging level and format
//   - Token: JWT secret, lifetime and issuer
//
// Defaults come from `default:` struct tags, resolved by reflection, so each
// partial config documents its own fallbacks.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
