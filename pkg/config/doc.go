// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv and github.com/caarlos0/env/v11: an optional
// .env file is read once, then the environment is parsed into any struct
// annotated with env tags. Each configuration type is parsed once and cached
// for the lifetime of the process.
//
//	type StorageConfig struct {
//		Driver string `env:"STORAGE_DRIVER" envDefault:"local"`
//		Dir    string `env:"STORAGE_LOCAL_DIR" envDefault:"./uploads"`
//	}
//
//	var cfg StorageConfig
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Tests that change the environment call ResetCache between loads.
package config
