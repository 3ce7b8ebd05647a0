// Package config loads server configuration from an optional YAML file
// plus environment variable overrides.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type DatabaseConfig struct {
	Path string `mapstructure:"path"`
}

type LogConfig struct {
	File string `mapstructure:"file"`
}

type S3Config struct {
	Bucket          string `mapstructure:"bucket"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"accessKeyID"`
	SecretAccessKey string `mapstructure:"secretAccessKey"`
	CDNDomain       string `mapstructure:"cdnDomain"`
}

type StorageConfig struct {
	// Backend selects the blob storage implementation: "mock" or "s3".
	Backend string   `mapstructure:"backend"`
	BaseURL string   `mapstructure:"baseURL"`
	S3      S3Config `mapstructure:"s3"`
}

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

// Load reads config.yaml from the given path (if present) and overlays
// environment variables.
func Load(path string) (Config, error) {
	var config Config

	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("server.addr", ":8080")
	viper.SetDefault("database.path", "fleetassist.sqlite3")
	viper.SetDefault("storage.backend", "mock")
	viper.SetDefault("storage.baseURL", "https://storage.fleetassist.example")

	viper.AutomaticEnv()
	viper.BindEnv("server.addr", "SERVER_ADDR")
	viper.BindEnv("database.path", "DATABASE_PATH")
	viper.BindEnv("log.file", "LOG_FILE")
	viper.BindEnv("storage.backend", "STORAGE_BACKEND")
	viper.BindEnv("storage.baseURL", "STORAGE_BASE_URL")
	viper.BindEnv("storage.s3.bucket", "S3_BUCKET")
	viper.BindEnv("storage.s3.region", "S3_REGION")
	viper.BindEnv("storage.s3.accessKeyID", "S3_ACCESS_KEY_ID")
	viper.BindEnv("storage.s3.secretAccessKey", "S3_SECRET_ACCESS_KEY")
	viper.BindEnv("storage.s3.cdnDomain", "S3_CDN_DOMAIN")

	// A missing config file is fine; env vars and defaults still apply.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return config, fmt.Errorf("reading config file: %w", err)
		}
	}

	if err := viper.Unmarshal(&config); err != nil {
		return config, fmt.Errorf("unmarshaling config: %w", err)
	}

	return config, nil
}
