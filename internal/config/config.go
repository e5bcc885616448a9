package config

import (
	"log"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application. It is built once at
// startup and passed into the components that need it; request handling
// never reads the environment directly.
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	CORS   CORSConfig   `mapstructure:"cors"`
	Upload UploadConfig `mapstructure:"upload"`
	S3     S3Config     `mapstructure:"s3"`
}

type ServerConfig struct {
	Port        string `mapstructure:"port"`
	Environment string `mapstructure:"environment"`
}

type CORSConfig struct {
	AllowedOrigin string `mapstructure:"allowed_origin"`
}

// UploadConfig controls the transport-level body ceiling and the local
// storage root used when S3 is not configured.
type UploadConfig struct {
	MaxFileMB int64  `mapstructure:"max_file_mb"`
	Dir       string `mapstructure:"dir"`
}

type S3Config struct {
	BucketName      string `mapstructure:"bucket_name"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	Endpoint        string `mapstructure:"endpoint"` // optional, for S3-compatible stores
}

// Enabled reports whether the object-storage backend should be used.
// All four credentials must be present together; anything less falls back
// to the local filesystem backend.
func (s S3Config) Enabled() bool {
	return s.BucketName != "" && s.Region != "" && s.AccessKeyID != "" && s.SecretAccessKey != ""
}

// MaxBodyBytes returns the request body ceiling in bytes.
func (u UploadConfig) MaxBodyBytes() int64 {
	return u.MaxFileMB * 1024 * 1024
}

// LoadConfig reads configuration from an optional .env file, an optional
// config.yaml in path, and environment variables. Environment variables win.
func LoadConfig(path string) (Config, error) {
	// Deployments commonly ship a .env next to the binary; absence is fine.
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, reading from environment")
	}

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetDefault("server.port", "10000")
	v.SetDefault("server.environment", "development")
	v.SetDefault("cors.allowed_origin", "*")
	v.SetDefault("upload.max_file_mb", 30)
	v.SetDefault("upload.dir", "/data/uploads")

	// The deployment environment uses flat variable names, so bind each
	// key explicitly instead of relying on a key replacer.
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.environment", "APP_ENV")
	_ = v.BindEnv("cors.allowed_origin", "ALLOWED_ORIGIN")
	_ = v.BindEnv("upload.max_file_mb", "MAX_FILE_MB")
	_ = v.BindEnv("upload.dir", "UPLOAD_DIR")
	_ = v.BindEnv("s3.bucket_name", "S3_BUCKET_NAME")
	_ = v.BindEnv("s3.region", "AWS_DEFAULT_REGION")
	_ = v.BindEnv("s3.access_key_id", "AWS_ACCESS_KEY_ID")
	_ = v.BindEnv("s3.secret_access_key", "AWS_SECRET_ACCESS_KEY")
	_ = v.BindEnv("s3.endpoint", "S3_ENDPOINT")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return Config{}, err
		}
		// Config file is optional; env vars and defaults are enough.
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
