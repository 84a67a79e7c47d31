package config

import (
	"github.com/spf13/viper"
)

// Config holds the runtime settings of the shop service.
type Config struct {
	AppPort        string
	DBDriver       string
	DatabaseDSN    string
	MediaRoot      string
	RabbitMQURL    string
	RabbitMQQueue  string
	MaxUploadBytes int
}

// Load reads the configuration from environment variables, falling back to defaults.
func Load() Config {
	v := viper.New()
	v.SetDefault("APP_PORT", ":8080")
	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("DATABASE_DSN", "shop.db")
	v.SetDefault("MEDIA_ROOT", "media")
	// Leave RABBITMQ_URL empty to run without catalog events.
	v.SetDefault("RABBITMQ_URL", "")
	v.SetDefault("RABBITMQ_QUEUE", "catalog_events")
	v.SetDefault("MAX_UPLOAD_BYTES", 10*1024*1024)
	v.AutomaticEnv()

	return Config{
		AppPort:        v.GetString("APP_PORT"),
		DBDriver:       v.GetString("DB_DRIVER"),
		DatabaseDSN:    v.GetString("DATABASE_DSN"),
		MediaRoot:      v.GetString("MEDIA_ROOT"),
		RabbitMQURL:    v.GetString("RABBITMQ_URL"),
		RabbitMQQueue:  v.GetString("RABBITMQ_QUEUE"),
		MaxUploadBytes: v.GetInt("MAX_UPLOAD_BYTES"),
	}
}
