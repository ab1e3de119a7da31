package config

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

type Config struct {
	Server   Server
	Database Database
	Auth     Auth
	Midtrans Midtrans
	LogLevel string
}

type Server struct {
	Port string
}

type Database struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

type Auth struct {
	JWTSecret string
	// LegacyNullRoleAdmin treats tokens without a role claim as admin.
	// Compatibility shim for tokens minted before roles existed; keep off.
	LegacyNullRoleAdmin bool
}

type Midtrans struct {
	ServerKey  string
	Production bool
}

func NewConfig() (*Config, error) {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	viper.AutomaticEnv()
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("DATABASE_SSLMODE", "disable")
	viper.SetDefault("LOG_LEVEL", "info")

	if err := viper.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg("Error reading config file")
	}

	var config Config

	config.Server.Port = viper.GetString("SERVER_PORT")
	config.Database.Host = viper.GetString("DATABASE_HOST")
	config.Database.Port = viper.GetString("DATABASE_PORT")
	config.Database.User = viper.GetString("DATABASE_USER")
	config.Database.Password = viper.GetString("DATABASE_PASSWORD")
	config.Database.Name = viper.GetString("DATABASE_NAME")
	config.Database.SSLMode = viper.GetString("DATABASE_SSLMODE")

	config.Auth.JWTSecret = viper.GetString("JWT_SECRET")
	config.Auth.LegacyNullRoleAdmin = viper.GetBool("AUTH_LEGACY_NULL_ROLE_ADMIN")

	config.Midtrans.ServerKey = viper.GetString("MIDTRANS_SERVER_KEY")
	config.Midtrans.Production = viper.GetBool("MIDTRANS_PRODUCTION")

	config.LogLevel = viper.GetString("LOG_LEVEL")

	log.Info().Str("port", config.Server.Port).Str("db_host", config.Database.Host).Msg("Config loaded")
	return &config, nil
}
