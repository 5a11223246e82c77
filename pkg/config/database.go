package config

import (
	dbutils "github.com/tendant/db-utils/db"
)

// DatabaseConfig holds PostgreSQL database configuration
type DatabaseConfig struct {
	Host     string `env:"INVITE_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"INVITE_PG_PORT" env-default:"5432"`
	Database string `env:"INVITE_PG_DATABASE" env-default:"invite_db"`
	User     string `env:"INVITE_PG_USER" env-default:"invite"`
	Password string `env:"INVITE_PG_PASSWORD" env-default:"pwd"`
}

// ToDbConfig converts the config to a db-utils DbConfig
func (d DatabaseConfig) ToDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}
