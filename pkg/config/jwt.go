package config

// JwtConfig holds JWT verification configuration
type JwtConfig struct {
	JwtSecret string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
}
