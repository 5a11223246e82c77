package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"

	"github.com/tendant/simple-invite/pkg/account"
	"github.com/tendant/simple-invite/pkg/auth"
	"github.com/tendant/simple-invite/pkg/config"
	"github.com/tendant/simple-invite/pkg/identity"
	"github.com/tendant/simple-invite/pkg/invite"
	inviteapi "github.com/tendant/simple-invite/pkg/invite/api"
	"github.com/tendant/simple-invite/pkg/notification"
	"github.com/tendant/simple-invite/pkg/role"
	"github.com/tendant/simple-invite/pkg/settings"
	settingsapi "github.com/tendant/simple-invite/pkg/settings/api"
	"github.com/tendant/simple-invite/pkg/tos"
)

type Config struct {
	DbConfig     config.DatabaseConfig
	EmailConfig  config.EmailConfig
	JwtConfig    config.JwtConfig
	InviteConfig config.InviteConfig
	AppConfig    app.AppConfig
}

func main() {

	// Create a logger with source enabled
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		AddSource: true, // Enables line number & file path
	}))

	// Set the logger as the default
	slog.SetDefault(logger)

	// Load .env file if it exists (before reading environment variables)
	loadEnvFile()

	cfg := Config{}
	cleanenv.ReadEnv(&cfg)

	if err := cfg.InviteConfig.Validate(); err != nil {
		slog.Error("Invalid invite configuration", "error", err)
		os.Exit(-1)
	}

	server := app.DefaultApp()
	app.RoutesHealthz(server.R)

	var pool *pgxpool.Pool
	if cfg.InviteConfig.PersistenceType == "postgres" {
		var err error
		pool, err = dbutils.NewDbPool(context.Background(), cfg.DbConfig.ToDbConfig())
		if err != nil {
			slog.Error("Failed creating dbpool", "db", cfg.DbConfig.Database, "host", cfg.DbConfig.Host, "port", cfg.DbConfig.Port, "user", cfg.DbConfig.User)
			os.Exit(-1)
		}
	}

	settingsRepo, err := settings.NewSettingsRepository(cfg.InviteConfig.PersistenceType, settings.RepositoryConfig{
		Pool:    pool,
		DataDir: cfg.InviteConfig.DataDir,
	})
	if err != nil {
		slog.Error("Failed creating settings repository", "err", err)
		os.Exit(-1)
	}
	accountRepo, err := account.NewAccountRepository(cfg.InviteConfig.PersistenceType, account.RepositoryConfig{
		Pool:    pool,
		DataDir: cfg.InviteConfig.DataDir,
	})
	if err != nil {
		slog.Error("Failed creating account repository", "err", err)
		os.Exit(-1)
	}

	seedRoles, err := config.ParseSeedRoles(cfg.InviteConfig.SeedRoles)
	if err != nil {
		slog.Error("Invalid seed roles", "err", err)
		os.Exit(-1)
	}
	roleSeeds := make([]role.Role, 0, len(seedRoles))
	for _, seed := range seedRoles {
		roleSeeds = append(roleSeeds, role.Role{ID: seed.ID, Label: seed.Label})
	}
	roleRepo, err := role.NewRoleRepository(cfg.InviteConfig.PersistenceType, role.RepositoryConfig{
		Pool:      pool,
		DataDir:   cfg.InviteConfig.DataDir,
		SeedRoles: roleSeeds,
	})
	if err != nil {
		slog.Error("Failed creating role repository", "err", err)
		os.Exit(-1)
	}

	// Initialize NotificationManager and register email notifier
	notificationManager, err := notification.NewNotificationManagerWithOptions(
		notification.WithSMTP(cfg.EmailConfig.ToSMTPConfig()),
		notification.WithDefaultTemplates(),
	)
	if err != nil {
		slog.Error("Failed initialize notification manager", "err", err)
		os.Exit(-1)
	}

	settingsService := settings.NewSettingsService(settingsRepo)
	catalogService := role.NewCatalogService(roleRepo, settingsService)
	provisioner := account.NewProvisionerService(accountRepo)

	inviteService := invite.NewInviteService(
		invite.WithMapper(identity.NewMapper(cfg.InviteConfig.EmailDomain)),
		invite.WithSettingsService(settingsService),
		invite.WithRoleRepository(roleRepo),
		invite.WithProvisioner(provisioner),
		invite.WithNotificationManager(notificationManager),
		invite.WithAdminEmail(cfg.InviteConfig.AdminEmail),
		invite.WithMailConfirmation(cfg.InviteConfig.MailConfirmation),
	)

	tosService := tos.NewTosService(accountRepo, tos.SchemaCapabilities{
		AcceptanceField: cfg.InviteConfig.TosAcceptanceField,
		TimestampField:  cfg.InviteConfig.TosTimestampField,
	})

	inviteHandle := inviteapi.NewHandle(inviteService, catalogService)
	settingsHandle := settingsapi.NewHandle(settingsService, catalogService)
	tosHandle := tos.NewHandle(tosService)

	jwtService := auth.NewJwtService(cfg.JwtConfig.JwtSecret)

	server.R.Route("/api", func(r chi.Router) {
		r.Use(auth.Verifier(jwtService))
		inviteHandle.RegisterRoutes(r)
		settingsHandle.RegisterRoutes(r)
		tosHandle.RegisterRoutes(r)
	})

	server.Run()
}

// loadEnvFile loads environment variables from .env file if it exists
// Only sets variables that are not already set in the environment
func loadEnvFile() {
	// Get the directory where the executable is located
	execPath, err := os.Executable()
	if err != nil {
		slog.Error("Failed to get executable path", "error", err)
		return
	}

	execDir := filepath.Dir(execPath)
	envFile := filepath.Join(execDir, ".env")

	// Also check current working directory
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		cwd, err := os.Getwd()
		if err != nil {
			slog.Error("Failed to get current working directory", "error", err)
			return
		}
		envFile = filepath.Join(cwd, ".env")
	}

	// Check if .env file exists
	if _, err := os.Stat(envFile); os.IsNotExist(err) {
		slog.Info("No .env file found", "path", envFile)
		return
	}

	slog.Info("Loading configuration from .env file", "path", envFile)

	// Load .env file using godotenv
	err = godotenv.Load(envFile)
	if err != nil {
		slog.Error("Failed to load .env file", "error", err, "path", envFile)
		return
	}

	slog.Info("Configuration loaded from .env file successfully")
}
