package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/gestimo/gestimo/internal/apiserver/database"
	"github.com/gestimo/gestimo/internal/apiserver/handler"
	"github.com/gestimo/gestimo/internal/apiserver/storage"
	"github.com/gestimo/gestimo/internal/auth/jwt"
	"github.com/gestimo/gestimo/internal/common/config"
	"github.com/gestimo/gestimo/pkg/logger"
	"github.com/gestimo/gestimo/pkg/version"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath string

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of apiserver",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("apiserver version %s\n", version.Get())
		},
	}

	rootCmd = &cobra.Command{
		Use:   "apiserver",
		Short: "Property management API server",
		Long:  `API server for properties, units, tenants, leases, payments and reporting`,
		Run: func(cmd *cobra.Command, args []string) {
			run()
		},
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "conf", "c", "configs/apiserver.yaml", "path to configuration file, like /etc/gestimo/apiserver.yaml")
	rootCmd.AddCommand(versionCmd)
}

func run() {
	cfg, cfgPath, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration from %s: %v", cfgPath, err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logger)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() {
		_ = zapLogger.Sync()
	}()

	zapLogger.Info("Starting apiserver",
		zap.String("version", version.Get()),
		zap.String("config", cfgPath))

	db, err := database.NewDatabase(&cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.InitSuperAdmin(ctx, db, &cfg.SuperAdmin); err != nil {
		zapLogger.Fatal("Failed to seed administrator account", zap.Error(err))
	}
	if err := database.InitDefaultPaymentModes(ctx, db); err != nil {
		zapLogger.Fatal("Failed to seed payment modes", zap.Error(err))
	}

	store, err := storage.NewDiskStore(&cfg.Storage)
	if err != nil {
		zapLogger.Fatal("Failed to initialize document storage", zap.Error(err))
	}

	jwtService, err := jwt.NewService(jwt.Config{
		SecretKey: cfg.JWT.SecretKey,
		Duration:  cfg.JWT.Duration,
	})
	if err != nil {
		zapLogger.Fatal("Failed to initialize JWT service", zap.Error(err))
	}

	h := handler.NewHandler(db, jwtService, store, cfg, zapLogger)
	router := NewRouter(cfg, h, jwtService)

	port := cfg.Server.Port
	if port == 0 {
		port = 5235
	}
	zapLogger.Info("Server starting", zap.Int("port", port))
	if err := router.Run(fmt.Sprintf(":%d", port)); err != nil {
		zapLogger.Fatal("Server exited", zap.Error(err))
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
