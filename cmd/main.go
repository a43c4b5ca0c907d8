package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
	"google.golang.org/grpc/reflection"

	grpchandler "github.com/dtroode/storefront-server/internal/api/grpc/handler"
	grpcrouter "github.com/dtroode/storefront-server/internal/api/grpc/router"
	grpcserver "github.com/dtroode/storefront-server/internal/api/grpc/server"
	httpcontext "github.com/dtroode/storefront-server/internal/api/http/context"
	httprouter "github.com/dtroode/storefront-server/internal/api/http/router"
	httpserver "github.com/dtroode/storefront-server/internal/api/http/server"
	"github.com/dtroode/storefront-server/internal/config"
	"github.com/dtroode/storefront-server/internal/hasher"
	"github.com/dtroode/storefront-server/internal/logger"
	"github.com/dtroode/storefront-server/internal/mailer"
	"github.com/dtroode/storefront-server/internal/model"
	"github.com/dtroode/storefront-server/internal/repository/postgres"
	"github.com/dtroode/storefront-server/internal/server"
	"github.com/dtroode/storefront-server/internal/service"
	storage "github.com/dtroode/storefront-server/internal/storage/minio"
	"github.com/dtroode/storefront-server/internal/token"
)

const (
	shutdownTimeout = 10 * time.Second
	healthInterval  = 10 * time.Second
)

var (
	buildVersion = "N/A" // set by ldflags
	buildDate    = "N/A" // set by ldflags
	buildCommit  = "N/A" // set by ldflags
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT, os.Interrupt)
	defer stop()

	cfg, err := config.NewConfig()
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}
	logger := logger.New(cfg.LogLevel).With("version", buildVersion)

	logAppVersion()

	db, err := postgres.NewConnection(ctx, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("failed to initialize database", "error", err)
	}
	defer db.Close()

	storageClient, err := storage.NewClient(ctx, cfg.Storage)
	if err != nil {
		logger.Fatal("failed to initialize storage client", "error", err)
	}

	bcrypt, err := hasher.NewBcrypt(cfg.Hash.Cost, cfg.Hash.Workers)
	if err != nil {
		logger.Fatal("failed to create password hasher", "error", err)
	}
	signer := token.NewJWT(cfg.JWT.Secret)

	userRepo := postgres.NewUserRepository(db)
	couponRepo := postgres.NewCouponRepository(db)
	productRepo := postgres.NewProductRepository(db)

	resetTokens := service.NewResetTokens(userRepo, cfg.Reset.Window, logger)
	credentials, err := service.NewCredentials(
		userRepo,
		bcrypt,
		signer,
		resetTokens,
		mailer.NewSMTP(cfg.SMTP, logger),
		service.CredentialSettings{
			SessionTTL:   cfg.JWT.TTL,
			ResetURLBase: cfg.Reset.URLBase,
		},
		logger,
	)
	if err != nil {
		logger.Fatal("failed to create credential service", "error", err)
	}
	coupons := service.NewCoupon(couponRepo, logger)
	products := service.NewProduct(productRepo, storageClient, logger)

	httpLogger := logger.With("transport", "http")
	grpcLogger := logger.With("transport", "grpc")

	handler := httprouter.New(credentials, coupons, products, signer, httpcontext.NewManager(), httprouter.Settings{
		AllowedOrigins: cfg.HTTP.AllowedOrigins,
		SecureCookie:   cfg.HTTP.SecureCookie,
		SessionTTL:     cfg.JWT.TTL,
	}, httpLogger).Register()

	healthServer := grpchandler.NewHealthServer()
	grpcSrv := grpcrouter.New(healthServer, grpcLogger).Register()
	reflection.Register(grpcSrv)

	servers := []model.Server{
		httpserver.NewHTTPServer(handler, fmt.Sprintf(":%s", cfg.HTTP.Port)),
		grpcserver.NewGRPCServer(grpcSrv, fmt.Sprintf(":%s", cfg.GRPC.Port)),
	}

	var sl model.SecurityLayer
	if cfg.GRPC.EnableHTTPS {
		sl = server.NewTLSListener(cfg.GRPC.CertFileName, cfg.GRPC.PrivateKeyFileName)
	} else {
		sl = server.NewPlainListener()
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		grpchandler.NewHealthMonitor(db, healthServer, healthInterval, grpcLogger).Run(gctx)
		return nil
	})

	for _, s := range servers {
		s := s
		g.Go(func() error {
			logger.Info("Starting server", "address", s.Address())
			if err := s.Start(sl); err != nil {
				return fmt.Errorf("server %s: %w", s.Address(), err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		var errs []error
		for _, s := range servers {
			if err := s.Stop(shutdownCtx); err != nil {
				errs = append(errs, fmt.Errorf("failed to stop server %s: %w", s.Address(), err))
			}
		}
		return errors.Join(errs...)
	})

	if err := g.Wait(); err != nil {
		logger.Error("server stopped with error", "error", err)
	}
	logger.Info("shutdown complete")
}

func logAppVersion() {
	tmpl := `
Build version: %s
Build date: %s
Build commit: %s
`

	fmt.Printf(tmpl, buildVersion, buildDate, buildCommit)
}
