// Command portal runs the TelconGH admin portal: an HTTP surface over
// the TelconGH reseller API that normalizes the upstream's inconsistent
// response shapes into a single envelope.
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"

	"github.com/TelconGH/admin_portal/internal/app/metrics"
	authsvc "github.com/TelconGH/admin_portal/internal/app/services/auth"
	businesssvc "github.com/TelconGH/admin_portal/internal/app/services/business"
	customersvc "github.com/TelconGH/admin_portal/internal/app/services/customer"
	networksvc "github.com/TelconGH/admin_portal/internal/app/services/network"
	rbacsvc "github.com/TelconGH/admin_portal/internal/app/services/rbac"
	stocksvc "github.com/TelconGH/admin_portal/internal/app/services/stock"
	transactionsvc "github.com/TelconGH/admin_portal/internal/app/services/transaction"
	"github.com/TelconGH/admin_portal/internal/config"
	"github.com/TelconGH/admin_portal/internal/session"
	"github.com/TelconGH/admin_portal/internal/upstream"
	"github.com/TelconGH/admin_portal/pkg/logger"
)

type server struct {
	cfg      *config.Config
	log      *logger.Logger
	sessions session.Store

	auth        *authsvc.Service
	business    *businesssvc.Service
	network     *networksvc.Service
	stock       *stocksvc.Service
	transaction *transactionsvc.Service
	rbac        *rbacsvc.Service
	customer    *customersvc.Service
}

func main() {
	cfg, err := config.LoadOrDefault()
	if err != nil {
		logger.NewDefault("portal").WithError(err).Error("failed to load configuration")
		os.Exit(1)
	}

	log := logger.New(logger.LoggingConfig{
		Level:   cfg.Logging.Level,
		Format:  cfg.Logging.Format,
		Output:  cfg.Logging.Output,
		Service: "portal",
	})

	client, err := upstream.New(upstream.Config{
		BaseURL: cfg.Upstream.BaseURL,
		APIKey:  cfg.Upstream.APIKey,
		Timeout: cfg.Upstream.Timeout,
	})
	if err != nil {
		log.WithError(err).Error("failed to construct upstream client")
		os.Exit(1)
	}

	sessions := newSessionStore(cfg, log)

	srv := &server{
		cfg:         cfg,
		log:         log,
		sessions:    sessions,
		auth:        authsvc.NewService(client, log),
		business:    businesssvc.NewService(client, log),
		network:     networksvc.NewService(client, log),
		stock:       stocksvc.NewService(client, log),
		transaction: transactionsvc.NewService(client, log),
		rbac:        rbacsvc.NewService(client, log),
		customer:    customersvc.NewService(client, log),
	}

	engine := srv.router()

	httpSrv := &http.Server{
		Addr:         cfg.Server.ListenAddr,
		Handler:      metrics.InstrumentHandler(engine),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("addr", cfg.Server.ListenAddr).Info("portal listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("http server failed")
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	log.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("shutdown did not complete cleanly")
	}
}

// newSessionStore connects to Redis, falling back to an in-memory store
// when Redis is unreachable. Sessions then survive only as long as the
// process, which is acceptable for single-instance deployments.
func newSessionStore(cfg *config.Config, log *logger.Logger) session.Store {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	store, err := session.NewRedisStore(ctx, rdb, cfg.Session.TTL)
	if err != nil {
		log.WithError(err).WithField("addr", cfg.Redis.Addr).
			Warn("redis unavailable, using in-memory session store")
		return session.NewMemoryStore(cfg.Session.TTL)
	}
	log.WithField("addr", cfg.Redis.Addr).Info("connected to redis session store")
	return store
}

func (s *server) router() *gin.Engine {
	if s.cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(requestIDMiddleware())
	engine.Use(rateLimitMiddleware(s.cfg.Server.RateLimitRPS, s.cfg.Server.RateLimitBurst))

	engine.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	engine.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := engine.Group("/api")
	api.Use(s.sessionMiddleware())

	api.POST("/login", s.handleLogin)
	api.POST("/register", s.handleRegister)
	api.POST("/register-business-owner", s.handleRegisterOwner)
	api.POST("/logout", s.handleLogout)

	authed := api.Group("")
	authed.Use(s.requireAuth())

	authed.POST("/refresh", s.handleRefresh)
	authed.GET("/me", s.handleMe)

	authed.GET("/businesses", s.handleListBusinesses)
	authed.POST("/businesses/switch", s.handleSwitchBusiness)
	authed.GET("/businesses/:id/users", s.handleBusinessUsers)

	authed.GET("/networks", s.handleListNetworks)
	authed.GET("/networks/services/active", s.handleActiveServices)
	authed.GET("/networks/pricing/:id", s.handleGetPricing)
	authed.POST("/networks/pricing", s.handleSavePricing)

	authed.GET("/stock/batches", s.handleStockBatches)
	authed.POST("/stock/batches", s.handleCreateBatch)
	authed.POST("/stock/items", s.handleCreateItems)
	authed.POST("/stock/verify", s.handleVerifySerial)

	authed.GET("/transactions", s.handleListTransactions)
	authed.GET("/transactions/:id", s.handleGetTransaction)
	authed.POST("/transactions", s.handleRecordTransaction)
	authed.POST("/payments/:id/approve", s.handleApprovePayment)
	authed.POST("/payments/:id/reject", s.handleRejectPayment)

	authed.GET("/roles", s.handleListRoles)
	authed.GET("/roles/:id", s.handleGetRole)
	authed.POST("/roles", s.handleCreateRole)
	authed.PUT("/roles/:id", s.handleUpdateRole)
	authed.DELETE("/roles/:id", s.handleDeleteRole)
	authed.POST("/roles/assign", s.handleAssignRole)
	authed.POST("/roles/remove", s.handleRemoveRole)

	authed.GET("/permissions", s.handleListPermissions)
	authed.POST("/permissions", s.handleCreatePermission)
	authed.PUT("/permissions/:id", s.handleUpdatePermission)
	authed.DELETE("/permissions/:id", s.handleDeletePermission)
	authed.POST("/permissions/assign", s.handleAssignPermission)
	authed.POST("/permissions/remove", s.handleRemovePermission)

	authed.POST("/customer-details", s.handleSubmitCustomerDetails)
	authed.GET("/customer-details/download/:format", s.handleDownloadCustomerDetails)

	return engine
}
