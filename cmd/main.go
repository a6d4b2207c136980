package main

import (
	"context"
	"net/http"
	"time"

	orderapp "github.com/cocomo/secondhand-market/application/order"
	productapp "github.com/cocomo/secondhand-market/application/product"
	userapp "github.com/cocomo/secondhand-market/application/user"
	"github.com/cocomo/secondhand-market/cmd/config"
	redisclient "github.com/cocomo/secondhand-market/cmd/redis"
	_ "github.com/cocomo/secondhand-market/docs"
	orderRepo "github.com/cocomo/secondhand-market/repository/order"
	productRepo "github.com/cocomo/secondhand-market/repository/product"
	redisRepo "github.com/cocomo/secondhand-market/repository/redis"
	txRepo "github.com/cocomo/secondhand-market/repository/tx"
	userRepo "github.com/cocomo/secondhand-market/repository/user"
	"github.com/cocomo/secondhand-market/thirdparty/mailer"
	"github.com/cocomo/secondhand-market/thirdparty/rabbitmq"
	"github.com/cocomo/secondhand-market/transport"
	"github.com/cocomo/secondhand-market/utils/clock"
	"github.com/cocomo/secondhand-market/utils/logger"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

// @title SECONDHAND MARKET API
// @version 1.0
// @description Secondhand transaction broker API Documentation
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration from environment variables
	cfg := config.Load()

	// Initialize global logger
	if err := logger.Init(cfg.Environment); err != nil {
		// fallback to standard log if zap init fails
		panic(err)
	}
	defer logger.Close()

	logger.Info("Starting server", zap.String("env", cfg.Environment))

	// Connect to database
	db, err := sqlx.Connect("mysql", cfg.GetDSN())
	if err != nil {
		logger.Fatal("err connect db", zap.Error(err))
	}

	// Initialize Redis client
	if err := redisclient.New(cfg); err != nil {
		logger.Fatal("err connect redis", zap.Error(err))
	}
	defer func() {
		_ = redisclient.Close()
	}()

	// Set database connection pool settings
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.Database.ConnMaxLifetime)

	// Initialize notification pipeline
	publisher, err := rabbitmq.NewPublisher(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password)
	if err != nil {
		logger.Fatal("err connect rabbitmq publisher", zap.Error(err))
	}
	defer publisher.Close()

	mail := mailer.New(cfg.Mail.SMTPHost, cfg.Mail.SMTPPort, cfg.Mail.Username, cfg.Mail.Password, cfg.Mail.From)
	consumer, err := rabbitmq.NewConsumer(cfg.RabbitMQ.Host, cfg.RabbitMQ.Port, cfg.RabbitMQ.User, cfg.RabbitMQ.Password, mail)
	if err != nil {
		logger.Fatal("err connect rabbitmq consumer", zap.Error(err))
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx); err != nil {
		logger.Fatal("err start notification consumer", zap.Error(err))
	}

	// Initialize repositories
	TxRepo := txRepo.NewTxRepository(db)
	UserRepo := userRepo.NewUserRepository(db)
	ProductRepo := productRepo.NewProductRepository(db)
	OrderRepo := orderRepo.NewOrderRepository(db)
	RedisRepo := redisRepo.NewRepository()

	// Initialize application layers
	UserApp := userapp.NewUserApp(cfg, UserRepo, RedisRepo)
	ProductApp := productapp.NewProductApp(ProductRepo)
	OrderApp := orderapp.NewOrderApp(cfg, TxRepo, OrderRepo, ProductRepo, UserRepo, publisher, clock.System{})

	// Periodic deadline sweep
	go func() {
		ticker := time.NewTicker(cfg.Order.SweepInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := OrderApp.ProcessDeadlines(ctx); err != nil {
					logger.Error("deadline sweep failed", zap.Error(err))
				}
			}
		}
	}()

	httpTransport := transport.NewTransport(UserApp, ProductApp, OrderApp, cfg.Internal.APIKey)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      httpTransport,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	logger.Info("HTTP server running", zap.String("port", cfg.Server.Port))
	err = server.ListenAndServe()
	if err != nil {
		logger.Fatal("failed server", zap.Error(err))
	}
}
