package app

import (
	"context"
	"fmt"
	"net"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/tripstack/travel-service/pkg/kafka"
	"github.com/tripstack/travel-service/pkg/logger"
	"github.com/tripstack/travel-service/pkg/postgres"
	"github.com/tripstack/travel-service/reservation/config"
	"github.com/tripstack/travel-service/reservation/internal/blacklist"
	"github.com/tripstack/travel-service/reservation/internal/counter"
	"github.com/tripstack/travel-service/reservation/internal/currency"
	"github.com/tripstack/travel-service/reservation/internal/events"
	"github.com/tripstack/travel-service/reservation/internal/handler"
	"github.com/tripstack/travel-service/reservation/internal/notify"
	"github.com/tripstack/travel-service/reservation/internal/repository"
	"github.com/tripstack/travel-service/reservation/internal/server"
	"github.com/tripstack/travel-service/reservation/internal/service"
	"github.com/tripstack/travel-service/reservation/migrations"
)

func Run(cfg *config.Config) error {
	log := logger.NewLogger(cfg.Log, "reservation")

	db, err := postgres.NewPostgresDB(context.Background(), &cfg.Database, migrations.MigrationFiles)
	if err != nil {
		return fmt.Errorf("db init %v", err)
	}
	repo, err := repository.NewRepository(db, log)
	if err != nil {
		return fmt.Errorf("repo init %v", err)
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	producer, err := kafka.NewProducer(cfg.Kafka)
	if err != nil {
		return fmt.Errorf("kafka producer %v", err)
	}
	mailer, err := notify.NewMailer(cfg.SMTP, log)
	if err != nil {
		return fmt.Errorf("mailer %v", err)
	}

	svc := service.NewService(service.Deps{
		Repo:      repo,
		Blacklist: blacklist.NewChecker(rdb, log),
		Counter:   counter.NewCounter(rdb, log),
		Converter: currency.NewClient(log, cfg.Currency),
		Notifier:  mailer,
		Events:    events.NewProducer(producer, cfg.Kafka.Topic, log),
	}, cfg.Service, log)
	h := handler.New(svc, log)

	srv := server.NewServer(cfg.Server, h.NewRouter())
	log.Info("http server start ON: ",
		zap.String("addr",
			net.JoinHostPort(cfg.Server.Host, cfg.Server.Port)))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return srv.Run()
	})
	g.Go(func() error {
		<-ctx.Done()
		log.Debug("Graceful shutdown")
		closeCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
		defer cancel()
		return srv.Stop(closeCtx)
	})

	err = g.Wait()

	db.Close()
	if cErr := rdb.Close(); cErr != nil {
		log.Error("redis close", zap.Error(cErr))
	}
	if cErr := producer.Close(); cErr != nil {
		log.Error("kafka close", zap.Error(cErr))
	}
	log.Info("Graceful shutdown finished")
	return err
}
