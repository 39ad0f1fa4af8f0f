package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/restaurant-floor/internal/config"
	"github.com/BruksfildServices01/restaurant-floor/internal/db"
	"github.com/BruksfildServices01/restaurant-floor/internal/media"
	"github.com/BruksfildServices01/restaurant-floor/internal/notify"
	"github.com/BruksfildServices01/restaurant-floor/internal/payment"
	"github.com/BruksfildServices01/restaurant-floor/internal/securestore"
)

// Connect opens every configured backend and builds the App. Backends
// left unconfigured fall back to local stand-ins. The returned close
// func releases everything Connect opened.
func Connect(ctx context.Context, cfg *config.Config, log logrus.FieldLogger) (*App, func(context.Context) error, error) {
	gdb, err := db.NewDB(cfg, log)
	if err != nil {
		return nil, nil, err
	}

	var closers []func() error
	if sqlDB, err := gdb.DB(); err == nil {
		closers = append(closers, sqlDB.Close)
	}
	fail := func(err error) (*App, func(context.Context) error, error) {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
		return nil, nil, err
	}

	deps := Deps{Config: cfg, DB: gdb, Log: log}

	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		if err := client.Ping(ctx).Err(); err != nil {
			_ = client.Close()
			return fail(fmt.Errorf("connect redis: %w", err))
		}
		deps.KV = securestore.NewRedis(client, cfg.SessionTTL)
		closers = append(closers, client.Close)
	} else {
		log.Warn("REDIS_ADDR not set, sessions will not outlive this process")
		deps.KV = securestore.NewMemory()
	}

	if cfg.AMQPUrl != "" {
		sender, closeAMQP, err := notify.DialAMQP(cfg.AMQPUrl, cfg.SMSQueue, log)
		if err != nil {
			return fail(err)
		}
		deps.SMS = sender
		closers = append(closers, closeAMQP)
	}

	if cfg.MPAccessToken != "" {
		mp, err := payment.NewMercadoPago(payment.MercadoPagoOptions{
			AccessToken:   cfg.MPAccessToken,
			PayerEmail:    cfg.MPPayerEmail,
			PaymentMethod: cfg.MPPaymentMethod,
		}, log)
		if err != nil {
			return fail(err)
		}
		deps.Payments = mp
	}

	if cfg.S3Bucket != "" {
		deps.Avatars = media.NewS3Uploader(media.S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	}

	a := New(deps)

	closeAll := func(ctx context.Context) error {
		errs := []error{a.Close(ctx)}
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}
	return a, closeAll, nil
}
