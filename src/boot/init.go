package boot

import (
	"context"
	"log"
	"time"

	"villas/src/booking"
	"villas/src/catalog"
	"villas/src/config"
	"villas/src/db"
	"villas/src/lib"
	awslib "villas/src/lib/aws"
	"villas/src/lib/mailer"
	"villas/src/payments"
	"villas/src/store"

	"github.com/go-co-op/gocron/v2"
)

const lockTTL = 10 * time.Second

// InitStore opens the store selected by STORE_DRIVER and prepares its schema or indexes.
// The returned func releases the underlying connection.
func InitStore(ctx context.Context, cfg *config.Config) (store.Store, func(), error) {
	if cfg.StoreDriver == "mongo" {
		client, err := store.GetMongoClient(ctx, cfg.MongoURL)
		if err != nil {
			log.Printf("[boot] Error connecting to MongoDB: %s\n", err.Error())
			return nil, nil, err
		}
		s := store.NewMongoStore(client, cfg.DBName)
		if err := s.EnsureIndexes(ctx); err != nil {
			log.Printf("[boot] Error creating indexes: %s\n", err.Error())
			return nil, nil, err
		}
		return s, func() { client.Disconnect(context.Background()) }, nil
	}

	d, err := db.Open(cfg)
	if err != nil {
		return nil, nil, err
	}
	if err := db.Migrate(d); err != nil {
		log.Printf("[boot] error migration: %s\n", err.Error())
		return nil, nil, err
	}
	return store.NewGormStore(d), func() {
		if sqlDB, err := d.DB(); err == nil {
			sqlDB.Close()
		}
	}, nil
}

func SeedCatalog(ctx context.Context, c *catalog.Catalog) {
	n, err := c.Seed(ctx)
	if err != nil {
		log.Printf("[boot] Error seeding villas: %s\n", err.Error())
		return
	}
	if n > 0 {
		log.Printf("[boot] Seeded %d villas\n", n)
	}
}

// InitLocker uses Redis when REDIS_HOST is set so every API instance shares the booking lock.
func InitLocker(cfg *config.Config) booking.Locker {
	if cfg.RedisHost == "" {
		return booking.NewLocalLocker()
	}
	rdb, err := lib.GetRedisClient(cfg.RedisHost)
	if err != nil {
		log.Println("[boot] Falling back to in-process booking lock")
		return booking.NewLocalLocker()
	}
	return lib.NewRedisLocker(rdb, lockTTL)
}

func InitNotifier(cfg *config.Config) *mailer.Sink {
	if cfg.SMTPHost == "" && cfg.SESRegion != "" {
		client, err := awslib.GetSESClient(context.Background(), cfg.SESRegion)
		if err == nil {
			return mailer.NewSink(awslib.NewSESMailer(client))
		}
	}
	if cfg.SMTPHost == "" {
		log.Println("[boot] SMTP_HOST not set, emails will only be logged")
		return mailer.NewSink(mailer.LogNotifier{})
	}
	return mailer.NewSink(mailer.NewSMTPNotifier(lib.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
	}))
}

func InitProvider(cfg *config.Config) *lib.Stripe {
	if cfg.StripeSecretKey == "" {
		log.Println("[boot] STRIPE_SECRET_KEY is not set")
	}
	return lib.NewStripe(lib.GetStripeClient(cfg.StripeSecretKey), cfg.WebhookSecret)
}

// InitScheduler starts the sweep that reconciles checkout sessions nobody polled.
func InitScheduler(cfg *config.Config, engine *payments.Engine) (gocron.Scheduler, error) {
	sched, err := lib.NewScheduler()
	if err != nil {
		log.Println("An error has occurred. Check logs for info")
		return nil, err
	}
	_, err = lib.CreateCronJob(sched, "reconcile-stale-payments", cfg.SweepInterval, func(ctx context.Context) {
		n, err := engine.ReconcileStale(ctx)
		if err != nil {
			log.Printf("[sweep] Error reconciling stale transactions: %s\n", err.Error())
			return
		}
		if n > 0 {
			log.Printf("[sweep] Reconciled %d stale transactions\n", n)
		}
	})
	if err != nil {
		log.Printf("Error running job: %s\n", err.Error())
		return nil, err
	}
	log.Println("Jobs in queue:", len(sched.Jobs()))
	sched.Start()
	return sched, nil
}

func StopScheduler(sched gocron.Scheduler) {
	if sched == nil {
		return
	}
	if err := sched.Shutdown(); err != nil {
		log.Println("An error has occurred while shutting stopping Scheduler. Check logs for info")
	}
}
