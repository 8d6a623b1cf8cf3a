package boot

import (
	"context"
	"testing"
	"time"

	"villas/src/booking"
	"villas/src/catalog"
	"villas/src/config"
	"villas/src/db"
	"villas/src/lib"
	"villas/src/lib/mailer"
	"villas/src/payments"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitStoreSqliteAndSeed(t *testing.T) {
	db.NewDB(nil)
	defer db.NewDB(nil)
	cfg := &config.Config{StoreDriver: "sqlite", SqlitePath: "file::memory:"}
	ctx := context.Background()

	s, closeFn, err := InitStore(ctx, cfg)
	require.NoError(t, err)
	defer closeFn()

	c := catalog.New(s)
	SeedCatalog(ctx, c)
	SeedCatalog(ctx, c)
	n, err := s.CountVillas(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 10, n)
}

func TestInitStoreUnsupported(t *testing.T) {
	db.NewDB(nil)
	_, _, err := InitStore(context.Background(), &config.Config{StoreDriver: "cassandra"})
	assert.Error(t, err)
}

func TestInitLocker(t *testing.T) {
	assert.IsType(t, &booking.LocalLocker{}, InitLocker(&config.Config{}))
	assert.IsType(t, &lib.RedisLocker{}, InitLocker(&config.Config{RedisHost: "redis://localhost:6379/0"}))
	assert.IsType(t, &booking.LocalLocker{}, InitLocker(&config.Config{RedisHost: "://bad"}))
}

func TestInitNotifier(t *testing.T) {
	assert.IsType(t, &mailer.Sink{}, InitNotifier(&config.Config{}))
	assert.IsType(t, &mailer.Sink{}, InitNotifier(&config.Config{SMTPHost: "smtp.example.com", SMTPPort: 587}))
	assert.IsType(t, &mailer.Sink{}, InitNotifier(&config.Config{SESRegion: "us-east-1"}))
}

func TestInitScheduler(t *testing.T) {
	db.NewDB(nil)
	defer db.NewDB(nil)
	cfg := &config.Config{StoreDriver: "sqlite", SqlitePath: "file::memory:", SweepInterval: time.Hour}
	s, closeFn, err := InitStore(context.Background(), cfg)
	require.NoError(t, err)
	defer closeFn()

	engine := payments.NewEngine(s, InitProvider(cfg), nil, payments.Options{})
	sched, err := InitScheduler(cfg, engine)
	require.NoError(t, err)
	assert.Len(t, sched.Jobs(), 1)
	assert.Equal(t, "reconcile-stale-payments", sched.Jobs()[0].Name())
	StopScheduler(sched)
}
