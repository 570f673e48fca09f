package bootstrap

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/itjpay/billing-dashboard/config"
	authrepo "github.com/itjpay/billing-dashboard/internal/auth/repository"
	"github.com/itjpay/billing-dashboard/internal/checkout"
	clientrepo "github.com/itjpay/billing-dashboard/internal/clients/repository"
	"github.com/itjpay/billing-dashboard/internal/logging"
	notifrepo "github.com/itjpay/billing-dashboard/internal/notifications/repository"
	payrepo "github.com/itjpay/billing-dashboard/internal/payments/repository"
	planrepo "github.com/itjpay/billing-dashboard/internal/plans/repository"
	projrepo "github.com/itjpay/billing-dashboard/internal/projects/repository"
	"github.com/itjpay/billing-dashboard/internal/seed"
	"github.com/itjpay/billing-dashboard/internal/storage/postgres"
)

// Stores holds the repositories selected by configuration.
type Stores struct {
	Driver string
	DB     *sql.DB
	Redis  *redis.Client

	Projects      projrepo.Repository
	Plans         planrepo.Repository
	Clients       clientrepo.Repository
	Payments      payrepo.Repository
	Notifications notifrepo.Repository
	Admins        authrepo.Repository
	Checkout      checkout.Store

	// Events is set when Redis carries notification events between instances.
	Events *notifrepo.RedisPublisher
}

func BuildStores(ctx context.Context, cfg *config.Config) (*Stores, error) {
	log := logging.New(ctx)
	now := time.Now()
	s := &Stores{Driver: cfg.Storage.Driver}

	switch cfg.Storage.Driver {
	case config.StoragePostgres:
		db, err := postgres.NewConnection(ctx, &cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(db); err != nil {
			db.Close()
			return nil, err
		}
		s.DB = db
		s.Projects = projrepo.NewPostgresRepository(db)
		s.Plans = planrepo.NewPostgresRepository(db)
		s.Clients = clientrepo.NewPostgresRepository(db)
		s.Payments = payrepo.NewPostgresRepository(db)
		s.Admins = authrepo.NewPostgresRepository(db)
		log.Infof("bootstrap.stores", "using postgres at %s:%d", cfg.Database.Host, cfg.Database.Port)
	default:
		s.Projects = projrepo.NewMemoryRepository(seed.Projects())
		s.Plans = planrepo.NewMemoryRepository(seed.Plans())
		s.Clients = clientrepo.NewMemoryRepository(seed.Clients(now))
		s.Payments = payrepo.NewMemoryRepository(seed.Payments())
		s.Admins = authrepo.NewMemoryRepository()
		log.Info("bootstrap.stores", "using in-memory stores with demo data")
	}

	if cfg.Redis.Addr == "" {
		s.Notifications = notifrepo.NewMemoryRepository(seed.Notifications(now))
		s.Checkout = checkout.NewMemoryStore()
		return s, nil
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		s.Close()
		rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	notes := notifrepo.NewRedisRepository(rdb)
	if err := notes.Seed(ctx, seed.Notifications(now)); err != nil {
		s.Close()
		rdb.Close()
		return nil, err
	}
	s.Redis = rdb
	s.Notifications = notes
	s.Checkout = checkout.NewRedisStore(rdb)
	s.Events = notifrepo.NewRedisPublisher(rdb)
	log.Infof("bootstrap.stores", "notifications and checkout sessions in redis at %s", cfg.Redis.Addr)

	return s, nil
}

func (s *Stores) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
	if s.Redis != nil {
		s.Redis.Close()
	}
}

// redisPinger adapts *redis.Client to the health check.
type redisPinger struct {
	client *redis.Client
}

func (p redisPinger) PingContext(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}
