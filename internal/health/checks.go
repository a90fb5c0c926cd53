package health

import (
	"context"
	"errors"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/frameart/storefront/internal/config"
	"github.com/hellofresh/health-go/v5"
	"github.com/hellofresh/health-go/v5/checks/postgres"
	healthRedis "github.com/hellofresh/health-go/v5/checks/redis"
	"google.golang.org/api/iterator"
)

const Version = "1.0.0"

// Endpoints holds clients whose health is checked directly. A nil client
// means that backend is not in use.
type Endpoints struct {
	Firestore *firestore.Client
}

func NewHealthHandler(cfg *config.Config, endpoints *Endpoints) (*health.Health, error) {
	checks := []health.Config{
		{
			Name:      "redis",
			Timeout:   2 * time.Second,
			SkipOnErr: false,
			Check: healthRedis.New(healthRedis.Config{
				DSN: cfg.RedisConnect.GetDSN(),
			}),
		},
	}

	if cfg.Store.Backend == config.StoreBackendPostgres {
		checks = append(checks, health.Config{
			Name:      "database",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check: postgres.New(postgres.Config{
				DSN: cfg.Database.GetDSN(),
			}),
		})
	}

	if endpoints != nil && endpoints.Firestore != nil {
		checks = append(checks, health.Config{
			Name:      "firestore",
			Timeout:   3 * time.Second,
			SkipOnErr: false,
			Check:     firestoreCheck(endpoints.Firestore),
		})
	}

	h, err := health.New(
		health.WithComponent(health.Component{
			Name:    cfg.Otel.ServiceName,
			Version: Version,
		}),
		health.WithSystemInfo(),
		health.WithChecks(checks...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create health instance: %w", err)
	}

	return h, nil
}

func firestoreCheck(client *firestore.Client) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		_, err := client.Collections(ctx).Next()
		if err != nil && !errors.Is(err, iterator.Done) {
			return fmt.Errorf("failed to reach firestore: %w", err)
		}

		return nil
	}
}
