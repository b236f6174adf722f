package bootstrap

import (
	"context"

	"reservas-admin/internal/infra/db"
	"reservas-admin/internal/infra/docstore"
	"reservas-admin/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var DBModule = fx.Module("db",
	fx.Provide(
		NewDB,
		NewDocumentStore,
	),
)

func NewDB(lc fx.Lifecycle, cfg config.Config) (*pgxpool.Pool, error) {
	pool, cleanup, err := db.Connect(cfg.DB)
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			if cleanup != nil {
				cleanup()
			}
			return nil
		},
	})

	return pool, nil
}

func NewDocumentStore(lc fx.Lifecycle, pool *pgxpool.Pool) *docstore.PostgresStore {
	store := docstore.NewPostgresStore(pool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return store.EnsureSchema(ctx)
		},
	})

	return store
}
