package components

import (
	"reservas-admin/internal/infra/docstore"
	repo_impl "reservas-admin/internal/infra/repository"
	"reservas-admin/internal/usecase/commands"
	"reservas-admin/internal/usecase/queries"

	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		func(store *docstore.PostgresStore) docstore.Store { return store },
		fx.Annotate(
			repo_impl.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
			fx.As(new(queries.ReservationReadStore)),
		),
		fx.Annotate(
			repo_impl.NewNotificationRepository,
			fx.As(new(commands.NotificationRepository)),
		),
	),
)
