package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"fmt"
	"venuedesk/infras/otel"
	"venuedesk/infras/postgres"
	"venuedesk/internal/domains/booking/model"
	"venuedesk/shared/constant"
	gDto "venuedesk/shared/dto"
	gRepo "venuedesk/shared/repository"

	"github.com/rs/zerolog/log"
)

type Booking interface {
	Insert(ctx context.Context, model model.Booking) error
	// InsertWithHistory persists a new booking and its initial history row in
	// one transaction; either both commit or neither does.
	InsertWithHistory(ctx context.Context, booking model.Booking, entry model.History) error
	Get(ctx context.Context, filter gDto.FilterGroup, columns ...string) (model.Booking, error)
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.Booking, error)
	Exist(ctx context.Context, filter gDto.FilterGroup) (bool, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
	Update(ctx context.Context, req map[string]any, filter gDto.FilterGroup) error
	// UpdateWithHistory applies a booking mutation and appends the matching
	// history row in one transaction.
	UpdateWithHistory(ctx context.Context, req map[string]any, filter gDto.FilterGroup, entry model.History) error
}

type repositoryImpl struct {
	gRepo.Repository[model.Booking]
	history gRepo.Repository[model.History]
	db      *postgres.Connection
	otel    otel.Otel
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	return &repositoryImpl{
		Repository: gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel),
		history:    gRepo.NewRepository[model.History](model.HistoryEntityName, model.HistoryTableName, model.HistoryFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}

func (repo *repositoryImpl) InsertWithHistory(ctx context.Context, booking model.Booking, entry model.History) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.InsertWithHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback booking insert")
			}
		}
	}()

	if err = repo.Repository.InsertTx(ctx, tx, booking); err != nil {
		return err
	}

	if err = repo.history.InsertTx(ctx, tx, entry); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking insert (%s): %w", model.EntityName, err)
	}

	return nil
}

func (repo *repositoryImpl) UpdateWithHistory(ctx context.Context, req map[string]any, filter gDto.FilterGroup, entry model.History) (err error) {
	ctx, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".booking.UpdateWithHistory")
	defer scope.End()
	defer scope.TraceIfError(err)

	tx, err := repo.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction (%s): %w", model.EntityName, err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback booking update")
			}
		}
	}()

	if err = repo.Repository.UpdateTx(ctx, tx, req, filter); err != nil {
		return err
	}

	if err = repo.history.InsertTx(ctx, tx, entry); err != nil {
		return err
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit booking update (%s): %w", model.EntityName, err)
	}

	return nil
}
