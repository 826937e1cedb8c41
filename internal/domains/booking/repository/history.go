package repository

//go:generate go run go.uber.org/mock/mockgen -source=./history.go -destination=../mocks/history_mock.go -package=mocks

import (
	"context"
	"venuedesk/infras/otel"
	"venuedesk/infras/postgres"
	"venuedesk/internal/domains/booking/model"
	gDto "venuedesk/shared/dto"
	gRepo "venuedesk/shared/repository"
)

// History is the append-only ledger. There is intentionally no update or
// delete surface.
type History interface {
	Insert(ctx context.Context, model model.History) error
	GetAll(ctx context.Context, params gDto.QueryParams, filter gDto.FilterGroup, columns ...string) ([]model.History, error)
	Count(ctx context.Context, filter gDto.FilterGroup) (int, error)
}

type historyImpl struct {
	gRepo.Repository[model.History]
	db   *postgres.Connection
	otel otel.Otel
}

func NewHistory(db *postgres.Connection, otel otel.Otel) History {
	return &historyImpl{
		Repository: gRepo.NewRepository[model.History](model.HistoryEntityName, model.HistoryTableName, model.HistoryFieldID, db, otel),
		db:         db,
		otel:       otel,
	}
}
