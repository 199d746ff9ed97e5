package app

import (
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/config"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository"
	"github.com/Freeeeeet/lesson_scheduler/internal/repository/base"
	"github.com/Freeeeeet/lesson_scheduler/internal/service"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Services набор сервисов приложения поверх одного пула
type Services struct {
	Terms     *service.TermService
	Requests  *service.RequestService
	Bookings  *service.BookingService
	Transfers *service.TransferService
	Ledger    *service.LedgerService
}

// NewServices собирает репозитории и сервисы
func NewServices(pool *pgxpool.Pool, cfg *config.Config, logger *zap.Logger) *Services {
	db := base.NewRepository(pool)

	terms := repository.NewTermRepository(db)
	requests := repository.NewLessonRequestRepository(db)
	bookings := repository.NewBookingRepository(db)
	transfers := repository.NewTransferRepository(db)
	users := repository.NewUserRepository(db)

	return &Services{
		Terms:     service.NewTermService(db, terms, time.Now, logger.Named("terms")),
		Requests:  service.NewRequestService(requests, bookings, users, logger.Named("requests")),
		Bookings:  service.NewBookingService(db, bookings, requests, terms, users, time.Now, logger.Named("bookings")),
		Transfers: service.NewTransferService(transfers, bookings, time.Now, logger.Named("transfers")),
		Ledger:    service.NewLedgerService(bookings, transfers, users, cfg.LessonPrice, cfg.Currency, logger.Named("ledger")),
	}
}
