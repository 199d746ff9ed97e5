package app

import (
	"context"
	"sync"
	"time"

	"github.com/Freeeeeet/lesson_scheduler/internal/service"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// BalanceReporter источник задолженностей студентов
type BalanceReporter interface {
	OutstandingBalances(ctx context.Context) ([]service.StudentBalance, error)
	Format(amount decimal.Decimal) string
}

// Scheduler управляет фоновыми задачами
type Scheduler struct {
	ledger   BalanceReporter
	interval time.Duration
	logger   *zap.Logger
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewScheduler создаёт новый планировщик
func NewScheduler(ledger BalanceReporter, interval time.Duration, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		ledger:   ledger,
		interval: interval,
		logger:   logger,
		stopChan: make(chan struct{}),
	}
}

// Start запускает фоновые задачи
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.Info("Starting background scheduler", zap.Duration("report_interval", s.interval))

	s.wg.Add(1)
	go s.runBalanceReportTask(ctx)
}

// Stop останавливает фоновые задачи и ждёт их завершения
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		s.logger.Info("Stopping background scheduler")
		close(s.stopChan)
	})
	s.wg.Wait()
}

// runBalanceReportTask периодически публикует отчёт о задолженностях
func (s *Scheduler) runBalanceReportTask(ctx context.Context) {
	defer s.wg.Done()

	// Первый запуск сразу при старте
	s.reportOutstandingBalances(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.reportOutstandingBalances(ctx)
		case <-s.stopChan:
			s.logger.Info("Balance report task stopped")
			return
		case <-ctx.Done():
			s.logger.Info("Balance report task cancelled")
			return
		}
	}
}

// reportOutstandingBalances логирует каждого студента с отрицательным балансом
func (s *Scheduler) reportOutstandingBalances(ctx context.Context) {
	debtors, err := s.ledger.OutstandingBalances(ctx)
	if err != nil {
		s.logger.Error("Failed to compute outstanding balances", zap.Error(err))
		return
	}

	total := decimal.Zero
	for _, d := range debtors {
		total = total.Add(d.Balance)
		s.logger.Warn("Outstanding balance",
			zap.Int64("student_id", d.StudentID),
			zap.String("balance", s.ledger.Format(d.Balance)),
		)
	}

	s.logger.Info("Outstanding balance report completed",
		zap.Int("students", len(debtors)),
		zap.String("total", s.ledger.Format(total)),
	)
}
