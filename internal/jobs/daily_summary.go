package jobs

import (
	"context"
	"time"

	"github.com/go-co-op/gocron"

	"github.com/jhoicas/Distripos-api/internal/domain/repository"
	"github.com/jhoicas/Distripos-api/pkg/logger"
)

// DailySummary job programado que loguea el resumen de ventas del día anterior.
type DailySummary struct {
	reports   repository.ReportRepository
	log       *logger.Logger
	scheduler *gocron.Scheduler
}

// NewDailySummary construye el job.
func NewDailySummary(reports repository.ReportRepository, log *logger.Logger) *DailySummary {
	return &DailySummary{
		reports:   reports,
		log:       log.Component("daily-summary"),
		scheduler: gocron.NewScheduler(time.Local),
	}
}

// Start programa la ejecución diaria a la 01:00 y arranca el scheduler en background.
func (j *DailySummary) Start() error {
	if _, err := j.scheduler.Every(1).Day().At("01:00").Do(j.run); err != nil {
		return err
	}
	j.scheduler.StartAsync()
	return nil
}

// Stop detiene el scheduler.
func (j *DailySummary) Stop() {
	j.scheduler.Stop()
}

func (j *DailySummary) run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	yesterday := time.Now().AddDate(0, 0, -1)
	pl, err := j.reports.GetDailyProfitLoss(ctx, yesterday)
	if err != nil {
		j.log.Error().Err(err).Msg("resumen diario de ventas")
		return
	}
	j.log.Info().
		Str("date", yesterday.Format("2006-01-02")).
		Str("sales_total", pl.SalesTotal.String()).
		Str("expenses_total", pl.ExpensesTotal.String()).
		Str("profit", pl.Profit.String()).
		Msg("resumen diario de ventas")
}
