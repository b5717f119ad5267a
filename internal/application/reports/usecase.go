package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Distripos-api/internal/application/dto"
	"github.com/jhoicas/Distripos-api/internal/domain"
	"github.com/jhoicas/Distripos-api/internal/domain/repository"
	"github.com/jhoicas/Distripos-api/internal/infrastructure/redisx"
)

// UseCase reportes de pérdidas y ganancias y tablero, con cache Redis de TTL corto.
type UseCase struct {
	repo  repository.ReportRepository
	cache *redisx.ReportCache
}

// NewUseCase construye el caso de uso. cache puede ser nil.
func NewUseCase(repo repository.ReportRepository, cache *redisx.ReportCache) *UseCase {
	return &UseCase{repo: repo, cache: cache}
}

// Daily devuelve ventas, gastos y utilidad de un día calendario.
func (uc *UseCase) Daily(ctx context.Context, date time.Time) (*dto.ProfitLossResponse, error) {
	key := fmt.Sprintf("reports:daily:%s", date.Format("2006-01-02"))
	var cached dto.ProfitLossResponse
	if hit, _ := uc.cache.GetJSON(ctx, key, &cached); hit {
		return &cached, nil
	}

	pl, err := uc.repo.GetDailyProfitLoss(ctx, date)
	if err != nil {
		return nil, err
	}
	resp := toProfitLoss(*pl)
	uc.cache.SetJSON(ctx, key, resp)
	return &resp, nil
}

// Monthly devuelve un bucket por día con actividad del mes.
func (uc *UseCase) Monthly(ctx context.Context, month time.Month, year int) (*dto.MonthlyProfitLossResponse, error) {
	if month < time.January || month > time.December || year < 2000 {
		return nil, domain.ErrInvalidInput
	}
	key := fmt.Sprintf("reports:monthly:%04d-%02d", year, int(month))
	var cached dto.MonthlyProfitLossResponse
	if hit, _ := uc.cache.GetJSON(ctx, key, &cached); hit {
		return &cached, nil
	}

	days, err := uc.repo.GetMonthlyProfitLoss(ctx, month, year)
	if err != nil {
		return nil, err
	}
	resp := dto.MonthlyProfitLossResponse{
		Month: int(month),
		Year:  year,
		Days:  make([]dto.ProfitLossResponse, 0, len(days)),
	}
	for _, d := range days {
		resp.Days = append(resp.Days, toProfitLoss(d))
	}
	uc.cache.SetJSON(ctx, key, resp)
	return &resp, nil
}

// Dashboard devuelve los agregados del tablero de administración.
func (uc *UseCase) Dashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	const key = "reports:dashboard"
	var cached dto.DashboardResponse
	if hit, _ := uc.cache.GetJSON(ctx, key, &cached); hit {
		return &cached, nil
	}

	summary, err := uc.repo.GetDashboardSummary(ctx)
	if err != nil {
		return nil, err
	}
	resp := dto.DashboardResponse{
		SalesToday:     summary.SalesToday,
		SalesMonth:     summary.SalesMonth,
		OpenLoans:      summary.OpenLoans,
		LoansBalance:   summary.LoansBalance,
		StockValuation: summary.StockValuation,
		TopProducts:    make([]dto.TopProductResponse, 0, len(summary.TopProducts)),
	}
	for _, t := range summary.TopProducts {
		resp.TopProducts = append(resp.TopProducts, dto.TopProductResponse{
			StockID:     t.StockID,
			ProductCode: t.ProductCode,
			Name:        t.Name,
			UnitsSold:   t.UnitsSold,
			Revenue:     t.Revenue,
		})
	}
	uc.cache.SetJSON(ctx, key, resp)
	return &resp, nil
}

func toProfitLoss(pl repository.DailyProfitLoss) dto.ProfitLossResponse {
	return dto.ProfitLossResponse{
		Date:          pl.Date,
		SalesTotal:    pl.SalesTotal,
		ExpensesTotal: pl.ExpensesTotal,
		Profit:        pl.Profit,
	}
}
