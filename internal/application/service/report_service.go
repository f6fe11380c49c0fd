package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/pkg/aggregate"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

const (
	recentTransactionsLimit = 5
	// sharedReadTimeout bounds a read that may outlive the request that started it
	sharedReadTimeout = 15 * time.Second
)

// ReportService computes the sales report, the dashboard and the monthly chart.
// All three are one aggregation over store reads in the shop's time zone.
type ReportService struct {
	txRepo      repository.TransactionRepository
	orderRepo   repository.OrderRepository
	monthlyRepo repository.MonthlyReportRepository
	loc         *time.Location
	now         func() time.Time

	sfg     singleflight.Group // collapses concurrent identical reads
	breaker *gobreaker.CircuitBreaker[any]
}

// NewReportService creates a new report service
func NewReportService(
	txRepo repository.TransactionRepository,
	orderRepo repository.OrderRepository,
	monthlyRepo repository.MonthlyReportRepository,
	loc *time.Location,
) *ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportService{
		txRepo:      txRepo,
		orderRepo:   orderRepo,
		monthlyRepo: monthlyRepo,
		loc:         loc,
		now:         time.Now,
		breaker:     gobreaker.NewCircuitBreaker[any](readBreakerSettings()),
	}
}

func readBreakerSettings() gobreaker.Settings {
	return gobreaker.Settings{
		Name:        "report-store-reads",
		MaxRequests: 1,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("circuit breaker state changed")
		},
	}
}

// WithClock replaces the clock used to resolve "today"
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

// Location returns the time zone reports are computed in
func (s *ReportService) Location() *time.Location {
	return s.loc
}

// SalesReport is the revenue of every sale in one period
type SalesReport struct {
	Period   aggregate.Period  `json:"period"`
	Date     string            `json:"date"`
	Timezone string            `json:"timezone"`
	Status   enum.ReportStatus `json:"status"`
	Source   enum.ReportSource `json:"source"`
	Sales    aggregate.Result  `json:"sales"`
}

// Dashboard is the admin landing page
type Dashboard struct {
	Status             enum.ReportStatus    `json:"status"`
	Source             enum.ReportSource    `json:"source"`
	GeneratedAt        time.Time            `json:"generated_at"`
	OrdersToday        aggregate.Result     `json:"orders_today"`
	OrdersThisWeek     aggregate.Result     `json:"orders_this_week"`
	PosSalesToday      aggregate.Result     `json:"pos_sales_today"`
	RecentTransactions []entity.Transaction `json:"recent_transactions"`
}

// MonthlyChart holds twelve months of sales for one year
type MonthlyChart struct {
	Year       int                       `json:"year"`
	Status     enum.ReportStatus         `json:"status"`
	Source     enum.ReportSource         `json:"source"`
	ComputedAt time.Time                 `json:"computed_at"`
	Months     []entity.MonthlyAggregate `json:"months"`
}

// sale is the common shape of an order and a POS transaction for aggregation
type sale struct {
	at     time.Time
	amount int64
}

func saleAt(s sale) time.Time { return s.at }
func saleAmount(s sale) int64 { return s.amount }
func orderAt(o entity.Order) time.Time { return o.CreatedAt }
func orderAmount(o entity.Order) int64 { return o.TotalPrice }
func txAt(t entity.Transaction) time.Time { return t.CreatedAt }
func txAmount(t entity.Transaction) int64 { return t.TotalAmount }

// SalesReport aggregates orders and POS transactions of the period containing date.
// It does not degrade: a failed read is returned as a read error.
func (s *ReportService) SalesReport(ctx context.Context, period aggregate.Period, date time.Time) (*SalesReport, error) {
	start, end := aggregate.Range(period, date, s.loc)
	key := fmt.Sprintf("sales:%s:%d", period, start.Unix())

	v, err := s.shared(ctx, key, func(ctx context.Context) (interface{}, error) {
		sales, err := s.readSales(ctx, start, end)
		if err != nil {
			return nil, err
		}
		res := aggregate.Aggregate(sales, start, end, aggregate.ForPeriod(period), saleAt, saleAmount)
		return &SalesReport{
			Period:   period,
			Date:     start.Format("2006-01-02"),
			Timezone: s.loc.String(),
			Status:   statusOf(res),
			Source:   enum.ReportSourceLive,
			Sales:    res,
		}, nil
	})
	if err != nil {
		log.Error().Err(err).Str("period", string(period)).Time("start", start).Msg("sales report read failed")
		return nil, apperror.NewReadError("Sales data is unavailable", err)
	}

	report := *v.(*SalesReport)
	return &report, nil
}

// Dashboard returns today's orders by hour, this week's orders by weekday,
// today's POS sales and the latest transactions. A failed read yields
// placeholder figures marked as degraded.
func (s *ReportService) Dashboard(ctx context.Context) *Dashboard {
	now := s.now().In(s.loc)
	dayStart, dayEnd := aggregate.Range(aggregate.PeriodDay, now, s.loc)
	weekStart, weekEnd := aggregate.Range(aggregate.PeriodWeek, now, s.loc)

	v, err := s.shared(ctx, "dashboard:"+dayStart.Format("2006-01-02"), func(ctx context.Context) (interface{}, error) {
		orders, err := guardedRead(s, func() ([]entity.Order, error) {
			return s.orderRepo.ListRange(ctx, weekStart, weekEnd)
		})
		if err != nil {
			return nil, err
		}
		txs, err := guardedRead(s, func() ([]entity.Transaction, error) {
			return s.txRepo.ListRange(ctx, dayStart, dayEnd)
		})
		if err != nil {
			return nil, err
		}
		recent, err := guardedRead(s, func() ([]entity.Transaction, error) {
			return s.txRepo.ListRecent(ctx, recentTransactionsLimit)
		})
		if err != nil {
			return nil, err
		}
		if recent == nil {
			recent = []entity.Transaction{}
		}

		d := &Dashboard{
			Source:             enum.ReportSourceLive,
			GeneratedAt:        now,
			OrdersToday:        aggregate.Aggregate(orders, dayStart, dayEnd, aggregate.HourOfDay, orderAt, orderAmount),
			OrdersThisWeek:     aggregate.Aggregate(orders, weekStart, weekEnd, aggregate.DayOfWeek, orderAt, orderAmount),
			PosSalesToday:      aggregate.Aggregate(txs, dayStart, dayEnd, aggregate.HourOfDay, txAt, txAmount),
			RecentTransactions: recent,
		}
		d.Status = enum.ReportStatusEmpty
		if !d.OrdersThisWeek.IsEmpty() || !d.PosSalesToday.IsEmpty() || len(recent) > 0 {
			d.Status = enum.ReportStatusOK
		}
		return d, nil
	})
	if err != nil {
		log.Warn().Err(err).Msg("dashboard read failed, serving placeholder data")
		return &Dashboard{
			Status:             enum.ReportStatusDegraded,
			Source:             enum.ReportSourceSynthetic,
			GeneratedAt:        now,
			OrdersToday:        aggregate.Synthetic(dayStart, dayEnd, aggregate.HourOfDay),
			OrdersThisWeek:     aggregate.Synthetic(weekStart, weekEnd, aggregate.DayOfWeek),
			PosSalesToday:      aggregate.Synthetic(dayStart, dayEnd, aggregate.HourOfDay),
			RecentTransactions: []entity.Transaction{},
		}
	}

	d := *v.(*Dashboard)
	return &d
}

// MonthlyChart returns the sales of each month of year. A live result is
// saved as the year's snapshot; when the store cannot be read the last
// snapshot is served, and placeholder figures when there is none.
func (s *ReportService) MonthlyChart(ctx context.Context, year int) *MonthlyChart {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(1, 0, 0)

	v, err := s.shared(ctx, fmt.Sprintf("monthly:%d", year), func(ctx context.Context) (interface{}, error) {
		sales, err := s.readSales(ctx, start, end)
		if err != nil {
			return nil, err
		}
		res := aggregate.Aggregate(sales, start, end, aggregate.MonthOfYear, saleAt, saleAmount)
		chart := &MonthlyChart{
			Year:       year,
			Status:     statusOf(res),
			Source:     enum.ReportSourceLive,
			ComputedAt: s.now(),
			Months:     monthsOf(year, res),
		}

		snapshot := &entity.MonthlyReport{Year: year, Months: chart.Months, ComputedAt: chart.ComputedAt}
		if err := s.monthlyRepo.Save(ctx, snapshot); err != nil {
			log.Warn().Err(err).Int("year", year).Msg("monthly snapshot save failed")
		}
		return chart, nil
	})
	if err == nil {
		chart := *v.(*MonthlyChart)
		return &chart
	}

	log.Warn().Err(err).Int("year", year).Msg("monthly chart read failed")

	cached, cerr := s.monthlyRepo.GetByYear(ctx, year)
	if cerr != nil {
		log.Warn().Err(cerr).Int("year", year).Msg("monthly snapshot read failed")
	}
	if cerr == nil && cached != nil {
		return &MonthlyChart{
			Year:       year,
			Status:     enum.ReportStatusDegraded,
			Source:     enum.ReportSourceCached,
			ComputedAt: cached.ComputedAt,
			Months:     cached.Months,
		}
	}

	return &MonthlyChart{
		Year:       year,
		Status:     enum.ReportStatusDegraded,
		Source:     enum.ReportSourceSynthetic,
		ComputedAt: s.now(),
		Months:     monthsOf(year, aggregate.Synthetic(start, end, aggregate.MonthOfYear)),
	}
}

// shared runs fn once for every concurrent caller asking for key. fn gets a
// context detached from the caller that started it, so one caller going away
// does not fail the others; each caller still stops waiting on its own ctx.
func (s *ReportService) shared(ctx context.Context, key string, fn func(ctx context.Context) (interface{}, error)) (interface{}, error) {
	ch := s.sfg.DoChan(key, func() (interface{}, error) {
		readCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), sharedReadTimeout)
		defer cancel()
		return fn(readCtx)
	})

	select {
	case res := <-ch:
		return res.Val, res.Err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// readSales reads orders and POS transactions in [start, end) as one list
func (s *ReportService) readSales(ctx context.Context, start, end time.Time) ([]sale, error) {
	orders, err := guardedRead(s, func() ([]entity.Order, error) {
		return s.orderRepo.ListRange(ctx, start, end)
	})
	if err != nil {
		return nil, err
	}
	txs, err := guardedRead(s, func() ([]entity.Transaction, error) {
		return s.txRepo.ListRange(ctx, start, end)
	})
	if err != nil {
		return nil, err
	}

	sales := make([]sale, 0, len(orders)+len(txs))
	for _, o := range orders {
		sales = append(sales, sale{at: o.CreatedAt, amount: o.TotalPrice})
	}
	for _, t := range txs {
		sales = append(sales, sale{at: t.CreatedAt, amount: t.TotalAmount})
	}
	return sales, nil
}

// guardedRead runs a store read through the read breaker
func guardedRead[T any](s *ReportService, read func() ([]T, error)) ([]T, error) {
	v, err := s.breaker.Execute(func() (any, error) {
		return read()
	})
	if err != nil {
		return nil, err
	}
	return v.([]T), nil
}

func statusOf(res aggregate.Result) enum.ReportStatus {
	if res.IsEmpty() {
		return enum.ReportStatusEmpty
	}
	return enum.ReportStatusOK
}

func monthsOf(year int, res aggregate.Result) []entity.MonthlyAggregate {
	months := make([]entity.MonthlyAggregate, len(res.Buckets))
	for i, b := range res.Buckets {
		months[i] = entity.MonthlyAggregate{
			Month:        b.Key,
			Year:         year,
			TotalSales:   b.Count,
			TotalRevenue: b.Sum,
		}
	}
	return months
}
