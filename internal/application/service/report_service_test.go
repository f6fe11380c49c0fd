package service

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/enum"
	"github.com/injapanfood/pos-api/pkg/aggregate"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

// 2024-03-15 is a Friday
func jst(day, hour int) time.Time {
	return time.Date(2024, time.March, day, hour, 0, 0, 0, tokyo())
}

func newReportFixture() (*ReportService, *fakeTxRepo, *fakeOrderRepo, *fakeMonthlyRepo) {
	txRepo := &fakeTxRepo{}
	orderRepo := &fakeOrderRepo{}
	monthly := newFakeMonthlyRepo()
	svc := NewReportService(txRepo, orderRepo, monthly, tokyo()).
		WithClock(func() time.Time { return jst(15, 14) })
	return svc, txRepo, orderRepo, monthly
}

func addTx(repo *fakeTxRepo, at time.Time, total int64) {
	_ = repo.Create(context.Background(), &entity.Transaction{
		TotalAmount: total,
		Status:      enum.TransactionStatusCompleted,
		CreatedAt:   at,
	})
}

func TestReportService_SalesReportDay(t *testing.T) {
	svc, txRepo, orderRepo, _ := newReportFixture()

	addTx(txRepo, jst(15, 9), 1200)
	addTx(txRepo, jst(15, 9).Add(30*time.Minute), 500)
	addTx(txRepo, jst(14, 23), 9999) // previous day
	orderRepo.orders = []entity.Order{
		{ID: "o1", TotalPrice: 3000, CreatedAt: jst(15, 18)},
		{ID: "o2", TotalPrice: 4000, CreatedAt: jst(16, 0)}, // next day
	}

	report, err := svc.SalesReport(context.Background(), aggregate.PeriodDay, jst(15, 0))
	require.NoError(t, err)

	assert.Equal(t, enum.ReportStatusOK, report.Status)
	assert.Equal(t, enum.ReportSourceLive, report.Source)
	assert.Equal(t, "2024-03-15", report.Date)
	assert.Equal(t, "Asia/Tokyo", report.Timezone)
	assert.Equal(t, int64(3), report.Sales.Count)
	assert.Equal(t, int64(4700), report.Sales.Sum)
	require.Len(t, report.Sales.Buckets, 24)
	assert.Equal(t, int64(2), report.Sales.Buckets[9].Count)
	assert.Equal(t, int64(1700), report.Sales.Buckets[9].Sum)
	assert.Equal(t, int64(3000), report.Sales.Buckets[18].Sum)
}

func TestReportService_SalesReportMonthAndYear(t *testing.T) {
	svc, txRepo, _, _ := newReportFixture()
	addTx(txRepo, jst(1, 10), 100)
	addTx(txRepo, jst(31, 22), 200)
	addTx(txRepo, time.Date(2024, time.July, 4, 12, 0, 0, 0, tokyo()), 300)

	month, err := svc.SalesReport(context.Background(), aggregate.PeriodMonth, jst(15, 0))
	require.NoError(t, err)
	require.Len(t, month.Sales.Buckets, 31)
	assert.Equal(t, int64(100), month.Sales.Buckets[0].Sum)
	assert.Equal(t, int64(200), month.Sales.Buckets[30].Sum)
	assert.Equal(t, int64(300), month.Sales.Sum)

	year, err := svc.SalesReport(context.Background(), aggregate.PeriodYear, jst(15, 0))
	require.NoError(t, err)
	require.Len(t, year.Sales.Buckets, 12)
	assert.Equal(t, int64(300), year.Sales.Buckets[2].Sum)
	assert.Equal(t, int64(300), year.Sales.Buckets[6].Sum)
	assert.Equal(t, int64(600), year.Sales.Sum)
}

func TestReportService_SalesReportEmpty(t *testing.T) {
	svc, _, _, _ := newReportFixture()

	report, err := svc.SalesReport(context.Background(), aggregate.PeriodDay, jst(15, 0))
	require.NoError(t, err)
	assert.Equal(t, enum.ReportStatusEmpty, report.Status)
	assert.Equal(t, enum.ReportSourceLive, report.Source)
	assert.Len(t, report.Sales.Buckets, 24)
}

func TestReportService_SalesReportReadFailure(t *testing.T) {
	svc, txRepo, _, _ := newReportFixture()
	txRepo.err = errors.New("server selection timeout")

	report, err := svc.SalesReport(context.Background(), aggregate.PeriodDay, jst(15, 0))
	require.Error(t, err)
	assert.Nil(t, report)
	assert.True(t, errors.Is(err, apperror.ErrRead))
	assert.Equal(t, 503, apperror.GetAppError(err).Code)
}

func TestReportService_Dashboard(t *testing.T) {
	svc, txRepo, orderRepo, _ := newReportFixture()

	addTx(txRepo, jst(15, 11), 1500)
	addTx(txRepo, jst(15, 12), 800)
	orderRepo.orders = []entity.Order{
		{ID: "o1", TotalPrice: 2000, CreatedAt: jst(15, 10)},
		{ID: "o2", TotalPrice: 1000, CreatedAt: jst(11, 10)}, // Monday
		{ID: "o3", TotalPrice: 5000, CreatedAt: jst(9, 10)},  // previous Saturday
	}

	d := svc.Dashboard(context.Background())

	assert.Equal(t, enum.ReportStatusOK, d.Status)
	assert.Equal(t, enum.ReportSourceLive, d.Source)

	assert.Equal(t, int64(1), d.OrdersToday.Count)
	assert.Equal(t, int64(2000), d.OrdersToday.Buckets[10].Sum)

	assert.Equal(t, int64(2), d.OrdersThisWeek.Count)
	assert.Equal(t, int64(3000), d.OrdersThisWeek.Sum)
	assert.Equal(t, int64(1000), d.OrdersThisWeek.Buckets[time.Monday].Sum)
	assert.Equal(t, int64(2000), d.OrdersThisWeek.Buckets[time.Friday].Sum)

	assert.Equal(t, int64(2300), d.PosSalesToday.Sum)
	require.Len(t, d.RecentTransactions, 2)
	assert.Equal(t, int64(800), d.RecentTransactions[0].TotalAmount)
}

func TestReportService_SharedReadOutlivesFirstCaller(t *testing.T) {
	svc, txRepo, orderRepo, _ := newReportFixture()
	addTx(txRepo, jst(15, 11), 1500)
	orderRepo.entered = make(chan struct{}, 1)
	orderRepo.release = make(chan struct{})

	first, cancelFirst := context.WithCancel(context.Background())
	firstDone := make(chan *Dashboard, 1)
	go func() { firstDone <- svc.Dashboard(first) }()
	<-orderRepo.entered

	secondDone := make(chan *Dashboard, 1)
	go func() { secondDone <- svc.Dashboard(context.Background()) }()
	time.Sleep(20 * time.Millisecond)

	cancelFirst()
	<-firstDone
	close(orderRepo.release)

	var second *Dashboard
	select {
	case second = <-secondDone:
	case <-time.After(5 * time.Second):
		t.Fatal("second caller never returned")
	}
	assert.Equal(t, enum.ReportStatusOK, second.Status)
	assert.Equal(t, enum.ReportSourceLive, second.Source)
	assert.Equal(t, int64(1500), second.PosSalesToday.Sum)
}

func TestReportService_SalesReportCallerCancelled(t *testing.T) {
	svc, _, orderRepo, _ := newReportFixture()
	orderRepo.entered = make(chan struct{}, 1)
	orderRepo.release = make(chan struct{})
	defer close(orderRepo.release)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := svc.SalesReport(ctx, aggregate.PeriodDay, jst(15, 0))
		done <- err
	}()
	<-orderRepo.entered
	cancel()

	err := <-done
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReportService_DashboardEmpty(t *testing.T) {
	svc, _, _, _ := newReportFixture()

	d := svc.Dashboard(context.Background())
	assert.Equal(t, enum.ReportStatusEmpty, d.Status)
	assert.Equal(t, enum.ReportSourceLive, d.Source)
	assert.NotNil(t, d.RecentTransactions)
}

func TestReportService_DashboardDegrades(t *testing.T) {
	svc, _, orderRepo, _ := newReportFixture()
	orderRepo.err = errors.New("connection refused")

	d := svc.Dashboard(context.Background())

	assert.Equal(t, enum.ReportStatusDegraded, d.Status)
	assert.Equal(t, enum.ReportSourceSynthetic, d.Source)
	assert.Len(t, d.OrdersToday.Buckets, 24)
	assert.Len(t, d.OrdersThisWeek.Buckets, 7)
	assert.False(t, d.OrdersThisWeek.IsEmpty())
	assert.Empty(t, d.RecentTransactions)

	again := svc.Dashboard(context.Background())
	assert.Equal(t, d.OrdersThisWeek, again.OrdersThisWeek, "placeholder figures are stable")
}

func TestReportService_MonthlyChartSavesSnapshot(t *testing.T) {
	svc, txRepo, orderRepo, monthly := newReportFixture()
	addTx(txRepo, jst(15, 11), 1500)
	orderRepo.orders = []entity.Order{
		{ID: "o1", TotalPrice: 2000, CreatedAt: time.Date(2024, time.January, 1, 0, 0, 0, 0, tokyo())},
		{ID: "o2", TotalPrice: 7000, CreatedAt: time.Date(2023, time.December, 31, 23, 59, 0, 0, tokyo())},
	}

	chart := svc.MonthlyChart(context.Background(), 2024)

	assert.Equal(t, enum.ReportStatusOK, chart.Status)
	assert.Equal(t, enum.ReportSourceLive, chart.Source)
	require.Len(t, chart.Months, 12)
	assert.Equal(t, entity.MonthlyAggregate{Month: 0, Year: 2024, TotalSales: 1, TotalRevenue: 2000}, chart.Months[0])
	assert.Equal(t, entity.MonthlyAggregate{Month: 2, Year: 2024, TotalSales: 1, TotalRevenue: 1500}, chart.Months[2])

	assert.Equal(t, 1, monthly.saves)
	saved, err := monthly.GetByYear(context.Background(), 2024)
	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, chart.Months, saved.Months)
}

func TestReportService_MonthlyChartServesCachedSnapshot(t *testing.T) {
	svc, txRepo, _, monthly := newReportFixture()
	computed := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	months := make([]entity.MonthlyAggregate, 12)
	for i := range months {
		months[i] = entity.MonthlyAggregate{Month: i, Year: 2024, TotalSales: int64(i), TotalRevenue: int64(i * 100)}
	}
	require.NoError(t, monthly.Save(context.Background(), &entity.MonthlyReport{Year: 2024, Months: months, ComputedAt: computed}))

	txRepo.err = errors.New("no reachable servers")
	chart := svc.MonthlyChart(context.Background(), 2024)

	assert.Equal(t, enum.ReportStatusDegraded, chart.Status)
	assert.Equal(t, enum.ReportSourceCached, chart.Source)
	assert.Equal(t, computed, chart.ComputedAt)
	assert.Equal(t, months, chart.Months)
}

func TestReportService_MonthlyChartFallsBackToSynthetic(t *testing.T) {
	svc, _, orderRepo, monthly := newReportFixture()
	orderRepo.err = errors.New("no reachable servers")

	chart := svc.MonthlyChart(context.Background(), 2023)

	assert.Equal(t, enum.ReportStatusDegraded, chart.Status)
	assert.Equal(t, enum.ReportSourceSynthetic, chart.Source)
	require.Len(t, chart.Months, 12)
	for i, m := range chart.Months {
		assert.Equal(t, i, m.Month)
		assert.Equal(t, 2023, m.Year)
	}
	assert.Equal(t, 0, monthly.saves, "placeholder figures are never saved")
}

func TestReportService_BreakerOpensAfterRepeatedFailures(t *testing.T) {
	svc, _, orderRepo, _ := newReportFixture()
	orderRepo.err = errors.New("down")

	for i := 0; i < 5; i++ {
		_, err := svc.SalesReport(context.Background(), aggregate.PeriodDay, jst(15, 0))
		require.Error(t, err)
	}

	orderRepo.err = nil
	_, err := svc.SalesReport(context.Background(), aggregate.PeriodDay, jst(15, 0))
	require.Error(t, err, "reads are refused while the breaker is open")
	assert.True(t, errors.Is(err, apperror.ErrRead))
}

func TestWriteSalesXLSX(t *testing.T) {
	svc, txRepo, _, _ := newReportFixture()
	addTx(txRepo, jst(15, 9), 1200)

	report, err := svc.SalesReport(context.Background(), aggregate.PeriodDay, jst(15, 0))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteSalesXLSX(&buf, report))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	period, err := f.GetCellValue(salesSheet, "B1")
	require.NoError(t, err)
	assert.Equal(t, "day", period)

	header, err := f.GetCellValue(salesSheet, "A8")
	require.NoError(t, err)
	assert.Equal(t, "Bucket", header)

	// row 9 is 00:00
	label, err := f.GetCellValue(salesSheet, "A18")
	require.NoError(t, err)
	assert.Equal(t, "09:00", label)

	count, err := f.GetCellValue(salesSheet, "B18")
	require.NoError(t, err)
	assert.Equal(t, "1", count)
}
