package handler

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/application/service"
	"github.com/injapanfood/pos-api/internal/domain/event"
	"github.com/injapanfood/pos-api/internal/infrastructure/database"
	"github.com/injapanfood/pos-api/internal/infrastructure/feed"
	"github.com/injapanfood/pos-api/internal/infrastructure/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newReportService(t *testing.T) *service.ReportService {
	t.Helper()

	db, err := database.NewSQLiteDB(":memory:", logger.Silent)
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db))
	t.Cleanup(func() { _ = database.CloseSQL(db) })

	return service.NewReportService(
		repository.NewTransactionRepository(db),
		repository.NewOrderRepository(db),
		repository.NewMonthlyReportRepository(db),
		time.UTC,
	)
}

// nextEvent reads lines until a complete server-sent event and returns its name
func nextEvent(t *testing.T, r *bufio.Reader) (string, string) {
	t.Helper()

	var name, data string
	for {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimRight(line, "\n")
		switch {
		case strings.HasPrefix(line, "event:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = strings.TrimSpace(strings.TrimPrefix(line, "data:"))
		case line == "" && name != "":
			return name, data
		}
	}
}

func TestDashboardHandler_Live(t *testing.T) {
	liveFeed := feed.NewMemoryFeed()
	defer liveFeed.Close()

	h := NewDashboardHandler(newReportService(t), liveFeed)
	r := gin.New()
	r.GET("/live", h.Live)

	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/live", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Header.Get("Content-Type"), "text/event-stream"), resp.Header.Get("Content-Type"))

	body := bufio.NewReader(resp.Body)
	name, data := nextEvent(t, body)
	assert.Equal(t, "dashboard", name)
	assert.Contains(t, data, `"status":"empty"`)

	require.NoError(t, liveFeed.Publish(context.Background(), event.TransactionCompleted{
		TransactionID: "tx-1",
		TotalAmount:   1200,
		ItemCount:     1,
		CashierID:     "cashier-1",
		CreatedAt:     time.Now(),
	}))

	name, data = nextEvent(t, body)
	assert.Equal(t, "transaction", name)
	assert.Contains(t, data, `"transaction_id":"tx-1"`)

	name, _ = nextEvent(t, body)
	assert.Equal(t, "dashboard", name)

	cancel()
	require.Eventually(t, func() bool {
		return liveFeed.Subscribers() == 0
	}, 2*time.Second, 10*time.Millisecond, "disconnecting unsubscribes")
}

func TestDashboardHandler_LiveHeartbeat(t *testing.T) {
	liveFeed := feed.NewMemoryFeed()
	defer liveFeed.Close()

	h := NewDashboardHandler(newReportService(t), liveFeed)
	h.heartbeat = 20 * time.Millisecond
	r := gin.New()
	r.GET("/live", h.Live)

	srv := httptest.NewServer(r)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/live", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body := bufio.NewReader(resp.Body)
	name, _ := nextEvent(t, body)
	require.Equal(t, "dashboard", name)

	name, _ = nextEvent(t, body)
	assert.Equal(t, "ping", name)
}

func TestDashboardHandler_LiveFeedClosed(t *testing.T) {
	liveFeed := feed.NewMemoryFeed()
	require.NoError(t, liveFeed.Close())

	h := NewDashboardHandler(newReportService(t), liveFeed)
	r := gin.New()
	r.GET("/live", h.Live)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/live", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestDashboardHandler_Get(t *testing.T) {
	h := NewDashboardHandler(newReportService(t), feed.NewMemoryFeed())
	r := gin.New()
	r.GET("/dashboard", h.Get)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/dashboard", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"recent_transactions":[]`)
}
