package middleware

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
	"github.com/rs/zerolog/log"
)

const (
	// IdempotencyKeyHeader is the HTTP header for idempotency keys
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayedHeader marks a response served from a stored record
	IdempotencyReplayedHeader = "X-Idempotency-Replayed"
	// IdempotencyKeyTTL is how long keys are valid
	IdempotencyKeyTTL = 24 * time.Hour
)

// IdempotencyConfig holds configuration for the idempotency middleware
type IdempotencyConfig struct {
	Repo repository.IdempotencyRepository
	TTL  time.Duration
}

// responseWriter wraps gin.ResponseWriter to capture the response body
type responseWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w responseWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

// Idempotency makes a POST with an Idempotency-Key header run at most once per cashier.
// A repeat of a completed request replays the stored response; a repeat while the first
// is still running gets 409. Failed requests release the key so they can be retried.
// Requests without the header are not deduplicated.
func Idempotency(config IdempotencyConfig) gin.HandlerFunc {
	ttl := config.TTL
	if ttl <= 0 {
		ttl = IdempotencyKeyTTL
	}

	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}

		key := c.GetHeader(IdempotencyKeyHeader)
		if key == "" {
			c.Next()
			return
		}

		cashier, ok := GetCashier(c)
		if !ok {
			c.Next()
			return
		}

		body, err := io.ReadAll(c.Request.Body)
		if err != nil {
			response.BadRequest(c, "Failed to read request body")
			c.Abort()
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		endpoint := c.Request.Method + " " + c.Request.URL.Path
		hash := requestHash(endpoint, body)
		ctx := c.Request.Context()

		reserved, err := config.Repo.Reserve(ctx, key, cashier.ID, ttl)
		if err != nil {
			// the store is down: run the request undeduplicated
			log.Warn().Err(err).Str("key", key).Msg("idempotency reserve failed")
			c.Next()
			return
		}

		if !reserved {
			existing, err := config.Repo.Get(ctx, key, cashier.ID)
			if err != nil || existing == nil {
				response.Conflict(c, "A request with this Idempotency-Key is already in progress")
				c.Abort()
				return
			}
			if existing.ResponseCode == 0 {
				response.Conflict(c, "A request with this Idempotency-Key is already in progress")
				c.Abort()
				return
			}
			if existing.RequestHash != hash {
				response.ErrorWithCode(c, http.StatusUnprocessableEntity, "Idempotency-Key was used for a different request")
				c.Abort()
				return
			}

			c.Header(IdempotencyReplayedHeader, "true")
			c.Data(existing.ResponseCode, "application/json; charset=utf-8", []byte(existing.ResponseBody))
			c.Abort()
			return
		}

		// Capture the response
		blw := &responseWriter{body: &bytes.Buffer{}, ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		// the request context may already be cancelled
		storeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()

		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			if err := config.Repo.Release(storeCtx, key, cashier.ID); err != nil {
				log.Warn().Err(err).Str("key", key).Msg("idempotency release failed")
			}
			return
		}

		now := time.Now()
		record := &entity.IdempotencyRecord{
			Key:          key,
			CashierID:    cashier.ID,
			Endpoint:     endpoint,
			RequestHash:  hash,
			ResponseCode: status,
			ResponseBody: blw.body.String(),
			CreatedAt:    now,
			ExpiresAt:    now.Add(ttl),
		}
		if err := config.Repo.Save(storeCtx, record); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("idempotency save failed")
		}
	}
}

func requestHash(endpoint string, body []byte) string {
	h := sha256.New()
	h.Write([]byte(endpoint))
	h.Write([]byte{0})
	h.Write(body)
	return hex.EncodeToString(h.Sum(nil))
}
