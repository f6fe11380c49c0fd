package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/injapanfood/pos-api/internal/domain/entity"
	"github.com/injapanfood/pos-api/internal/presentation/http/dto/response"
	"github.com/injapanfood/pos-api/internal/presentation/http/middleware"
	"github.com/injapanfood/pos-api/pkg/apperror"
	"github.com/injapanfood/pos-api/pkg/pagination"
)

const dateLayout = "2006-01-02"

// currentCashier returns the authenticated cashier, writing a 401 when there is none
func currentCashier(c *gin.Context) (entity.Cashier, bool) {
	cashier, ok := middleware.GetCashier(c)
	if !ok || cashier.ID == "" {
		response.Unauthorized(c, "User not authenticated")
		return entity.Cashier{}, false
	}
	return cashier, true
}

// bindError turns a binding failure into field errors
func bindError(c *gin.Context, err error) {
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		response.BadRequest(c, "Invalid number: "+numErr.Num)
		return
	}
	response.ValidationError(c, []apperror.FieldError{{Field: "request", Message: err.Error()}})
}

// dateRange reads start_date and end_date (YYYY-MM-DD, both inclusive) in loc.
// The returned end is exclusive.
func dateRange(c *gin.Context, loc *time.Location) (*time.Time, *time.Time, error) {
	var start, end *time.Time

	if s := c.Query("start_date"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			return nil, nil, apperror.NewBadRequestError("Invalid start_date, expected YYYY-MM-DD")
		}
		start = &t
	}

	if s := c.Query("end_date"); s != "" {
		t, err := time.ParseInLocation(dateLayout, s, loc)
		if err != nil {
			return nil, nil, apperror.NewBadRequestError("Invalid end_date, expected YYYY-MM-DD")
		}
		t = t.AddDate(0, 0, 1)
		end = &t
	}

	if start != nil && end != nil && !start.Before(*end) {
		return nil, nil, apperror.NewBadRequestError("start_date must not be after end_date")
	}

	return start, end, nil
}

// wantsCursor reports whether the client asked for keyset pagination
func wantsCursor(c *gin.Context) bool {
	return c.Query("cursor") != "" || c.Query("limit") != ""
}

func pageParams(c *gin.Context) *pagination.PaginationParams {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	perPage, _ := strconv.Atoi(c.DefaultQuery("per_page", "15"))
	params := &pagination.PaginationParams{Page: page, PerPage: perPage}
	params.Validate()
	return params
}

func cursorParams(c *gin.Context) *pagination.CursorParams {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "15"))
	return &pagination.CursorParams{
		Cursor:    c.Query("cursor"),
		Direction: pagination.CursorDirection(c.DefaultQuery("direction", "next")),
		Limit:     limit,
	}
}
