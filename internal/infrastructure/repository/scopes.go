package repository

import (
	"time"

	"github.com/injapanfood/pos-api/pkg/pagination"
	"gorm.io/gorm"
)

// CreatedBetween limits a query to start <= created_at < end. Nil bounds are open.
func CreatedBetween(start, end *time.Time) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if start != nil {
			db = db.Where("created_at >= ?", start.UTC())
		}
		if end != nil {
			db = db.Where("created_at < ?", end.UTC())
		}
		return db
	}
}

// Paginate applies offset pagination in newest-first order
func Paginate(params *pagination.PaginationParams) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		params.Validate()
		return db.Offset(params.Offset()).Limit(params.PerPage).Order("created_at DESC, id DESC")
	}
}

// Keyset applies cursor pagination over (created_at, id). Reading "next" walks
// towards older rows; reading "prev" walks towards newer rows in ascending order.
// One extra row is fetched so the caller can tell whether more remain.
func Keyset(params *pagination.CursorParams, cursor *pagination.Cursor) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if cursor != nil {
			if params.Direction == pagination.CursorDirectionPrev {
				db = db.Where("(created_at, id) > (?, ?)", cursor.CreatedAt.UTC(), cursor.ID).
					Order("created_at ASC, id ASC")
			} else {
				db = db.Where("(created_at, id) < (?, ?)", cursor.CreatedAt.UTC(), cursor.ID).
					Order("created_at DESC, id DESC")
			}
		} else {
			db = db.Order("created_at DESC, id DESC")
		}
		return db.Limit(params.Limit + 1)
	}
}
