package repository

import (
	"context"

	"github.com/injapanfood/pos-api/internal/domain/entity"
)

// MonthlyReportRepository keeps the last computed monthly chart per year
type MonthlyReportRepository interface {
	// Save replaces the snapshot for report.Year
	Save(ctx context.Context, report *entity.MonthlyReport) error
	// GetByYear returns nil, nil when no snapshot exists
	GetByYear(ctx context.Context, year int) (*entity.MonthlyReport, error)
}
