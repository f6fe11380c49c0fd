package repository

import (
	"context"
	"errors"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type monthlyReportRepository struct {
	db *gorm.DB
}

// NewMonthlyReportRepository creates a new monthly report repository
func NewMonthlyReportRepository(db *gorm.DB) domainRepo.MonthlyReportRepository {
	return &monthlyReportRepository{db: db}
}

func (r *monthlyReportRepository) Save(ctx context.Context, report *entity.MonthlyReport) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "year"}},
			DoUpdates: clause.AssignmentColumns([]string{"months", "computed_at"}),
		}).
		Create(report).Error
}

func (r *monthlyReportRepository) GetByYear(ctx context.Context, year int) (*entity.MonthlyReport, error) {
	var report entity.MonthlyReport
	err := r.db.WithContext(ctx).First(&report, "year = ?", year).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &report, err
}
