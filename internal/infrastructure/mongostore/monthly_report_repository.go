package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/injapanfood/pos-api/internal/domain/entity"
	domainRepo "github.com/injapanfood/pos-api/internal/domain/repository"
	"github.com/injapanfood/pos-api/internal/infrastructure/database"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type monthlyReportRepository struct {
	collection *mongo.Collection
}

// NewMonthlyReportRepository creates a repository over the monthly_reports collection
func NewMonthlyReportRepository(db *mongo.Database) domainRepo.MonthlyReportRepository {
	return &monthlyReportRepository{collection: db.Collection(database.CollectionMonthlyReports)}
}

func (r *monthlyReportRepository) Save(ctx context.Context, report *entity.MonthlyReport) error {
	doc := monthlyReportDoc{
		Year:       report.Year,
		Months:     report.Months,
		ComputedAt: report.ComputedAt.UTC(),
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"year": report.Year}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("failed to save monthly report: %w", err)
	}
	return nil
}

func (r *monthlyReportRepository) GetByYear(ctx context.Context, year int) (*entity.MonthlyReport, error) {
	var doc monthlyReportDoc
	err := r.collection.FindOne(ctx, bson.M{"year": year}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get monthly report: %w", err)
	}

	return &entity.MonthlyReport{
		Year:       doc.Year,
		Months:     doc.Months,
		ComputedAt: doc.ComputedAt,
	}, nil
}
