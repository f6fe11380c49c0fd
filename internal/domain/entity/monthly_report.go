package entity

import "time"

// MonthlyAggregate holds one month of revenue figures.
// Month is zero-based (0 = January).
type MonthlyAggregate struct {
	Month        int   `json:"month" bson:"month"`
	Year         int   `json:"year" bson:"year"`
	TotalSales   int64 `json:"total_sales" bson:"total_sales"`
	TotalRevenue int64 `json:"total_revenue" bson:"total_revenue"`
}

// MonthlyReport is the last successfully computed monthly chart for a year.
// It backs the chart when the live computation cannot run.
type MonthlyReport struct {
	Year       int                `gorm:"primaryKey;autoIncrement:false" json:"year"`
	Months     []MonthlyAggregate `gorm:"serializer:json;type:text" json:"months"`
	ComputedAt time.Time          `json:"computed_at"`
}

// TableName returns the table name for the MonthlyReport model
func (MonthlyReport) TableName() string {
	return "monthly_reports"
}
