package request

// SalesReportRequest selects the period of a sales report.
// Date is YYYY-MM-DD in the shop's time zone and defaults to today.
type SalesReportRequest struct {
	Period string `form:"period" binding:"omitempty,max=10"`
	Date   string `form:"date" binding:"omitempty,datetime=2006-01-02"`
}

// MonthlyReportRequest selects the year of the monthly chart; zero means the current year
type MonthlyReportRequest struct {
	Year int `form:"year" binding:"omitempty,min=2000,max=2100"`
}
