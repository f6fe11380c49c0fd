package enum

// ReportStatus tells a caller whether a report holds data, holds none, or could not be computed
type ReportStatus string

const (
	ReportStatusOK       ReportStatus = "ok"
	ReportStatusEmpty    ReportStatus = "empty"
	ReportStatusDegraded ReportStatus = "degraded"
)

// ReportSource names where the figures of a report came from
type ReportSource string

const (
	ReportSourceLive      ReportSource = "live"
	ReportSourceCached    ReportSource = "cached"
	ReportSourceSynthetic ReportSource = "synthetic"
)
