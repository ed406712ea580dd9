package constants

import "time"

const (
	// Snapshot freshness
	CacheMaxAge = 24 * time.Hour

	// Remote paging
	DefaultPageSize  = 50
	FullFetchPerPage = 100
	PageInterval     = time.Second

	// Remote retry budget for transient failures
	MaxFetchRetries = 3

	// Report shape
	DistributionBucketWidth = 10
	TopRideCount            = 5
	MonthlyReportMonths     = 12
)
