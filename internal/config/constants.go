package config

// Application constants
const (
	AppName = "Optimize Campaign Analytics"

	// Demo data files, relative to the data directory
	MediumDataFile = "demo_data_medium.csv"
	SmallDataFile  = "demo_data_small.csv"

	// Date column of each demo file
	MediumDateColumn = "order_date"
	SmallDateColumn  = "OrderDate"

	// Data sources accepted by the metrics endpoint
	SourceMedium = "medium"
	SourceSmall  = "small"

	// Request defaults
	DefaultWindowDays          = 30
	DefaultRecommendationLimit = 10

	// Server
	DefaultPort      = 5001
	DefaultRateLimit = 100 // requests per second
	DefaultBurstSize = 50

	// Log Settings
	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	// Export
	PresentationFileName = "presentation_data.xlsx"
)
