// Package services implements the business logic behind the HTTP handlers.
// Handlers parse and validate requests; services load data, run the
// dataprocessing pipeline and shape the response records.
//
// # Available Services
//
//	- AnalyticsService: metrics, scatter, pivot, recommendations, apply and export
//	- AuthService: demo login against the configured users
//	- AssistantService: FAQ lookup for the research assistant
//	- HealthService: liveness, readiness and version information
//
// # Common Service Pattern
//
//	type ServiceName struct {
//	    data   DataSource
//	    logger *slog.Logger
//	}
//
//	func NewServiceName(data DataSource, logger *slog.Logger) *ServiceName {
//	    return &ServiceName{
//	        data:   data,
//	        logger: logger.With(slog.String("component", "service_name")),
//	    }
//	}
//
// # Error Handling
//
// The pipeline itself never fails: unreadable data degrades to empty tables
// and the all-zero metrics record. Services return the sentinel errors in
// errors.go for caller mistakes (unknown source, bad credentials) and
// context errors when the request was cancelled.
//
// # Testing
//
// Dependencies are mocked with testify:
//
//	data := new(MockDataSource)
//	data.On("Load", mock.Anything).Return(medium, small)
//	svc := NewAnalyticsService(data, rules, nil, logger)
package services
