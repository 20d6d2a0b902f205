package jobs

import (
	"context"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"checkout/internal/core/application/usecases/queries"

	"github.com/robfig/cron/v3"
	"github.com/shopspring/decimal"
)

// DefaultReportSchedule runs the report at the start of every minute.
const DefaultReportSchedule = "0 * * * * *"

const reportTimeout = 30 * time.Second

// ProcessedOrdersLister reads saved orders, newest first.
type ProcessedOrdersLister interface {
	Handle(ctx context.Context, query queries.GetProcessedOrdersQuery) ([]queries.GetProcessedOrdersQueryResponse, error)
}

// ProcessedOrdersReport summarises one window of saved orders.
type ProcessedOrdersReport struct {
	Orders    int
	Total     decimal.Decimal
	ByCountry map[string]int
	Oldest    time.Time
	Newest    time.Time
}

// Countries returns the report's countries in alphabetical order.
func (r ProcessedOrdersReport) Countries() []string {
	return slices.Sorted(maps.Keys(r.ByCountry))
}

// ProcessedOrdersReportJob periodically logs a ProcessedOrdersReport.
type ProcessedOrdersReportJob struct {
	lister   ProcessedOrdersLister
	query    queries.GetProcessedOrdersQuery
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger

	mu   sync.Mutex
	last ProcessedOrdersReport
}

// NewProcessedOrdersReportJob reports on the newest window orders. A window of
// 0 uses the query's default limit.
func NewProcessedOrdersReportJob(
	lister ProcessedOrdersLister,
	schedule string,
	window int,
	logger *slog.Logger,
) (*ProcessedOrdersReportJob, error) {
	query, err := queries.NewGetProcessedOrdersQuery(window)
	if err != nil {
		return nil, err
	}
	if schedule == "" {
		schedule = DefaultReportSchedule
	}

	return &ProcessedOrdersReportJob{
		lister:   lister,
		query:    query,
		schedule: schedule,
		cron:     cron.New(cron.WithSeconds()),
		logger:   logger.With("component", "processed_orders_report_job"),
	}, nil
}

// Start schedules the report.
func (j *ProcessedOrdersReportJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()

		if _, err := j.Run(ctx); err != nil {
			j.logger.ErrorContext(ctx, "Processed orders report failed", "error", err)
		}
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Processed orders report job started", "schedule", j.schedule)
	return nil
}

// Stop stops scheduling and waits for a running report to finish.
func (j *ProcessedOrdersReportJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Processed orders report job stopped")
}

// Run builds and logs one report.
func (j *ProcessedOrdersReportJob) Run(ctx context.Context) (ProcessedOrdersReport, error) {
	records, err := j.lister.Handle(ctx, j.query)
	if err != nil {
		return ProcessedOrdersReport{}, err
	}

	report := ProcessedOrdersReport{Total: decimal.Zero, ByCountry: map[string]int{}}
	for _, r := range records {
		report.Orders++
		report.Total = report.Total.Add(r.Total)
		if r.Country != "" {
			report.ByCountry[r.Country]++
		}
		if r.SavedAt.IsZero() {
			continue
		}
		if report.Oldest.IsZero() || r.SavedAt.Before(report.Oldest) {
			report.Oldest = r.SavedAt
		}
		if r.SavedAt.After(report.Newest) {
			report.Newest = r.SavedAt
		}
	}

	j.mu.Lock()
	j.last = report
	j.mu.Unlock()

	j.logger.InfoContext(ctx, "Processed orders report",
		"orders", report.Orders,
		"total", report.Total.StringFixed(2),
		"countries", report.Countries(),
	)
	return report, nil
}

// LastReport returns the most recent successful report.
func (j *ProcessedOrdersReportJob) LastReport() ProcessedOrdersReport {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.last
}
