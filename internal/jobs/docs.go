// Package jobs provides scheduled background tasks for the checkout service.
//
// Jobs are built on github.com/robfig/cron/v3 with seconds precision.
//
// # Available Jobs
//
// 1. ProcessedOrdersReportJob - summarises the most recently saved orders
// (count, charged sum, orders per country) and logs the report
//
// # Usage
//
//	jobManager, err := jobs.NewJobManager(getProcessedOrdersHandler, "0 * * * * *", 100, logger)
//	if err != nil {
//		log.Fatal("Failed to create jobs:", err)
//	}
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed run is logged and the next tick runs as usual. An invalid schedule
// is reported by StartAll.
package jobs
