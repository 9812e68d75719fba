// Package jobs provides scheduled background tasks for stall fulfillment.
//
// Jobs are built on github.com/robfig/cron/v3 with a seconds field.
//
// # Available Jobs
//
// OrderExpiryJob cancels orders that nobody accepted within the AWAITING TTL
// (default 30 minutes). It runs every minute by default and takes a Redis lock
// before each pass so only one replica expires orders at a time.
//
// # Usage
//
//	expiry := jobs.NewOrderExpiryJob(handler, cfg, lock, jobMetrics, transitionMetrics, log)
//	jobManager := jobs.NewJobManager(expiry)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// Each order is cancelled in its own transaction. An order accepted between the scan
// and the cancel is skipped silently; other failures are joined and logged once per
// run, and the run is counted as failed.
package jobs
