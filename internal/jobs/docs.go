// Package jobs provides scheduled background tasks for the order service.
//
// This package implements cron-based jobs using github.com/robfig/cron/v3
// to handle periodic operations required for reliable event delivery.
//
// # Available Jobs
//
// 1. OutboxDispatcherJob - Runs every second to publish pending outbox
// messages whose immediate delivery to the broker failed.
//
// # Usage
//
// Jobs are managed through JobManager which provides a unified interface:
//
//	jobManager := jobs.NewJobManager(dispatchOutboxHandler, batchSize, logger)
//
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//
//	defer jobManager.StopAll()
//
// # Scheduling
//
// The dispatcher uses the cron expression "* * * * * *", running every
// second. Together with the transactional outbox this gives at-least-once
// delivery: a message stays in the outbox until one publish succeeds.
package jobs
