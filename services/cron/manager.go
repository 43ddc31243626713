package cron

import (
	"log"

	"github.com/robfig/cron/v3"
	"github.com/sahilchouksey/university-catalog/database"
	"github.com/sahilchouksey/university-catalog/services"
)

// CronManager manages all scheduled cron jobs
type CronManager struct {
	cron   *cron.Cron
	store  database.Storage
	assets services.AssetStore
}

// NewCronManager creates a new cron manager
func NewCronManager(store database.Storage, assets services.AssetStore) *CronManager {
	// Create cron with seconds precision
	c := cron.New(cron.WithSeconds())

	return &CronManager{
		cron:   c,
		store:  store,
		assets: assets,
	}
}

// Start starts all cron jobs
func (m *CronManager) Start() error {
	log.Println("Starting cron jobs...")

	if err := m.registerJobs(); err != nil {
		return err
	}

	m.cron.Start()

	log.Println("Cron jobs started successfully")
	return nil
}

// Stop stops all cron jobs
func (m *CronManager) Stop() {
	log.Println("Stopping cron jobs...")
	ctx := m.cron.Stop()
	<-ctx.Done()
	log.Println("Cron jobs stopped")
}

// registerJobs registers all cron jobs with their schedules
func (m *CronManager) registerJobs() error {
	// Every 30 minutes: retry reclaiming assets whose post-commit deletion
	// failed.
	_, err := m.cron.AddFunc("0 */30 * * * *", func() {
		log.Println("[CRON] Starting job: sweep_orphan_assets")
		m.SweepOrphanAssets()
	})
	return err
}
