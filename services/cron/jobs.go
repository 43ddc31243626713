package cron

import (
	"context"
	"log"
	"time"
)

const (
	sweepBatchSize   = 100
	maxSweepAttempts = 10
	sweepTimeout     = 2 * time.Minute
)

// SweepOrphanAssets retries deletion of objects that outlived their
// documents. Rows are removed once the store accepts the delete; rows that
// keep failing are dropped after maxSweepAttempts so a permanently broken
// URL cannot wedge the queue.
func (m *CronManager) SweepOrphanAssets() {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	orphans, err := m.store.ListOrphanAssets(sweepBatchSize)
	if err != nil {
		log.Printf("[CRON] sweep_orphan_assets: failed to list orphans: %v", err)
		return
	}
	if len(orphans) == 0 {
		return
	}

	reclaimed, failed := 0, 0
	for _, orphan := range orphans {
		if err := m.assets.Delete(ctx, orphan.URL); err != nil {
			failed++
			if orphan.Attempts+1 >= maxSweepAttempts {
				log.Printf("[CRON] sweep_orphan_assets: giving up on %s after %d attempts: %v",
					orphan.URL, orphan.Attempts+1, err)
				if err := m.store.RemoveOrphanAsset(orphan.ID); err != nil {
					log.Printf("[CRON] sweep_orphan_assets: failed to drop %s: %v", orphan.URL, err)
				}
				continue
			}
			if err := m.store.BumpOrphanAttempts(orphan.ID); err != nil {
				log.Printf("[CRON] sweep_orphan_assets: failed to record attempt for %s: %v", orphan.URL, err)
			}
			continue
		}

		reclaimed++
		if err := m.store.RemoveOrphanAsset(orphan.ID); err != nil {
			log.Printf("[CRON] sweep_orphan_assets: reclaimed %s but failed to drop row: %v", orphan.URL, err)
		}
	}

	log.Printf("[CRON] sweep_orphan_assets: reclaimed %d, failed %d of %d", reclaimed, failed, len(orphans))
}
