// Package scheduler runs periodic library backups on a cron schedule.
package scheduler

import (
	"fmt"
	"log"
	"sync"

	"github.com/robfig/cron/v3"

	"github.com/pagemark/bookpace/internal/exporters"
)

// BackupScheduler triggers the JSON backup exporter on a cron schedule.
type BackupScheduler struct {
	exporter *exporters.JSONBackupExporter
	schedule string

	cron      *cron.Cron
	entryID   cron.EntryID
	mu        sync.Mutex
	isRunning bool
}

func NewBackupScheduler(exporter *exporters.JSONBackupExporter, schedule string) *BackupScheduler {
	return &BackupScheduler{
		exporter: exporter,
		schedule: schedule,
		cron:     cron.New(cron.WithParser(cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow))),
	}
}

// Start begins the scheduler.
func (s *BackupScheduler) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isRunning {
		return nil
	}

	entryID, err := s.cron.AddFunc(s.schedule, s.runBackup)
	if err != nil {
		return fmt.Errorf("failed to schedule backup job '%s': %w", s.schedule, err)
	}
	s.entryID = entryID

	s.cron.Start()
	s.isRunning = true
	log.Printf("Backup scheduler started with schedule %q", s.schedule)
	return nil
}

// Stop halts the scheduler, waiting for a running backup to finish.
func (s *BackupScheduler) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isRunning {
		return
	}

	ctx := s.cron.Stop()
	<-ctx.Done()
	s.isRunning = false
	log.Printf("Backup scheduler stopped")
}

func (s *BackupScheduler) runBackup() {
	path, err := s.exporter.Export()
	if err != nil {
		log.Printf("Scheduled backup failed: %v", err)
		return
	}
	log.Printf("Scheduled backup written to %s", path)
}
