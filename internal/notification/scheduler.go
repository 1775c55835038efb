package notification

import (
	"context"
	"log"
	"time"

	"go.uber.org/fx"
)

// NoticeScheduler handles periodic checking and sending of due notices.
type NoticeScheduler struct {
	service *NoticeService
}

// NewNoticeScheduler creates a new scheduler for notices.
func NewNoticeScheduler(service *NoticeService) *NoticeScheduler {
	return &NoticeScheduler{service: service}
}

// StartScheduler starts the background goroutine to periodically check and send due notices.
func (s *NoticeScheduler) StartScheduler(lc fx.Lifecycle) {
	interval := 1 // minute
	ticker := time.NewTicker(time.Duration(interval) * time.Minute)
	done := make(chan bool)

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Printf("Starting notice scheduler (checking every %d minute(s))...", interval)
			go func() {
				schedulerCtx := context.Background()
				for {
					select {
					case <-ticker.C:
						s.service.SendDueNotices(schedulerCtx)
					case <-done:
						return
					}
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Println("Stopping notice scheduler...")
			ticker.Stop()
			done <- true
			return nil
		},
	})
}
