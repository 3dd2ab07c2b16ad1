package scheduler

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/synergysphere/synergysphere/internal/metrics"
)

const RetentionJobName = "notification-retention"

type Purger interface {
	PurgeRead(ctx context.Context, retention time.Duration) (int64, error)
}

// RetentionJob deletes read notifications older than retention every
// interval. Unread notifications are never swept.
func RetentionJob(purger Purger, retention, interval time.Duration, m *metrics.Metrics, log zerolog.Logger) Job {
	return Job{
		Name:     RetentionJobName,
		Interval: interval,
		Run: func(ctx context.Context) error {
			removed, err := purger.PurgeRead(ctx, retention)
			if err != nil {
				return err
			}
			if m != nil {
				m.NotificationsSwept.Add(float64(removed))
			}
			if removed > 0 {
				log.Info().Int64("removed", removed).Msg("swept read notifications")
			}
			return nil
		},
	}
}
