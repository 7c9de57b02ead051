package store

import (
	"time"

	"gitea.jw6.us/james/oxstream/internal/metrics"
)

func observeDB(operation string) func() {
	start := time.Now()
	return func() {
		metrics.ObserveDBLatency(operation, start)
	}
}
