package dispatch

import (
	"log"
	"sync"

	"gitea.jw6.us/james/oxstream/internal/activity"
)

type queuedDelivery struct {
	act       *activity.Activity
	userLogin string
}

// Queue buffers secondary activities, such as invitations, until the
// dispatcher flushes them after the primary activity of the same event.
// Enqueue is safe to call concurrently with a running drain.
type Queue struct {
	mu    sync.Mutex
	items []queuedDelivery

	// drainMu serializes whole drain runs so at most one drain delivers
	// at a time.
	drainMu sync.Mutex
}

// NewQueue creates an empty activity queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends an activity addressed to the given user login.
func (q *Queue) Enqueue(act *activity.Activity, userLogin string) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.items = append(q.items, queuedDelivery{act: act, userLogin: userLogin})
}

// Len reports the number of pending deliveries.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

// DrainAndSend pops entries in FIFO order and delivers each until the queue
// is empty, observing entries enqueued while the drain is running. A failed
// delivery is logged and dropped; draining continues with the rest. Only one
// drain runs at a time.
func (q *Queue) DrainAndSend(deliver func(act *activity.Activity, userLogin string) error) {
	q.drainMu.Lock()
	defer q.drainMu.Unlock()

	for {
		q.mu.Lock()
		if len(q.items) == 0 {
			q.mu.Unlock()
			return
		}
		next := q.items[0]
		q.items = q.items[1:]
		q.mu.Unlock()

		if err := deliver(next.act, next.userLogin); err != nil {
			log.Printf("[ERROR] queued activity delivery failed for %s: %v", next.userLogin, err)
		}
	}
}
