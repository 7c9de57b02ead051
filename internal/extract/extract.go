// Package extract holds the per-domain extractors that populate activity
// object and target fields and decide whether an activity is sent.
package extract

import (
	"context"
	"fmt"

	"gitea.jw6.us/james/oxstream/internal/activity"
	"gitea.jw6.us/james/oxstream/internal/event"
	"gitea.jw6.us/james/oxstream/internal/store"
)

// Deep link fragments shared by all extractors. Links point into the
// Open-Xchange web UI of the configured instance.
const (
	calendarFrag = "#!!&app=io.ox/calendar"
	contactsFrag = "#!!&app=io.ox/contacts"
	tasksFrag    = "#!!&app=io.ox/tasks"
	folderFrag   = "&folder="
	idFrag       = "&id="
)

// Extractor enriches a pre-built activity with domain details from an event
// and reports whether the activity should be sent. A false return is a normal
// suppression; an error means the event is unusable and must be dropped.
type Extractor interface {
	Extract(ctx context.Context, act *activity.Activity, ev *event.Event, action string) (bool, error)
}

// UserDirectory resolves users for invitation fan-out.
type UserDirectory interface {
	GetByID(ctx context.Context, contextID, userID int) (*store.User, error)
}

// ActivitySink accepts secondary activities for deferred delivery.
type ActivitySink interface {
	Enqueue(act *activity.Activity, userLogin string)
}

// UnexpectedPayloadError reports an action object whose kind does not match
// the extractor's domain. This signals a schema assumption violation and is
// distinct from a missing payload, which only suppresses the activity.
type UnexpectedPayloadError struct {
	Domain string
	Got    string
}

func (e *UnexpectedPayloadError) Error() string {
	return fmt.Sprintf("%s extractor: unexpected payload kind %q", e.Domain, e.Got)
}
