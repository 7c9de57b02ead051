// Package dispatch classifies incoming groupware events, builds the activity
// skeleton, delegates domain extraction and triggers delivery.
package dispatch

import (
	"context"
	"fmt"
	"log"

	"gitea.jw6.us/james/oxstream/internal/activity"
	"gitea.jw6.us/james/oxstream/internal/audit"
	"gitea.jw6.us/james/oxstream/internal/config"
	"gitea.jw6.us/james/oxstream/internal/event"
	"gitea.jw6.us/james/oxstream/internal/extract"
	"gitea.jw6.us/james/oxstream/internal/metrics"
	"gitea.jw6.us/james/oxstream/internal/store"
)

// Deliverer posts one serialized activity for a user identity.
type Deliverer interface {
	Send(ctx context.Context, act *activity.Activity, userLogin string) error
}

// Dispatcher turns one groupware event at a time into zero or more delivered
// activities. It is safe for concurrent use: the queue and the calendar
// extractor's cooldown state are the only shared mutable pieces and both
// guard themselves.
type Dispatcher struct {
	cfg       *config.Config
	users     store.UserRepository
	deliverer Deliverer
	queue     *Queue
	auditor   *audit.Logger
	generator *activity.Entity

	calendar extract.Extractor
	contact  extract.Extractor
	task     extract.Extractor
}

// New wires a dispatcher with its extractors. The auditor may be nil.
func New(cfg *config.Config, users store.UserRepository, deliverer Deliverer, queue *Queue, auditor *audit.Logger) *Dispatcher {
	generator := &activity.Entity{
		ID:          "open-xchange",
		ObjectType:  "application",
		DisplayName: "Open-Xchange",
		URL:         cfg.BaseURL,
	}

	return &Dispatcher{
		cfg:       cfg,
		users:     users,
		deliverer: deliverer,
		queue:     queue,
		auditor:   auditor,
		generator: generator,
		calendar: extract.NewCalendarExtractor(cfg.BaseURL, cfg.SendInvites, cfg.FilterUnnamed,
			cfg.FilterRSVPUpdates, users, queue, generator),
		contact: extract.NewContactExtractor(cfg.BaseURL, cfg.ContactDeletions, cfg.FilterUnnamed),
		task:    extract.NewTaskExtractor(cfg.BaseURL, cfg.FilterUnnamed),
	}
}

// Handle processes one event. Failures are logged and swallowed so that one
// bad event never blocks subsequent events.
func (d *Dispatcher) Handle(ctx context.Context, ev *event.Event, topic string) {
	d.auditor.LogEvent(ev, topic)

	if ev == nil {
		return
	}

	if _, err := d.process(ctx, ev, topic); err != nil {
		metrics.ProcessingFailure()
		log.Printf("[ERROR] event processing failed for topic %s: %v", topic, err)
		d.auditor.LogText("error: " + err.Error())
	}
}

func (d *Dispatcher) process(ctx context.Context, ev *event.Event, topic string) (bool, error) {
	send := true
	act := &activity.Activity{}

	action, eventType := event.ParseTopic(topic)
	metrics.EventReceived(eventType)

	var userLogin string
	if session := ev.Session; session != nil {
		user, err := d.users.GetByID(ctx, ev.ContextID, session.UserID)
		if err != nil {
			return false, fmt.Errorf("resolve acting user %d: %w", session.UserID, err)
		}
		userLogin = session.Login
		act.Actor = &activity.Entity{
			ID:          userLogin,
			ObjectType:  "person",
			DisplayName: user.GivenName + " " + user.Surname,
		}
	}

	act.Verb = verbFor(ev.Action)

	// RSVP verbs are gated by config regardless of the extractor's own
	// decision.
	rsvpBlocked := ev.Action.IsRSVP() && !d.cfg.RSVPActivities

	var err error
	switch eventType {
	case event.TypeContact:
		if d.cfg.ContactActivities {
			send, err = d.contact.Extract(ctx, act, ev, action)
		} else {
			send = false
		}

	case event.TypeAppointment:
		if d.cfg.CalendarActivities {
			send, err = d.calendar.Extract(ctx, act, ev, action)
		} else {
			send = false
		}

	case event.TypeTask:
		if d.cfg.TaskActivities {
			send, err = d.task.Extract(ctx, act, ev, action)
		} else {
			send = false
		}

	case event.TypeInfostore, event.TypeFolder:
		// Always filtered.
		send = false

	default:
		log.Printf("[INFO] unknown event type: %s", eventType)
		d.auditor.LogText("unknown type: " + eventType)
		send = false
	}
	if err != nil {
		return false, err
	}

	if rsvpBlocked {
		send = false
	}

	if folder := ev.SourceFolder; folder != nil {
		if d.cfg.FilterPrivateFolders && folder.Kind == event.FolderPrivate {
			send = false
		}
		if d.cfg.FilterSystemFolders && folder.Kind == event.FolderSystem {
			send = false
		}
	}

	// Attached even when suppressed, for logging parity.
	act.Generator = d.generator

	if d.cfg.LogActivities {
		d.auditor.LogActivity(act)
	}

	if d.cfg.SendActivities && send {
		if err := d.deliverer.Send(ctx, act, userLogin); err != nil {
			metrics.DeliveryFailure()
			return false, fmt.Errorf("deliver activity: %w", err)
		}
		metrics.ActivityDelivered(act.Verb)
	} else if !send {
		metrics.ActivitySuppressed(eventType)
	}

	// Flush invitations enqueued during this dispatch, after the primary
	// activity.
	if d.cfg.SendActivities {
		d.queue.DrainAndSend(func(queued *activity.Activity, login string) error {
			if d.cfg.LogActivities {
				d.auditor.LogActivity(queued)
			}
			if err := d.deliverer.Send(ctx, queued, login); err != nil {
				metrics.DeliveryFailure()
				return err
			}
			metrics.ActivityDelivered(queued.Verb)
			return nil
		})
	}

	return send, nil
}

// verbFor maps an event action to its activity verb.
func verbFor(action event.Action) string {
	switch action {
	case event.ActionInsert:
		return activity.VerbAdd
	case event.ActionUpdate:
		return activity.VerbUpdate
	case event.ActionDelete:
		return activity.VerbRemove
	case event.ActionMove:
		// No dedicated verb for moves.
		return activity.VerbUpdate
	case event.ActionConfirmAccepted:
		return activity.VerbRSVPYes
	case event.ActionConfirmDeclined:
		return activity.VerbRSVPNo
	case event.ActionConfirmTentative:
		return activity.VerbRSVPMaybe
	case event.ActionConfirmWaiting:
		return activity.VerbRequest
	}
	return activity.VerbPost
}
