package extract

import (
	"context"
	"errors"
	"strconv"
	"time"

	"gitea.jw6.us/james/oxstream/internal/activity"
	"gitea.jw6.us/james/oxstream/internal/event"
)

// CalendarExtractor generates activities for calendar entries. Besides the
// usual object/target mapping it owns the RSVP cooldown state and produces
// invitation activities for new appointments.
type CalendarExtractor struct {
	baseURL           string
	sendInvites       bool
	filterUnnamed     bool
	filterRSVPUpdates bool

	directory UserDirectory
	sink      ActivitySink
	generator *activity.Entity

	cooldowns *CooldownTracker
	clock     func() time.Time
}

// NewCalendarExtractor creates a calendar extractor generating deep links to
// the given instance URL. Invitation activities are handed to the sink,
// addressed to the acting user.
func NewCalendarExtractor(baseURL string, sendInvites, filterUnnamed, filterRSVPUpdates bool,
	directory UserDirectory, sink ActivitySink, generator *activity.Entity) *CalendarExtractor {
	return &CalendarExtractor{
		baseURL:           baseURL,
		sendInvites:       sendInvites,
		filterUnnamed:     filterUnnamed,
		filterRSVPUpdates: filterRSVPUpdates,
		directory:         directory,
		sink:              sink,
		generator:         generator,
		cooldowns:         NewCooldownTracker(RSVPCooldownWindow),
		clock:             time.Now,
	}
}

// Extract fills object and target for an appointment event.
func (x *CalendarExtractor) Extract(ctx context.Context, act *activity.Activity, ev *event.Event, action string) (bool, error) {
	send := true

	var folderID string
	if folder := ev.SourceFolder; folder != nil {
		folderID = strconv.Itoa(folder.ID)
		act.Target = &activity.Entity{
			ID:          folderID,
			ObjectType:  "open-xchange-calendar-folder",
			DisplayName: folder.Name,
			URL:         x.baseURL + calendarFrag + folderFrag + folderID,
		}
	}

	switch entry := ev.Object.(type) {
	case *event.CalendarEntry:
		if entry.Private {
			send = false
		}

		// Series exceptions are not reported, only the master.
		if entry.SpecificOccurrence && !entry.SeriesMaster {
			send = false
		}

		// Entries without a title usually stem from deleted folders.
		if x.filterUnnamed && entry.Title == "" {
			send = false
		}

		entryID := strconv.Itoa(entry.ID)
		act.Object = &activity.Entity{
			ID:          entryID,
			ObjectType:  "open-xchange-appointment",
			DisplayName: entry.Title,
			URL:         x.baseURL + calendarFrag + folderFrag + folderID + idFrag + folderID + "." + entryID,
		}

		if send && ev.Action == event.ActionInsert && x.sendInvites {
			if err := x.queueInvitations(ctx, act, ev, entry); err != nil {
				return false, err
			}
		}

		// The cooldown verdict replaces any earlier suppression state
		// when the filter is enabled.
		if x.filterRSVPUpdates {
			send = x.applyCooldown(ev, entry.ID)
		}
	case nil:
		send = false
	default:
		return false, &UnexpectedPayloadError{Domain: "calendar", Got: ev.Object.Kind()}
	}

	return send, nil
}

// applyCooldown suppresses the follow-up update the groupware fires right
// after a user's own RSVP response, and records fresh cooldowns for RSVP
// events themselves. Recording happens after the update check, so an RSVP
// event never suppresses itself.
func (x *CalendarExtractor) applyCooldown(ev *event.Event, entryID int) bool {
	now := x.clock()
	switch {
	case ev.Action == event.ActionUpdate:
		return !x.cooldowns.IsSuppressedUpdate(entryID, ev.UserID, now)
	case ev.Action.IsConfirm():
		x.cooldowns.RecordResponse(entryID, ev.UserID, now)
	}
	return true
}

// queueInvitations enqueues one invite activity per participant other than
// the organizer. Invites are sent as the acting user, notifying the invitee
// about the appointment in the folder that invitee sees it in.
func (x *CalendarExtractor) queueInvitations(ctx context.Context, act *activity.Activity, ev *event.Event, entry *event.CalendarEntry) error {
	if act.Actor == nil {
		return errors.New("invitation fan-out requires an actor")
	}

	entryID := strconv.Itoa(entry.ID)
	for _, participantID := range entry.Participants {
		if participantID == entry.OrganizerID {
			continue
		}

		folderID := 0
		if ids := ev.AffectedUserFolders[participantID]; len(ids) > 0 {
			folderID = ids[0]
		}
		inviteeFolder := strconv.Itoa(folderID)

		invitee, err := x.directory.GetByID(ctx, ev.ContextID, participantID)
		if err != nil {
			return err
		}

		invite := &activity.Activity{
			Actor: act.Actor,
			Verb:  activity.VerbInvite,
			Object: &activity.Entity{
				ID:          invitee.Login,
				ObjectType:  "person",
				DisplayName: invitee.GivenName + " " + invitee.Surname,
			},
			Target: &activity.Entity{
				ID:          entryID,
				ObjectType:  "open-xchange-appointment",
				DisplayName: entry.Title,
				URL:         x.baseURL + calendarFrag + folderFrag + inviteeFolder + idFrag + inviteeFolder + "." + entryID,
			},
			Generator: x.generator,
		}

		x.sink.Enqueue(invite, act.Actor.ID)
	}

	return nil
}
