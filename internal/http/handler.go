package httpserver

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5/middleware"

	"gitea.jw6.us/james/oxstream/internal/event"
)

// EventHandler consumes one classified groupware event. Satisfied by
// dispatch.Dispatcher.
type EventHandler interface {
	Handle(ctx context.Context, ev *event.Event, topic string)
}

// eventEnvelope is the ingest wire format: a topic classification string and
// the event payload.
type eventEnvelope struct {
	Topic string       `json:"topic"`
	Event eventPayload `json:"event"`
}

type eventPayload struct {
	Action            string           `json:"action"`
	ContextID         int              `json:"contextId"`
	UserID            int              `json:"userId"`
	Session           *sessionPayload  `json:"session,omitempty"`
	SourceFolder      *folderPayload   `json:"sourceFolder,omitempty"`
	DestinationFolder *folderPayload   `json:"destinationFolder,omitempty"`
	AffectedUsers     map[string][]int `json:"affectedUsersWithFolder,omitempty"`
	Appointment       *appointmentDTO  `json:"appointment,omitempty"`
	Contact           *contactDTO      `json:"contact,omitempty"`
	Task              *taskDTO         `json:"task,omitempty"`
}

type sessionPayload struct {
	UserID int    `json:"userId"`
	Login  string `json:"login"`
}

type folderPayload struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type appointmentDTO struct {
	ID                 int    `json:"id"`
	Title              string `json:"title"`
	Private            bool   `json:"private"`
	SpecificOccurrence bool   `json:"specificOccurrence"`
	SeriesMaster       bool   `json:"seriesMaster"`
	OrganizerID        int    `json:"organizerId"`
	Participants       []int  `json:"participants"`
}

type contactDTO struct {
	ID          int    `json:"id"`
	DisplayName string `json:"displayName"`
	GivenName   string `json:"givenName"`
	Surname     string `json:"surname"`
	Title       string `json:"title"`
	Private     bool   `json:"private"`
}

type taskDTO struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Private bool   `json:"private"`
}

// eventsHandler accepts groupware change events from the hosting runtime and
// feeds them to the dispatcher. Dispatch runs synchronously on the request
// goroutine; a slow remote endpoint only stalls this one request.
type eventsHandler struct {
	dispatcher EventHandler
}

func (h *eventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var envelope eventEnvelope
	if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
		logWarn(r, "malformed event envelope", err)
		http.Error(w, "malformed event envelope", http.StatusBadRequest)
		return
	}
	if envelope.Topic == "" {
		http.Error(w, "topic is required", http.StatusBadRequest)
		return
	}

	ev, err := envelope.Event.toEvent()
	if err != nil {
		logWarn(r, "invalid event payload", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.dispatcher.Handle(r.Context(), ev, envelope.Topic)
	w.WriteHeader(http.StatusAccepted)
}

func (p *eventPayload) toEvent() (*event.Event, error) {
	action, err := event.ParseAction(p.Action)
	if err != nil {
		return nil, err
	}

	ev := &event.Event{
		Action:    action,
		ContextID: p.ContextID,
		UserID:    p.UserID,
	}

	if p.Session != nil {
		ev.Session = &event.Session{UserID: p.Session.UserID, Login: p.Session.Login}
	}
	ev.SourceFolder = p.SourceFolder.toFolder()
	ev.DestinationFolder = p.DestinationFolder.toFolder()

	if len(p.AffectedUsers) > 0 {
		ev.AffectedUserFolders = make(map[int][]int, len(p.AffectedUsers))
		for key, folderIDs := range p.AffectedUsers {
			userID, err := strconv.Atoi(key)
			if err != nil {
				continue
			}
			ev.AffectedUserFolders[userID] = folderIDs
		}
	}

	switch {
	case p.Appointment != nil:
		ev.Object = &event.CalendarEntry{
			ID:                 p.Appointment.ID,
			Title:              p.Appointment.Title,
			Private:            p.Appointment.Private,
			SpecificOccurrence: p.Appointment.SpecificOccurrence,
			SeriesMaster:       p.Appointment.SeriesMaster,
			OrganizerID:        p.Appointment.OrganizerID,
			Participants:       p.Appointment.Participants,
		}
	case p.Contact != nil:
		ev.Object = &event.Contact{
			ID:          p.Contact.ID,
			DisplayName: p.Contact.DisplayName,
			GivenName:   p.Contact.GivenName,
			Surname:     p.Contact.Surname,
			Title:       p.Contact.Title,
			Private:     p.Contact.Private,
		}
	case p.Task != nil:
		ev.Object = &event.Task{
			ID:      p.Task.ID,
			Title:   p.Task.Title,
			Private: p.Task.Private,
		}
	}

	return ev, nil
}

func (f *folderPayload) toFolder() *event.Folder {
	if f == nil {
		return nil
	}
	return &event.Folder{ID: f.ID, Name: f.Name, Kind: event.FolderKind(f.Kind)}
}

func logWarn(r *http.Request, message string, err error) {
	if requestID := middleware.GetReqID(r.Context()); requestID != "" {
		log.Printf("[WARN] RequestID=%s: %s: %v", requestID, message, err)
		return
	}
	log.Printf("[WARN] %s: %v", message, err)
}
