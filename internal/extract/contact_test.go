package extract

import (
	"context"
	"errors"
	"testing"

	"gitea.jw6.us/james/oxstream/internal/activity"
	"gitea.jw6.us/james/oxstream/internal/event"
)

func contactEvent(action event.Action, contact *event.Contact) *event.Event {
	var payload event.Payload
	if contact != nil {
		payload = contact
	}
	return &event.Event{
		Action:       action,
		Object:       payload,
		SourceFolder: &event.Folder{ID: 12, Name: "Global Contacts", Kind: event.FolderPublic},
		ContextID:    1,
		UserID:       1,
	}
}

func TestContactExtractPopulatesObjectAndTarget(t *testing.T) {
	x := NewContactExtractor("https://ox.example.com/", false, false)
	act := &activity.Activity{}
	contact := &event.Contact{ID: 9, DisplayName: "Smith, John", GivenName: "John", Surname: "Smith"}

	send, err := x.Extract(context.Background(), act, contactEvent(event.ActionInsert, contact), "insert")
	if err != nil {
		t.Fatalf("Extract() error = %v", err)
	}
	if !send {
		t.Fatal("Extract() send = false, want true")
	}

	if act.Target == nil || act.Target.ObjectType != "open-xchange-contacts-folder" {
		t.Fatalf("unexpected target: %+v", act.Target)
	}
	if want := "https://ox.example.com/#!!&app=io.ox/contacts&folder=12"; act.Target.URL != want {
		t.Errorf("target URL = %q, want %q", act.Target.URL, want)
	}

	if act.Object == nil || act.Object.ObjectType != "open-xchange-contact" {
		t.Fatalf("unexpected object: %+v", act.Object)
	}
	if act.Object.DisplayName != "John Smith" {
		t.Errorf("object displayName = %q, want %q", act.Object.DisplayName, "John Smith")
	}
	if want := "https://ox.example.com/#!!&app=io.ox/contacts&folder=12&id=12.9"; act.Object.URL != want {
		t.Errorf("object URL = %q, want %q", act.Object.URL, want)
	}
}

func TestContactDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		contact *event.Contact
		want    string
	}{
		{
			name:    "given and surname",
			contact: &event.Contact{ID: 1, DisplayName: "x", GivenName: "John", Surname: "Smith"},
			want:    "John Smith",
		},
		{
			name:    "with title",
			contact: &event.Contact{ID: 1, DisplayName: "x", GivenName: "John", Surname: "Smith", Title: "Dr."},
			want:    "Dr. John Smith",
		},
		{
			name:    "no display name falls back to placeholder",
			contact: &event.Contact{ID: 1},
			want:    contactPlaceholderName,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := NewContactExtractor("https://ox.example.com/", false, false)
			act := &activity.Activity{}

			if _, err := x.Extract(context.Background(), act, contactEvent(event.ActionInsert, tt.contact), "insert"); err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if act.Object.DisplayName != tt.want {
				t.Errorf("displayName = %q, want %q", act.Object.DisplayName, tt.want)
			}
		})
	}
}

func TestContactSuppression(t *testing.T) {
	tests := []struct {
		name          string
		sendDeleted   bool
		filterUnnamed bool
		action        event.Action
		contact       *event.Contact
		wantSend      bool
	}{
		{
			name:     "private contact",
			action:   event.ActionUpdate,
			contact:  &event.Contact{ID: 1, DisplayName: "x", Private: true},
			wantSend: false,
		},
		{
			name:          "unnamed contact with filter",
			filterUnnamed: true,
			action:        event.ActionUpdate,
			contact:       &event.Contact{ID: 1},
			wantSend:      false,
		},
		{
			name:     "deletion suppressed by default",
			action:   event.ActionDelete,
			contact:  &event.Contact{ID: 1, DisplayName: "x"},
			wantSend: false,
		},
		{
			name:        "deletion allowed when enabled",
			sendDeleted: true,
			action:      event.ActionDelete,
			contact:     &event.Contact{ID: 1, DisplayName: "x"},
			wantSend:    true,
		},
		{
			name:     "missing payload",
			action:   event.ActionUpdate,
			contact:  nil,
			wantSend: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x := NewContactExtractor("https://ox.example.com/", tt.sendDeleted, tt.filterUnnamed)

			send, err := x.Extract(context.Background(), &activity.Activity{}, contactEvent(tt.action, tt.contact), tt.action.String())
			if err != nil {
				t.Fatalf("Extract() error = %v", err)
			}
			if send != tt.wantSend {
				t.Errorf("Extract() send = %v, want %v", send, tt.wantSend)
			}
		})
	}
}

func TestContactExtractWrongPayloadKind(t *testing.T) {
	x := NewContactExtractor("https://ox.example.com/", false, false)
	ev := contactEvent(event.ActionInsert, nil)
	ev.Object = &event.Task{ID: 5}

	_, err := x.Extract(context.Background(), &activity.Activity{}, ev, "insert")

	var payloadErr *UnexpectedPayloadError
	if !errors.As(err, &payloadErr) {
		t.Fatalf("Extract() error = %v, want UnexpectedPayloadError", err)
	}
	if payloadErr.Domain != "contact" || payloadErr.Got != "task" {
		t.Errorf("unexpected error details: %+v", payloadErr)
	}
}
