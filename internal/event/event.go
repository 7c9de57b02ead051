// Package event models a single Open-Xchange groupware change as delivered
// by the hosting runtime, plus the topic string that classifies it.
package event

import "fmt"

// Action identifies what happened to a groupware object.
type Action int

const (
	ActionUnknown Action = iota
	ActionInsert
	ActionUpdate
	ActionDelete
	ActionMove
	ActionConfirmAccepted
	ActionConfirmDeclined
	ActionConfirmTentative
	ActionConfirmWaiting
)

var actionNames = map[Action]string{
	ActionInsert:           "insert",
	ActionUpdate:           "update",
	ActionDelete:           "delete",
	ActionMove:             "move",
	ActionConfirmAccepted:  "confirm_accepted",
	ActionConfirmDeclined:  "confirm_declined",
	ActionConfirmTentative: "confirm_tentative",
	ActionConfirmWaiting:   "confirm_waiting",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction maps the wire form of an action back to its enum value.
func ParseAction(s string) (Action, error) {
	for action, name := range actionNames {
		if name == s {
			return action, nil
		}
	}
	return ActionUnknown, fmt.Errorf("unknown event action %q", s)
}

// IsConfirm reports whether the action is any of the four confirmation
// responses, including the waiting state.
func (a Action) IsConfirm() bool {
	switch a {
	case ActionConfirmAccepted, ActionConfirmDeclined, ActionConfirmTentative, ActionConfirmWaiting:
		return true
	}
	return false
}

// IsRSVP reports whether the action is a definitive RSVP response. The
// waiting state maps to the "request" verb and is not gated by the RSVP
// config toggle.
func (a Action) IsRSVP() bool {
	switch a {
	case ActionConfirmAccepted, ActionConfirmDeclined, ActionConfirmTentative:
		return true
	}
	return false
}

// FolderKind is the visibility class of a groupware folder.
type FolderKind string

const (
	FolderPrivate FolderKind = "private"
	FolderPublic  FolderKind = "public"
	FolderShared  FolderKind = "shared"
	FolderSystem  FolderKind = "system"
)

// Folder is the read-only folder view attached to an event.
type Folder struct {
	ID   int
	Name string
	Kind FolderKind
}

// Session carries the acting login identity. Events without a session get no
// actor attached downstream.
type Session struct {
	UserID int
	Login  string
}

// Payload is the polymorphic action object of an event. Each extractor
// accepts exactly one concrete kind.
type Payload interface {
	Kind() string
}

// CalendarEntry is an appointment payload.
type CalendarEntry struct {
	ID                 int
	Title              string
	Private            bool
	SpecificOccurrence bool
	SeriesMaster       bool
	OrganizerID        int
	Participants       []int
}

func (*CalendarEntry) Kind() string { return "appointment" }

// Contact is an address book payload.
type Contact struct {
	ID          int
	DisplayName string
	GivenName   string
	Surname     string
	Title       string
	Private     bool
}

func (*Contact) Kind() string { return "contact" }

// Task is a task payload.
type Task struct {
	ID      int
	Title   string
	Private bool
}

func (*Task) Kind() string { return "task" }

// Event is the immutable view of one groupware change. It is constructed per
// change, consumed once and discarded.
type Event struct {
	Action            Action
	Object            Payload
	SourceFolder      *Folder
	DestinationFolder *Folder
	ContextID         int
	UserID            int

	// AffectedUserFolders maps a user id to the folder ids in which that
	// user sees the changed object.
	AffectedUserFolders map[int][]int

	Session *Session
}
