package extract

import (
	"context"
	"strconv"

	"gitea.jw6.us/james/oxstream/internal/activity"
	"gitea.jw6.us/james/oxstream/internal/event"
)

// contactPlaceholderName is used when a contact carries no resolvable
// display name, e.g. for deleted entries.
const contactPlaceholderName = "Kontakt"

// ContactExtractor generates activities for contacts.
type ContactExtractor struct {
	baseURL       string
	sendDeleted   bool
	filterUnnamed bool
}

// NewContactExtractor creates a contact extractor generating deep links to
// the given instance URL.
func NewContactExtractor(baseURL string, sendDeleted, filterUnnamed bool) *ContactExtractor {
	return &ContactExtractor{
		baseURL:       baseURL,
		sendDeleted:   sendDeleted,
		filterUnnamed: filterUnnamed,
	}
}

// Extract fills object and target for a contact event.
func (x *ContactExtractor) Extract(ctx context.Context, act *activity.Activity, ev *event.Event, action string) (bool, error) {
	send := true

	var folderID string
	if folder := ev.SourceFolder; folder != nil {
		folderID = strconv.Itoa(folder.ID)
		act.Target = &activity.Entity{
			ID:          folderID,
			ObjectType:  "open-xchange-contacts-folder",
			DisplayName: folder.Name,
			URL:         x.baseURL + contactsFrag + folderFrag + folderID,
		}
	}

	switch contact := ev.Object.(type) {
	case *event.Contact:
		if contact.Private {
			send = false
		}

		if x.filterUnnamed && contact.DisplayName == "" {
			send = false
		}

		displayName := contactPlaceholderName
		if contact.DisplayName != "" {
			displayName = contact.GivenName + " " + contact.Surname
			if contact.Title != "" {
				displayName = contact.Title + " " + displayName
			}
		}

		contactID := strconv.Itoa(contact.ID)
		act.Object = &activity.Entity{
			ID:          contactID,
			ObjectType:  "open-xchange-contact",
			DisplayName: displayName,
			URL:         x.baseURL + contactsFrag + folderFrag + folderID + idFrag + folderID + "." + contactID,
		}
	case nil:
		send = false
	default:
		return false, &UnexpectedPayloadError{Domain: "contact", Got: ev.Object.Kind()}
	}

	// Deleted contacts carry no live display data, so deletions are only
	// reported when explicitly enabled.
	if !x.sendDeleted && ev.Action == event.ActionDelete {
		send = false
	}

	return send, nil
}
