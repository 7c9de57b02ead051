package activity

import (
	"encoding/json"
	"testing"
)

func TestActivityJSONFieldOrder(t *testing.T) {
	act := &Activity{
		Actor:     &Entity{ID: "alice", ObjectType: "person", DisplayName: "Alice Smith"},
		Verb:      VerbAdd,
		Object:    &Entity{ID: "42", ObjectType: "open-xchange-appointment", DisplayName: "Kickoff"},
		Target:    &Entity{ID: "31", ObjectType: "open-xchange-calendar-folder", DisplayName: "Team"},
		Generator: &Entity{ID: "open-xchange", ObjectType: "application"},
	}

	data, err := json.Marshal(act)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"actor":{"id":"alice","objectType":"person","displayName":"Alice Smith"},` +
		`"verb":"add",` +
		`"object":{"id":"42","objectType":"open-xchange-appointment","displayName":"Kickoff"},` +
		`"target":{"id":"31","objectType":"open-xchange-calendar-folder","displayName":"Team"},` +
		`"generator":{"id":"open-xchange","objectType":"application"}}`
	if string(data) != want {
		t.Errorf("Marshal() = %s\nwant        %s", data, want)
	}
}

func TestActivityOmitsEmptySlots(t *testing.T) {
	act := &Activity{
		Verb:   VerbRemove,
		Object: &Entity{ID: "9"},
	}

	data, err := json.Marshal(act)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	if want := `{"verb":"remove","object":{"id":"9"}}`; string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}
}
