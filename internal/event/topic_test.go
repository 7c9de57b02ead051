package event

import "testing"

func TestParseTopic(t *testing.T) {
	tests := []struct {
		topic      string
		wantAction string
		wantType   string
	}{
		{"com/openexchange/groupware/appointment/insert", "insert", "appointment"},
		{"com/openexchange/groupware/contact/delete", "delete", "contact"},
		{"com/openexchange/groupware/task/update", "update", "task"},
		{"com/openexchange/groupware/appointment/confirm_accepted", "confirm_accepted", "appointment"},
		{"contact/move", "move", "contact"},
		{"insert", "insert", ""},
		{"", "", ""},
	}

	for _, tt := range tests {
		action, typ := ParseTopic(tt.topic)
		if action != tt.wantAction || typ != tt.wantType {
			t.Errorf("ParseTopic(%q) = (%q, %q), want (%q, %q)",
				tt.topic, action, typ, tt.wantAction, tt.wantType)
		}
	}
}
