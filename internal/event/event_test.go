package event

import "testing"

func TestParseActionRoundTrip(t *testing.T) {
	actions := []Action{
		ActionInsert, ActionUpdate, ActionDelete, ActionMove,
		ActionConfirmAccepted, ActionConfirmDeclined, ActionConfirmTentative, ActionConfirmWaiting,
	}

	for _, action := range actions {
		parsed, err := ParseAction(action.String())
		if err != nil {
			t.Errorf("ParseAction(%q) error = %v", action.String(), err)
			continue
		}
		if parsed != action {
			t.Errorf("ParseAction(%q) = %v, want %v", action.String(), parsed, action)
		}
	}
}

func TestParseActionUnknown(t *testing.T) {
	action, err := ParseAction("vanish")
	if err == nil {
		t.Fatal("ParseAction() error = nil, want error for unrecognized name")
	}
	if action != ActionUnknown {
		t.Errorf("ParseAction() = %v, want ActionUnknown", action)
	}
}

func TestActionClassification(t *testing.T) {
	tests := []struct {
		action      Action
		wantConfirm bool
		wantRSVP    bool
	}{
		{ActionInsert, false, false},
		{ActionUpdate, false, false},
		{ActionDelete, false, false},
		{ActionMove, false, false},
		{ActionConfirmAccepted, true, true},
		{ActionConfirmDeclined, true, true},
		{ActionConfirmTentative, true, true},
		{ActionConfirmWaiting, true, false},
	}

	for _, tt := range tests {
		if got := tt.action.IsConfirm(); got != tt.wantConfirm {
			t.Errorf("%s.IsConfirm() = %v, want %v", tt.action, got, tt.wantConfirm)
		}
		if got := tt.action.IsRSVP(); got != tt.wantRSVP {
			t.Errorf("%s.IsRSVP() = %v, want %v", tt.action, got, tt.wantRSVP)
		}
	}
}
