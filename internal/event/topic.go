package event

import "strings"

// Topic type segments recognized by the dispatcher. Anything else counts as
// an unknown type and is filtered.
const (
	TypeContact     = "contact"
	TypeAppointment = "appointment"
	TypeTask        = "task"
	TypeInfostore   = "infostore"
	TypeFolder      = "folder"
)

// ParseTopic splits a slash-delimited topic classification string into its
// action (last segment) and type (second to last segment). Topics with fewer
// than two segments yield empty strings for the missing parts.
func ParseTopic(topic string) (action, typ string) {
	segments := strings.Split(topic, "/")
	if n := len(segments); n >= 2 {
		return segments[n-1], segments[n-2]
	} else if n == 1 {
		return segments[0], ""
	}
	return "", ""
}
