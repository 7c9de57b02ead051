// Package activity defines the ActivityStreams record sent to the remote
// social-activity service.
package activity

// Verbs used for generated activities. The dispatcher picks one per event
// action; invitation fan-out uses VerbInvite.
const (
	VerbAdd       = "add"
	VerbUpdate    = "update"
	VerbRemove    = "remove"
	VerbRSVPYes   = "rsvp-yes"
	VerbRSVPNo    = "rsvp-no"
	VerbRSVPMaybe = "rsvp-maybe"
	VerbRequest   = "request"
	VerbInvite    = "invite"
	VerbPost      = "Post"
)

// Entity is one of the four object slots of an activity: actor, object,
// target or generator.
type Entity struct {
	ID          string `json:"id,omitempty"`
	ObjectType  string `json:"objectType,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
	URL         string `json:"url,omitempty"`
}

// Activity is a single ActivityStreams record under construction. The
// dispatcher fills actor, verb and generator; the extractors fill object and
// target. Field order here fixes the JSON field order on the wire.
type Activity struct {
	Actor     *Entity `json:"actor,omitempty"`
	Verb      string  `json:"verb,omitempty"`
	Object    *Entity `json:"object,omitempty"`
	Target    *Entity `json:"target,omitempty"`
	Generator *Entity `json:"generator,omitempty"`
}
