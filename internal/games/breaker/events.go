package breaker

// Sound identifiers requested by the simulation. The host maps them to
// loaded audio assets.
const (
	SoundBump    = "bump"
	SoundVictory = "victory"
	SoundDefeat  = "defeat"
)

// EventKind distinguishes side effects a step asks the host to perform.
type EventKind int

const (
	EventSound EventKind = iota // Play Sound
	EventOver                   // Session ended with Outcome
)

// Event is a side effect produced by Step. The session never calls back
// into its host; the host drains events after every step instead.
type Event struct {
	Kind    EventKind
	Sound   string
	Outcome Outcome
}

func soundEvent(id string) Event {
	return Event{Kind: EventSound, Sound: id}
}

func overEvent(o Outcome) Event {
	return Event{Kind: EventOver, Outcome: o}
}
