package driver

// Stage describes a step of processing a single input.
type Stage string

const (
	// StageLoad reads the input into the file set.
	StageLoad Stage = "load"
	// StageFormat runs the engine.
	StageFormat Stage = "format"
	// StageWrite writes the formatted text back.
	StageWrite Stage = "write"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	// StatusChanged is StatusDone for an input whose formatted text differs.
	StatusChanged Status = "changed"
	StatusError   Status = "error"
)

// Event reports progress for one input.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// ProgressSink receives events. OnEvent may be called from several
// goroutines at once.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel; the caller owns closing it.
type ChannelSink chan<- Event

// OnEvent implements ProgressSink.
func (s ChannelSink) OnEvent(ev Event) {
	s <- ev
}

func emit(sink ProgressSink, file string, stage Stage, status Status) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{File: file, Stage: stage, Status: status})
}
