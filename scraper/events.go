package scraper

import "log"

// Event names broadcast over the Emitter during a run.
const (
	EventStarted   = "scraper:started"
	EventProgress  = "scraper:progress"
	EventItemSaved = "scraper:item_saved"
	EventError     = "scraper:error"
	EventCompleted = "scraper:completed"
)

// An Emitter receives lifecycle and progress events. Emission is best-effort:
// implementations must not block the run loop, and their failures are ignored.
type Emitter interface {
	Emit(event string, payload map[string]any)
}

// LogEmitter writes every event to the process log.
type LogEmitter struct{}

func (LogEmitter) Emit(event string, payload map[string]any) {
	log.Printf("%s %v", event, payload)
}

// NopEmitter discards every event.
type NopEmitter struct{}

func (NopEmitter) Emit(string, map[string]any) {}
