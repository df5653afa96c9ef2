package sim

// An Engine maintains the event queues of a simulation and runs the events
// in the order of their scheduled times.
type Engine interface {
	// Schedule registers an event to happen in the future.
	Schedule(e Event)

	// Run processes all the scheduled events.
	Run() error

	// CurrentTime returns the time of the event being processed.
	CurrentTime() VTimeInSec
}
