// Package observer provides the event bus workflow and orchestration runs
// report progress through.
//
// A WorkflowEvent is a single tagged-union value (WorkflowStarted,
// TaskCompleted, WaitingForInput, and so on); a Sink is anything that can
// receive one. NullSink discards events, CollectingSink records them for
// tests, BroadcastSink fans them out over Go channels to any number of
// subscribers (dropping events for a subscriber whose buffer is full
// rather than blocking the sender), CallbackSink hands them to a closure,
// and CompositeSink fans a single event out to several child sinks.
//
// Manager wraps a set of sinks and delivers to each from its own
// goroutine, recovering a panicking sink so it can't stall the engine
// that is reporting progress.
package observer
