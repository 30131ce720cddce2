package telemetry

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/yesoreyeram/nodeflow/backend/pkg/observer"
)

// Sink implements observer.Sink, turning demand/orchestration events into
// OpenTelemetry spans and Provider metrics. One Sink tracks one execution
// run; construct a fresh one per Demand/Execute call.
type Sink struct {
	provider *Provider

	runSpan   trace.Span
	taskSpans map[string]trace.Span

	runStart   time.Time
	taskStarts map[string]time.Time
	steps      int
}

// NewSink creates a telemetry sink reporting through provider.
func NewSink(provider *Provider) *Sink {
	return &Sink{
		provider:   provider,
		taskSpans:  make(map[string]trace.Span),
		taskStarts: make(map[string]time.Time),
	}
}

// Send implements observer.Sink.
func (s *Sink) Send(ctx context.Context, event observer.WorkflowEvent) error {
	switch event.Kind {
	case observer.EventWorkflowStarted:
		s.handleRunStarted(ctx, event)
	case observer.EventWorkflowCompleted:
		s.handleRunEnded(ctx, event, true)
	case observer.EventWorkflowFailed:
		s.handleRunEnded(ctx, event, false)
	case observer.EventTaskStarted:
		s.handleTaskStarted(ctx, event)
	case observer.EventTaskCompleted:
		s.steps++
		s.handleTaskEnded(ctx, event, true)
	case observer.EventTaskFailed:
		s.steps++
		s.handleTaskEnded(ctx, event, false)
	}
	return nil
}

func (s *Sink) handleRunStarted(ctx context.Context, event observer.WorkflowEvent) {
	_, span := s.provider.Tracer().Start(ctx, "engine.run",
		trace.WithAttributes(attribute.String("run.message", event.Message)),
	)
	s.runSpan = span
	s.runStart = event.Timestamp
	if s.runStart.IsZero() {
		s.runStart = time.Now()
	}
}

func (s *Sink) handleRunEnded(ctx context.Context, event observer.WorkflowEvent, success bool) {
	duration := time.Since(s.runStart)
	s.provider.RecordWorkflowExecution(ctx, event.Message, duration, success, s.steps)
	s.provider.RecordOrchestrationRun(ctx, event.Message, s.steps, success)

	if s.runSpan == nil {
		return
	}
	if !success {
		s.runSpan.RecordError(errString(event.Error))
		s.runSpan.SetStatus(codes.Error, event.Error)
	} else {
		s.runSpan.SetStatus(codes.Ok, "completed")
	}
	s.runSpan.End()
}

func (s *Sink) handleTaskStarted(ctx context.Context, event observer.WorkflowEvent) {
	parent := ctx
	if s.runSpan != nil {
		parent = trace.ContextWithSpan(ctx, s.runSpan)
	}
	_, span := s.provider.Tracer().Start(parent, "task.execute",
		trace.WithAttributes(attribute.String("task.id", event.TaskID)),
	)
	s.taskSpans[event.TaskID] = span
	s.taskStarts[event.TaskID] = event.Timestamp
	if s.taskStarts[event.TaskID].IsZero() {
		s.taskStarts[event.TaskID] = time.Now()
	}
}

func (s *Sink) handleTaskEnded(ctx context.Context, event observer.WorkflowEvent, success bool) {
	var duration time.Duration
	if start, ok := s.taskStarts[event.TaskID]; ok {
		duration = time.Since(start)
		delete(s.taskStarts, event.TaskID)
	}
	s.provider.RecordNodeExecution(ctx, event.TaskID, "", duration, success)
	s.provider.RecordDemand(ctx, event.TaskID, false)

	span, ok := s.taskSpans[event.TaskID]
	if !ok {
		return
	}
	if !success {
		span.RecordError(errString(event.Error))
		span.SetStatus(codes.Error, event.Error)
	} else {
		span.SetStatus(codes.Ok, "completed")
	}
	span.End()
	delete(s.taskSpans, event.TaskID)
}

// errString adapts a plain error message string to the error interface for
// RecordError, which wants an error rather than a string.
type errString string

func (e errString) Error() string { return string(e) }
