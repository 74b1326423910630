package locations

import (
	"context"
	"fmt"

	"puzzled-pint-map/core/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Runner fetches, reconciles and publishes events one at a time.
type Runner struct {
	source    Source
	pipeline  *Pipeline
	publisher Publisher
	logger    *zap.Logger
}

// NewRunner wires a runner.
func NewRunner(source Source, pipeline *Pipeline, publisher Publisher, logger *zap.Logger) *Runner {
	return &Runner{source: source, pipeline: pipeline, publisher: publisher, logger: logger}
}

// RunEvent processes a single event. Every log line carries the event id and
// a fresh run id.
func (r *Runner) RunEvent(ctx context.Context, eventID int) (*RunSummary, error) {
	runID := uuid.NewString()
	l := logger.WithRun(r.logger, runID, eventID)
	l.Info("Fetching event locations")

	snapshot, err := r.source.Fetch(ctx, eventID)
	if err != nil {
		return nil, err
	}

	res, err := r.pipeline.WithLogger(l).Run(ctx, snapshot, eventID)
	if err != nil {
		return nil, fmt.Errorf("locations: event %d failed: %w", eventID, err)
	}
	res.Summary.RunID = runID

	published, err := r.publisher.Publish(ctx, eventID, res.Collection)
	res.Summary.Published = published
	return &res.Summary, err
}

// RunRange processes the inclusive range [start, end] in order and stops at
// the first failure. Summaries of completed events are returned either way.
func (r *Runner) RunRange(ctx context.Context, start, end int) ([]RunSummary, error) {
	if end < start {
		return nil, fmt.Errorf("locations: end event %d is before start event %d", end, start)
	}

	summaries := make([]RunSummary, 0, end-start+1)
	for id := start; id <= end; id++ {
		if err := ctx.Err(); err != nil {
			return summaries, err
		}
		summary, err := r.RunEvent(ctx, id)
		if summary != nil {
			summaries = append(summaries, *summary)
		}
		if err != nil {
			return summaries, err
		}
	}
	return summaries, nil
}
