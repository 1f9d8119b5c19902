// Package pipeline runs a multi-request submission as a sequence of
// stages, e.g. create the order and then pay for it.
package pipeline

import (
	"context"
	"fmt"

	"github.com/zoe5466/Gudiee-sub001/logging"
)

// Stage is a single unit of work in a submission pipeline.
type Stage interface {
	Name() string
	Execute(ctx context.Context, oc *OrderContext) error
}

// StageFunc adapts a function to Stage.
type StageFunc struct {
	StageName string
	Fn        func(ctx context.Context, oc *OrderContext) error
}

func (s StageFunc) Name() string { return s.StageName }

func (s StageFunc) Execute(ctx context.Context, oc *OrderContext) error {
	return s.Fn(ctx, oc)
}

// Pipeline executes a sequence of stages in order.
type Pipeline struct {
	stages []Stage
	logger logging.Logger
}

// New creates a Pipeline from the given stages.
func New(stages ...Stage) *Pipeline {
	return &Pipeline{stages: stages, logger: logging.Nop()}
}

// WithLogger sets the logger used to trace stages.
func (p *Pipeline) WithLogger(l logging.Logger) *Pipeline {
	p.logger = logging.Fallback(l)
	return p
}

// Stages returns the stage names in order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run executes each stage sequentially. It stops on the first error; the
// error wraps the stage's error so callers can still match it.
func (p *Pipeline) Run(ctx context.Context, oc *OrderContext) error {
	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return fmt.Errorf("pipeline cancelled before stage %s: %w", s.Name(), err)
		}
		p.logger.Debug("stage started", map[string]any{"stage": s.Name()})
		if err := s.Execute(ctx, oc); err != nil {
			p.logger.Warn("stage failed", map[string]any{"stage": s.Name(), "error": err})
			return fmt.Errorf("stage %s: %w", s.Name(), err)
		}
		oc.Completed = append(oc.Completed, s.Name())
	}
	return nil
}
