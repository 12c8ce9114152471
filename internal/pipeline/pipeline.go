package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/nao1215/careermap/internal/model"
)

// Step is one stage of a crawl. Steps run in sequence and share the report.
type Step interface {
	// Do executes the step. A returned error aborts the remaining steps.
	Do(ctx context.Context, report *model.CrawlReport) error

	// Name returns the step's name for logging and the report.
	Name() string
}

// Pipeline runs steps in order, then its finalizers.
type Pipeline struct {
	steps      []Step
	finalizers []Step
	logger     *slog.Logger
}

// Option is a function that configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets a custom logger for the pipeline.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// New creates a new Pipeline with the given options.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		steps:      make([]Step, 0),
		finalizers: make([]Step, 0),
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = slog.Default()
	}

	return p
}

// AddStep appends a step to the pipeline.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends multiple steps to the pipeline.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// AddFinalizer appends a step that runs after the others, even when one of
// them failed or the context was cancelled.
func (p *Pipeline) AddFinalizer(step Step) {
	p.finalizers = append(p.finalizers, step)
}

// Execute runs the steps until one fails, stamps the report as finished and
// runs every finalizer. The returned error joins the step error with any
// finalizer errors.
func (p *Pipeline) Execute(ctx context.Context, report *model.CrawlReport) error {
	runErr := p.runSteps(ctx, report)
	report.Fail(runErr)
	report.Finish()

	// Finalizers must complete even after SIGINT.
	finalCtx := context.WithoutCancel(ctx)

	errs := []error{runErr}
	for _, step := range p.finalizers {
		p.logger.Debug("running finalizer", "step", step.Name(), "run", report.ID)

		if err := step.Do(finalCtx, report); err != nil {
			p.logger.Error("finalizer failed", "step", step.Name(), "run", report.ID, "error", err)
			err = fmt.Errorf("%s: %w", step.Name(), err)
			if runErr == nil {
				report.Fail(err)
			}
			errs = append(errs, err)
			continue
		}
		report.PerformedSteps = append(report.PerformedSteps, step.Name())
	}

	return errors.Join(errs...)
}

func (p *Pipeline) runSteps(ctx context.Context, report *model.CrawlReport) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("pipeline cancelled", "step", step.Name(), "reason", err)
			return fmt.Errorf("crawl cancelled before %s: %w", step.Name(), err)
		}

		p.logger.Info("executing step", "step", step.Name(), "mode", report.Mode)

		if err := step.Do(ctx, report); err != nil {
			p.logger.Error("step failed", "step", step.Name(), "mode", report.Mode, "error", err)
			return err
		}

		p.logger.Debug("step completed", "step", step.Name(), "mode", report.Mode)
		report.PerformedSteps = append(report.PerformedSteps, step.Name())
	}
	return nil
}

// StepCount returns the number of steps, finalizers excluded.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the names of all steps and then finalizers in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, 0, len(p.steps)+len(p.finalizers))
	for _, step := range p.steps {
		names = append(names, step.Name())
	}
	for _, step := range p.finalizers {
		names = append(names, step.Name())
	}
	return names
}
