// Package usecases contains the application business logic.
// This package orchestrates domain entities and interfaces to fulfill use cases.
package usecases

import (
	"context"
	"fmt"

	"github.com/MyCarrier-DevOps/git-rollback/internal/domain"
)

// Logger defines the logging interface required by the use cases.
// This abstracts the logger dependency to avoid coupling to a specific implementation.
type Logger interface {
	Info(ctx context.Context, msg string, fields map[string]interface{})
	Debug(ctx context.Context, msg string, fields map[string]interface{})
	Warn(ctx context.Context, msg string, fields map[string]interface{})
	Error(ctx context.Context, msg string, err error, fields map[string]interface{})
}

// RollbackService discards every local change in a working tree.
// A run is strictly sequential: status, preview, optional confirmation,
// then reset and clean. Each git command runs at most once.
type RollbackService struct {
	repo     domain.Repository
	prompter domain.Prompter
	reporter domain.Reporter
	logger   Logger
}

// NewRollbackService creates a new RollbackService with the given dependencies.
func NewRollbackService(
	repo domain.Repository,
	prompter domain.Prompter,
	reporter domain.Reporter,
	log Logger,
) *RollbackService {
	return &RollbackService{
		repo:     repo,
		prompter: prompter,
		reporter: reporter,
		logger:   log,
	}
}

// Run executes one rollback.
//
// Without input.Execute the run stops after printing the commands that would
// run. A failing reset stops the run before clean is attempted; a failing
// clean leaves the tree partially rolled back. Neither case is compensated.
func (s *RollbackService) Run(ctx context.Context, input domain.RollbackInput) (*domain.RollbackOutput, error) {
	info, err := s.repo.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository: %w", err)
	}
	s.reporter.Header(info)

	status, err := s.repo.Status(ctx)
	if err != nil {
		return nil, err
	}
	s.reporter.Status(status)

	s.logger.Info(ctx, "computed repository status", map[string]interface{}{
		"branch":    status.Branch,
		"modified":  len(status.Modified),
		"staged":    len(status.Staged),
		"untracked": len(status.Untracked),
	})

	if status.IsClean() {
		s.reporter.AlreadyClean()
		return &domain.RollbackOutput{Outcome: domain.OutcomeClean, Status: status}, nil
	}

	wouldRemove, err := s.repo.CleanPreview(ctx)
	if err != nil {
		return nil, err
	}
	s.reporter.Preview(wouldRemove)

	output := &domain.RollbackOutput{Status: status, WouldRemove: wouldRemove}
	steps := domain.RollbackSteps()

	if !input.Execute {
		s.reporter.DryRun(steps)
		output.Outcome = domain.OutcomeDryRun
		return output, nil
	}

	if !input.Force {
		s.reporter.ConfirmWarning()
		confirmed, err := s.prompter.Confirm(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to read confirmation: %w", err)
		}
		if !confirmed {
			s.logger.Info(ctx, "rollback declined", nil)
			s.reporter.Cancelled()
			output.Outcome = domain.OutcomeDeclined
			return output, nil
		}
	} else {
		s.logger.Warn(ctx, "skipping confirmation", map[string]interface{}{
			"force": true,
		})
	}

	for i, step := range steps {
		s.reporter.StepStarted(i, step)
		res := s.repo.RunStep(ctx, step)
		if !res.Success() {
			s.reporter.StepFailed(step, res.Combined())
			stepErr := fmt.Errorf("%w: %s: exit status %d: %s",
				stepError(step), step.Command(), res.ExitCode, res.Combined())
			s.logger.Error(ctx, "rollback step failed", stepErr, map[string]interface{}{
				"step":      step.Name,
				"exit_code": res.ExitCode,
			})
			return nil, stepErr
		}
		s.reporter.StepSucceeded(step)
	}

	after, err := s.repo.Info(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read repository after rollback: %w", err)
	}
	s.reporter.Complete(after)
	s.reporter.FinalStatus(s.repo.ShortStatus(ctx).Listing())

	s.logger.Info(ctx, "rollback complete", map[string]interface{}{
		"last_commit": after.LastCommit,
	})

	output.Outcome = domain.OutcomeRolledBack
	return output, nil
}

func stepError(step domain.Step) error {
	if step.Name == domain.ResetStep.Name {
		return domain.ErrResetFailed
	}
	return domain.ErrCleanFailed
}
