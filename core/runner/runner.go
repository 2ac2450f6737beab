// Package runner executes an ordered list of external commands, aborting on
// the first failure.
package runner

import (
	"context"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// Step is one external command invocation.
type Step struct {
	// Name identifies the step in logs and error messages.
	Name string

	Command string
	Args    []string

	// Dir is the working directory for the command. Empty means the current
	// directory.
	Dir string
}

// Run executes the steps in order, streaming their output to the parent's
// stdout and stderr. The first non-zero exit stops the sequence; the returned
// error names the failed step.
func Run(ctx context.Context, steps []Step) error {
	for _, step := range steps {
		log.Debugf("running %s: %s %v", step.Name, step.Command, step.Args)
		cmd := exec.CommandContext(ctx, step.Command, step.Args...)
		cmd.Dir = step.Dir
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		if err := cmd.Run(); err != nil {
			return &StepError{Step: step.Name, Err: err}
		}
	}
	return nil
}

// StepError reports which step of a sequence failed.
type StepError struct {
	Step string
	Err  error
}

func (e *StepError) Error() string {
	return e.Step + ": " + e.Err.Error()
}

func (e *StepError) Unwrap() error { return e.Err }
