package render

import (
	"fmt"
	"io"
	"time"

	"github.com/musdomains/domains/internal/registry"
	"github.com/musdomains/domains/internal/usecase"
)

// ScenarioRenderer prints each step's output line as it was produced
type ScenarioRenderer struct {
	out     io.Writer
	verbose bool
}

// NewScenarioRenderer creates a new scenario renderer. verbose adds the call
// and receipt of every step.
func NewScenarioRenderer(out io.Writer, verbose bool) *ScenarioRenderer {
	return &ScenarioRenderer{out: out, verbose: verbose}
}

// Render renders the executed steps. The error of a failed step is only
// shown in verbose mode; the caller reports it otherwise.
func (r *ScenarioRenderer) Render(result *usecase.RunScenarioResult) error {
	if result == nil {
		return nil
	}
	if r.verbose {
		fmt.Fprintln(r.out, headerStyle.Sprintf("Scenario %s on %s", result.Scenario.Name, result.Network))
	}

	for _, step := range result.Steps {
		if r.verbose {
			fmt.Fprintln(r.out, faintStyle.Sprintf("[%d/%d] %s (%s)", step.Index+1, len(result.Scenario.Steps), step.Step.String(), step.Duration.Round(time.Millisecond)))
		}
		if step.Failed() {
			if r.verbose {
				fmt.Fprintln(r.out, FormatError(step.Err.Error()))
			}
			break
		}
		if step.Expected {
			fmt.Fprintln(r.out, expectedStyle.Sprintf("%s rejected as expected: %s", step.Step.String(), registry.KindOf(step.Err)))
			continue
		}
		if step.Output != "" {
			fmt.Fprintln(r.out, step.Output)
		}
		if r.verbose && step.Receipt != nil {
			fmt.Fprintln(r.out, receiptLine(step.Receipt))
		}
	}
	return nil
}

var _ Renderer[*usecase.RunScenarioResult] = (*ScenarioRenderer)(nil)
