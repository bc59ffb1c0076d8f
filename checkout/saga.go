package checkout

import (
	"context"
	"log"
)

// Step is one side-effecting unit of a checkout: an Apply that performs the
// write and a Compensate that undoes it. Compensate may be nil for steps that
// need no undo.
type Step struct {
	Name       string
	Apply      func(ctx context.Context) error
	Compensate func(ctx context.Context) error
}

// RunSteps applies steps in order. When a step fails, the already-applied
// steps are compensated in reverse order and the step's error is returned.
//
// Compensation is best effort: a failed compensate is logged and the
// walk-back continues, since stopping would strand even more state. There is
// no surrounding transaction, so a crash mid-walk-back can still leave stock
// under-restored relative to the captured payment.
func RunSteps(ctx context.Context, steps []Step) error {
	for i, step := range steps {
		if err := step.Apply(ctx); err != nil {
			for j := i - 1; j >= 0; j-- {
				if steps[j].Compensate == nil {
					continue
				}
				if cerr := steps[j].Compensate(ctx); cerr != nil {
					log.Printf("❌ compensation failed for step %s: %v", steps[j].Name, cerr)
				}
			}
			return err
		}
	}
	return nil
}
