package sim

import (
	"context"
	"sync"
)

// Variant is one independent run of a comparison. Build must return a
// simulator that shares no host with other variants.
type Variant struct {
	Name   string
	Build  func() (*Simulator, error)
	Config Config
}

// RunVariants runs each variant on its own goroutine. Results and errors are
// indexed like variants; a failed run keeps whatever partial result it
// produced, and a failed build leaves a nil result.
func RunVariants(ctx context.Context, variants []Variant) ([]*Result, []error) {
	results := make([]*Result, len(variants))
	errs := make([]error, len(variants))

	var wg sync.WaitGroup
	for i, v := range variants {
		wg.Add(1)
		go func(idx int, v Variant) {
			defer wg.Done()

			s, err := v.Build()
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx], errs[idx] = s.Run(ctx, v.Config)
		}(i, v)
	}

	wg.Wait()
	return results, errs
}

// FirstError returns the lowest-index non-nil error of a RunVariants call.
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
