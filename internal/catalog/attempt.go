package catalog

import "gemscout/internal/providers"

// Attempt runs a fallible operation and reports success instead of the
// error. Failures are logged and never propagated.
func Attempt[T any](logger providers.Logger, what string, fn func() (T, error)) (T, bool) {
	res, err := fn()
	if err != nil {
		logger.Warnf(providers.TypeScan, "%s failed: %s", what, err)
		var zero T
		return zero, false
	}
	return res, true
}

// AttemptEach runs fn for every input in order and folds the successful
// batches into one flat list.
func AttemptEach[I any, T any](logger providers.Logger, inputs []I, describe func(I) string, fn func(I) ([]T, error)) []T {
	batches := make([][]T, 0, len(inputs))
	for _, in := range inputs {
		if batch, ok := Attempt(logger, describe(in), func() ([]T, error) { return fn(in) }); ok {
			batches = append(batches, batch)
		}
	}
	return Collect(batches)
}

// Collect concatenates batches in order.
func Collect[T any](batches [][]T) []T {
	n := 0
	for _, b := range batches {
		n += len(b)
	}
	out := make([]T, 0, n)
	for _, b := range batches {
		out = append(out, b...)
	}
	return out
}
