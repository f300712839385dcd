package orchestrators

import (
	"errors"
	"fmt"
)

// ErrorKind classifies why a collect run failed
type ErrorKind string

// Collect run failure kinds
const (
	KindConfig        ErrorKind = "config"
	KindDistributions ErrorKind = "distributions"
	KindFetchReleases ErrorKind = "fetch_releases"
	KindNoMetrics     ErrorKind = "no_metrics"
	KindSendMetrics   ErrorKind = "send_metrics"
)

var (
	// ErrNoDistributions means the distributions root holds no manifest directories
	ErrNoDistributions = errors.New("no distributions found")
	// ErrNoMetrics means no release asset followed the naming convention
	ErrNoMetrics = errors.New("no metrics to send")
)

// RunError is returned by CollectOrchestrator.Run for every failure
type RunError struct {
	Kind ErrorKind
	Err  error
}

func (e *RunError) Error() string {
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

// Unwrap returns the underlying error
func (e *RunError) Unwrap() error {
	return e.Err
}

func runError(kind ErrorKind, err error) *RunError {
	return &RunError{Kind: kind, Err: err}
}

// KindOf returns the kind of a RunError anywhere in err's chain
func KindOf(err error) (ErrorKind, bool) {
	var runErr *RunError
	if errors.As(err, &runErr) {
		return runErr.Kind, true
	}
	return "", false
}
