package generation

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrNoTracks indicates a task that reached SUCCESS but whose payload yielded
// zero usable tracks.
var ErrNoTracks = errors.New("completed task contains no tracks")

// ValidationError collects every rule violated by a request. It is returned
// before any network call is made.
type ValidationError struct {
	Violations []error
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return "invalid request: " + strings.Join(msgs, "; ")
}

// FailureError reports a task that reached a terminal failure status on the
// remote service.
type FailureError struct {
	Status  string
	Message string
}

func (e *FailureError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("generation failed: %s", e.Message)
	}
	return fmt.Sprintf("generation failed with status %s", e.Status)
}

// TimeoutError reports an exhausted local poll budget. The remote job is not
// cancelled and may still complete; it can be queried later by task id.
type TimeoutError struct {
	TaskID   string
	Attempts int
	Elapsed  time.Duration
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("task %s did not complete within %s; it may still be processing, check back with the task id later", e.TaskID, e.Elapsed)
}
