package errors

import (
	"fmt"
	"strings"
)

// Append merges given errors into a single error instance. Nil errors are
// ignored. If there is nothing to merge, nil is returned. Appending a
// single error returns that error unchanged.
func Append(errs ...error) error {
	var collected multiError
	for _, err := range errs {
		switch e := err.(type) {
		case nil:
			continue
		case multiError:
			collected = append(collected, e...)
		default:
			collected = append(collected, err)
		}
	}

	switch len(collected) {
	case 0:
		return nil
	case 1:
		return collected[0]
	default:
		return collected
	}
}

type multiError []error

func (e multiError) Error() string {
	points := make([]string, len(e))
	for i, err := range e {
		points[i] = fmt.Sprintf("* %s", err)
	}
	return fmt.Sprintf("%d errors occurred:\n\t%s", len(e), strings.Join(points, "\n\t"))
}

// Cause returns the first collected error, consistent with the fail-fast
// reporting of handlers.
func (e multiError) Cause() error {
	if len(e) == 0 {
		return nil
	}
	return e[0]
}
