// Package derror provides error-handling helpers for code that supervises goroutines: turning
// recovered panics in to errors, and reporting several errors as one.
package derror

import (
	"fmt"
	"strings"
)

// MultiError is a collection of errors that is itself an error.  It is what dpool.Pool.Close
// returns when one or more workers crashed.
type MultiError []error

func (e MultiError) Error() string {
	noun := "errors"
	if len(e) == 1 {
		noun = "error"
	}
	var buf strings.Builder
	fmt.Fprintf(&buf, "%d %s:", len(e), noun)
	for i, err := range e {
		prefix := fmt.Sprintf(" %d. ", i+1)
		indent := strings.Repeat(" ", len(prefix))
		buf.WriteString("\n")
		buf.WriteString(prefix)
		buf.WriteString(strings.ReplaceAll(err.Error(), "\n", "\n"+indent))
	}
	return buf.String()
}

// Unwrap allows errors.Is and errors.As to search each of the errors.
func (e MultiError) Unwrap() []error {
	return e
}
