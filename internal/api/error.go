package api

import "fmt"

// Error is the failure of a single server operation. Status is zero when the
// request never reached the server (transport or encoding failure).
type Error struct {
	Op     string // operation name, e.g. "list folders"
	Status int    // HTTP status code, 0 if none
	Detail string // server-supplied detail message, if any
	Err    error  // underlying error, if any
}

func (e *Error) Error() string {
	switch {
	case e.Detail != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Detail)
	case e.Status != 0:
		return fmt.Sprintf("%s: server returned status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op + ": request failed"
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}
