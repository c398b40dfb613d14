package clients

import "fmt"

// StatusError is returned when the server answered with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	Status     string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s: unexpected status: %s", e.Op, e.Status)
	}
	return fmt.Sprintf("%s: unexpected status: %s: %s", e.Op, e.Status, e.Body)
}
