package crawler

import (
	"errors"
	"fmt"
)

// ErrDisallowed is wrapped by FetchError when robots.txt forbids the URL.
var ErrDisallowed = errors.New("disallowed by robots.txt")

// FetchError reports a failed page fetch: a transport error, a refusal by
// robots.txt, or a non-2xx status (StatusCode set).
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

func statusError(targetURL string, status int) error {
	if status >= 200 && status < 300 {
		return nil
	}
	return &FetchError{URL: targetURL, StatusCode: status, Err: fmt.Errorf("unexpected status %d", status)}
}
