package client

import "fmt"

// EnsureAvailable decides whether a response actually carries the requested
// content. The catalog answers requests for absent identifiers with a
// redirect to its front page rather than a 404, so any redirect status means
// "nothing here" and becomes ErrNotFound. Everything else passes.
func EnsureAvailable(res *FetchResult) error {
	if res.Redirected() {
		return fmt.Errorf("%s: %w", res.URL, ErrNotFound)
	}
	return nil
}
