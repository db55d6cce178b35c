// Package httpx carries the HTTP plumbing shared by every route: middleware
// chaining, JSON responses, bearer-token authentication and rate limiting.
package httpx

import "net/http"

// Middleware wraps an http.Handler with extra behavior.
type Middleware func(http.Handler) http.Handler

// Chain applies middlewares to h so that the first listed runs outermost.
//
//	Chain(h, logging, authn, ratelimit)
//
// executes logging → authn → ratelimit → h.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}

	return h
}
