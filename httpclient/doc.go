// Package httpclient provides the HTTP transport used by data providers.
//
// The Adapter resolves request paths against a base URL, encodes JSON
// bodies, preserves repeated query keys, tags every request with an
// X-Request-Id and classifies failures into typed errors:
//
//	a, _ := httpclient.New(httpclient.Config{BaseURL: "https://api.example.com"})
//	resp, err := a.Do(ctx, httpclient.Request{
//	    Method: http.MethodGet,
//	    Path:   "/posts",
//	    Query:  url.Values{"id": {"1", "2"}},
//	})
//	if httpclient.IsNotFound(err) { ... }
//
// Non-2xx responses return both the Response and a classified *Error so the
// caller decides whether the body matters. There is no retry: any retry
// policy belongs to the caller.
package httpclient
