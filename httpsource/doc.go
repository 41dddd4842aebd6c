// Package httpsource reads paginated JSON APIs as lazy sources.
//
// The endpoint is expected to answer GET requests with an object such as
//
//	{"items": ["a", "b"], "next_page_token": "2"}
//
// Field and query parameter names are configurable. Pages are requested
// one at a time as a lazylist.List consumes them:
//
//	c, err := httpsource.New(httpsource.Config{BaseURL: "https://api.example.com", Path: "/v1/events"}, log)
//	l := lazylist.From(httpsource.Strings(c))
package httpsource
