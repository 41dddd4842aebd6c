// Package redissource connects lazy lists to Redis.
//
// ListSource reads a Redis LIST in LRANGE pages so a lazylist.List only
// issues the round trips its operations need:
//
//	client, err := redissource.New(redissource.Config{Addr: "localhost:6379"}, log)
//	l := lazylist.From(redissource.ListSource(client, "events", 100))
//	first, err := l.Get(ctx, 0) // one LRANGE 0 99
//
// Store saves whole lists as JSON values and loads them back as strict
// lists. PushList writes a list into a Redis LIST.
package redissource
