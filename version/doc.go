// Package version reports the build identity of the lazyseq binary.
//
// Version, commit and build time are stamped at link time:
//
//	go build -ldflags "-X github.com/kbukum/lazykit/version.Version=0.3.0" ./cmd/lazyseq
//
// Unstamped builds fall back to the module's VCS settings.
package version
