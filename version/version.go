package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

// Set with -ldflags -X.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Info is the resolved build identity.
type Info struct {
	Version   string    `json:"version"`
	Commit    string    `json:"commit,omitempty"`
	GoVersion string    `json:"go_version"`
	BuiltAt   time.Time `json:"built_at,omitempty"`
	Dirty     bool      `json:"dirty"`
}

// Release reports whether the binary was stamped with a clean version.
func (i Info) Release() bool {
	return i.Version != "dev" && !i.Dirty
}

// Short returns "<version>[-<commit>][-dirty]".
func (i Info) Short() string {
	parts := []string{i.Version}
	if i.Commit != "" {
		parts = append(parts, i.Commit)
	}
	if i.Dirty {
		parts = append(parts, "dirty")
	}
	return strings.Join(parts, "-")
}

// String is the short form followed by toolchain and build time when known.
func (i Info) String() string {
	s := fmt.Sprintf("%s (%s", i.Short(), i.GoVersion)
	if !i.BuiltAt.IsZero() {
		s += ", built " + i.BuiltAt.UTC().Format(time.RFC3339)
	}
	return s + ")"
}

// Get resolves the build identity from the stamped variables, then from
// the embedded build settings.
func Get() Info {
	return resolve(debug.ReadBuildInfo())
}

func resolve(bi *debug.BuildInfo, ok bool) Info {
	info := Info{Version: Version, Commit: shortCommit(Commit)}
	if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
		info.BuiltAt = t
	}
	if !ok || bi == nil {
		return info
	}
	info.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = shortCommit(s.Value)
			}
		case "vcs.modified":
			info.Dirty = s.Value == "true"
		case "vcs.time":
			if info.BuiltAt.IsZero() {
				if t, err := time.Parse(time.RFC3339, s.Value); err == nil {
					info.BuiltAt = t
				}
			}
		}
	}
	return info
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
