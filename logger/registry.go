package logger

import "sync"

// Component names registered by the lazyseq CLI.
const (
	ComponentLazyList    = "lazylist"
	ComponentRedisSource = "redissource"
	ComponentSQLSource   = "sqlsource"
	ComponentHTTPSource  = "httpsource"
)

// components maps a component name to its *Logger.
var components sync.Map

// Register stores l as the logger for component name.
func Register(name string, l *Logger) {
	components.Store(name, l)
}

// RegisterComponents registers base tagged with each name, replacing
// earlier registrations.
func RegisterComponents(base *Logger, names ...string) {
	for _, name := range names {
		Register(name, base.WithComponent(name))
	}
}

// Unregister drops the logger for name.
func Unregister(name string) {
	components.Delete(name)
}

// Get returns the logger registered for name. Unregistered names get the
// global logger tagged with name.
func Get(name string) *Logger {
	if l, ok := components.Load(name); ok {
		return l.(*Logger)
	}
	return GetGlobalLogger().WithComponent(name)
}
