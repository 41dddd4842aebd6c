// Package logger provides structured logging for lazykit using zerolog.
//
// Library types (lazy lists, sources) default to [Nop] and log only when a
// logger is injected. Applications configure one logger from [Config]:
//
//	logger:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.Get("lazylist")
//	log.Debug("source activated", logger.Fields(logger.FieldSourceKind, "iterator"))
package logger
