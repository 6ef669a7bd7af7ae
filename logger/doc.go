// Package logger provides structured logging for the toolkit using zerolog.
//
// It supports JSON and console output, level configuration and
// component-scoped loggers with structured fields. Log output goes to
// stderr by default so that it never interleaves with sequence output
// written to stdout.
//
// # Configuration
//
//	logging:
//	  level: "debug"
//	  format: "json"
//
// # Usage
//
//	log := logger.NewDefault("splice").WithComponent("builder")
//	log.Debug("block applied", logger.Fields("block", name))
package logger
