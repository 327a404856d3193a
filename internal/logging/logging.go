// Package logging configures the shared go-logging backend used by every
// package in this module. Each package obtains its own named logger with
// logging.MustGetLogger, the same pattern lexicmap/cmd relies on for its
// package-level "log" variable.
package logging

import (
	"io"
	"os"

	logging "github.com/shenwei356/go-logging"
)

var backendConfigured bool

// Verbosity gates which levels reach the backend, per the 0..3 scale in
// spec.md section 6 ("verbosity (0..3), Progress & diagnostics gating").
type Verbosity uint8

const (
	Silent Verbosity = iota
	Errors
	Warnings
	Info
)

// Configure installs a backend writing to w at the given verbosity. It may
// be called more than once (e.g. to redirect to a log file); the last call
// wins. Never called on the hot path.
func Configure(w io.Writer, v Verbosity) {
	backend := logging.NewLogBackend(w, "", 0)
	formatter := logging.MustStringFormatter(
		`%{time:15:04:05.000} [%{level:.4s}] %{module}: %{message}`,
	)
	formatted := logging.NewBackendFormatter(backend, formatter)

	leveled := logging.AddModuleLevel(formatted)
	switch v {
	case Silent:
		leveled.SetLevel(logging.CRITICAL, "")
	case Errors:
		leveled.SetLevel(logging.ERROR, "")
	case Warnings:
		leveled.SetLevel(logging.WARNING, "")
	default:
		leveled.SetLevel(logging.INFO, "")
	}

	logging.SetBackend(leveled)
	backendConfigured = true
}

// MustGetLogger returns a named logger, configuring a default
// stderr/Warnings backend on first use if the caller never called
// Configure explicitly.
func MustGetLogger(name string) *logging.Logger {
	if !backendConfigured {
		Configure(os.Stderr, Warnings)
	}
	return logging.MustGetLogger(name)
}
