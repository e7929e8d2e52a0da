// Package tui provides a Bubble Tea-based terminal UI for container provisioning.
package tui

import "github.com/imamik/pvelamp/internal/provisioning"

// EventMsg carries a structured provisioning event into the display.
type EventMsg struct {
	Event provisioning.Event
}

// LogMsg carries a free-form log line into the display tail.
type LogMsg struct {
	Line string
}

// TickMsg is sent periodically to refresh the display.
type TickMsg struct{}

// ErrMsg carries an error.
type ErrMsg struct{ Err error }

// DoneMsg signals that the operation is complete.
type DoneMsg struct{}
