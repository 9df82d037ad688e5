// Package ui provides helpers for formatting human-readable console output.
//
// ConsoleCommandEventLogger turns lp, lpstat and lpoptions lifecycle events into
// concise console lines, and StatusReporter implementations show the transient
// "Printing…" line that is replaced by the final outcome of a print request.
package ui
