// Package cli constructs the lpx command-line interface, wiring the Cobra
// command hierarchy, configuration loader, and structured logging primitives
// around the print commands in cmd/cli/lp.
package cli
