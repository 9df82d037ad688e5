// Package lp provides the print, printers, options and presets commands. Each
// command resolves its executor, logger and configuration from
// CommandDependencies so tests can substitute stubs for lp, lpstat and
// lpoptions.
package lp
