// Package execshell provides structured helpers for invoking the printing system's tools.
//
// It wraps os/exec behind the CommandRunner interface, exposes ShellExecutor
// for logging lp, lpstat, and lpoptions invocations, and streams standard
// input to lp when a buffer is printed instead of files.
package execshell
