// Package utils exposes reusable helpers consumed by the lpx commands.
//
// It houses ConfigurationLoader and LoggerFactory, which integrate Viper,
// LPX_* environment variables, and zap logging, plus CommandContextAccessor
// for passing the resolved configuration path and execution flags through
// command contexts.
package utils
