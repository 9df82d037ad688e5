package cli

import (
	"context"
	"runtime/debug"
	"strings"
)

const (
	developmentVersionConstant = "(devel)"
	unknownVersionConstant     = "dev"
)

// resolveBuildVersion reports the module version stamped by go install, or "dev".
func resolveBuildVersion(context.Context) string {
	buildInformation, available := debug.ReadBuildInfo()
	if !available {
		return unknownVersionConstant
	}
	version := strings.TrimSpace(buildInformation.Main.Version)
	if len(version) == 0 || version == developmentVersionConstant {
		return unknownVersionConstant
	}
	return version
}
