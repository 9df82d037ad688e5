package printing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/temirov/lpx/internal/execshell"
)

const (
	statusServerFlagConstant            = "-h"
	statusDestinationsFlagConstant      = "-e"
	statusAcceptingFlagConstant         = "-a"
	statusDefaultFlagConstant           = "-d"
	statusServerLookupFlagConstant      = "-H"
	defaultDestinationPrefixConstant    = "system default destination:"
	destinationsFailureTemplateConstant = "%w: %v"
)

// DestinationCatalog lists printers and print servers through lpstat.
type DestinationCatalog struct {
	executor          StatusExecutor
	configuredServers []string
	queryTimeout      time.Duration
}

// NewDestinationCatalog constructs a DestinationCatalog. configuredServers are
// offered alongside the server lpstat reports.
func NewDestinationCatalog(executor StatusExecutor, configuredServers []string, queryTimeout time.Duration) (*DestinationCatalog, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &DestinationCatalog{
		executor:          executor,
		configuredServers: append([]string{}, configuredServers...),
		queryTimeout:      queryTimeout,
	}, nil
}

// Printers lists destinations with lpstat -e, falling back to lpstat -a.
func (catalog *DestinationCatalog) Printers(executionContext context.Context, server string) ([]string, error) {
	printers, listError := catalog.query(executionContext, server, statusDestinationsFlagConstant, parseDestinationListing)
	if len(printers) > 0 {
		return printers, nil
	}

	acceptingPrinters, acceptingError := catalog.query(executionContext, server, statusAcceptingFlagConstant, parseAcceptingListing)
	if len(acceptingPrinters) > 0 {
		return acceptingPrinters, nil
	}

	for _, candidateError := range []error{acceptingError, listError} {
		if candidateError != nil {
			return []string{}, fmt.Errorf(destinationsFailureTemplateConstant, ErrNoDestinations, candidateError)
		}
	}
	return []string{}, ErrNoDestinations
}

// DefaultPrinter reports the system default destination, or "" when none is set.
func (catalog *DestinationCatalog) DefaultPrinter(executionContext context.Context, server string) (string, error) {
	defaults, queryError := catalog.query(executionContext, server, statusDefaultFlagConstant, parseDefaultDestination)
	if queryError != nil {
		return "", queryError
	}
	if len(defaults) == 0 {
		return "", nil
	}
	return defaults[0], nil
}

// Servers combines the server lpstat -H reports with configured servers.
func (catalog *DestinationCatalog) Servers(executionContext context.Context) ([]string, error) {
	reportedServers, queryError := catalog.query(executionContext, "", statusServerLookupFlagConstant, parseDestinationListing)
	servers := deduplicate(append(reportedServers, catalog.configuredServers...))
	if len(servers) > 0 {
		return servers, nil
	}
	if queryError != nil {
		return []string{}, fmt.Errorf(destinationsFailureTemplateConstant, ErrNoDestinations, queryError)
	}
	return []string{}, ErrNoDestinations
}

func (catalog *DestinationCatalog) query(executionContext context.Context, server string, flag string, parse func(string) []string) ([]string, error) {
	queryContext, cancel := withQueryTimeout(executionContext, catalog.queryTimeout)
	defer cancel()

	arguments := []string{}
	if trimmedServer := strings.TrimSpace(server); len(trimmedServer) > 0 {
		arguments = append(arguments, statusServerFlagConstant, trimmedServer)
	}
	arguments = append(arguments, flag)

	result, executionError := catalog.executor.ExecutePrinterStatus(queryContext, execshell.CommandDetails{Arguments: arguments})
	if executionError != nil {
		return []string{}, executionError
	}
	return parse(result.StandardOutput), nil
}

func parseDestinationListing(output string) []string {
	destinations := []string{}
	for _, line := range strings.Split(output, "\n") {
		if trimmedLine := strings.TrimSpace(line); len(trimmedLine) > 0 {
			destinations = append(destinations, trimmedLine)
		}
	}
	return deduplicate(destinations)
}

func parseAcceptingListing(output string) []string {
	destinations := []string{}
	for _, line := range strings.Split(output, "\n") {
		if fields := strings.Fields(line); len(fields) > 0 {
			destinations = append(destinations, fields[0])
		}
	}
	return deduplicate(destinations)
}

func parseDefaultDestination(output string) []string {
	for _, line := range strings.Split(output, "\n") {
		trimmedLine := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmedLine, defaultDestinationPrefixConstant) {
			continue
		}
		if destination := strings.TrimSpace(strings.TrimPrefix(trimmedLine, defaultDestinationPrefixConstant)); len(destination) > 0 {
			return []string{destination}
		}
	}
	return []string{}
}

func deduplicate(values []string) []string {
	unique := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmedValue := strings.TrimSpace(value)
		if len(trimmedValue) == 0 {
			continue
		}
		if _, exists := seen[trimmedValue]; exists {
			continue
		}
		seen[trimmedValue] = struct{}{}
		unique = append(unique, trimmedValue)
	}
	return unique
}
