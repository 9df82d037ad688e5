// Package printing assembles lp invocations.
//
// Arguments keeps the ordered flag list the interactive menu edits, Group
// enumerates the fixed choices for orientation, quality, sides, paper size and
// pages per sheet, and OptionDiscoverer and DestinationCatalog query lpoptions
// and lpstat for printer-specific options, printers and servers. Service runs
// lp, streaming a buffer to its standard input when no files are given, and
// records the last-used arguments in a DefaultsStore.
package printing
