// Package menu implements the interactive lpx print menu.
//
// The menu is line oriented: it renders the current option values and the
// assembled lp command line, reads one selection per line, and completes
// printer and server names from lpstat while accepting free text when
// discovery fails.
package menu
