// Package pathutils expands home directory shortcuts and validates file
// operands before they are handed to the print command.
package pathutils
