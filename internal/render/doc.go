// Package render formats order listings for the terminal.
package render
