// Package format renders resolved env values for printing.
// It supports the simple, shell, export, json and yaml list formats.
package format
