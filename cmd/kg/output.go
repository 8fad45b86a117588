package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
)

// Colors for human output.
var (
	subtle = color.New(color.FgHiBlack)
	good   = color.New(color.FgGreen)
	bad    = color.New(color.FgRed)
	accent = color.New(color.FgCyan)
)

// outputJSON writes a value as formatted JSON to stdout.
func outputJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// outputHuman writes a human-readable string to stdout.
func outputHuman(format string, args ...interface{}) {
	fmt.Printf(format, args...)
}

// exitWithError outputs an error in the appropriate format (human or JSON) and exits.
func exitWithError(code int, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "%s %s\n", bad.Sprint("error:"), msg)
	} else {
		outputJSON(ErrorResponse{Error: msg})
	}
	os.Exit(code)
}

// ErrorResponse is the JSON shape of a failed command.
type ErrorResponse struct {
	Error string `json:"error"`
}

// StatusResponse is a generic response for commands that return status.
type StatusResponse struct {
	Status string `json:"status"`
	Path   string `json:"path,omitempty"`
}

// cell is one table entry. Its color is applied after padding so escape
// codes never count toward the column width.
type cell struct {
	text  string
	color *color.Color
}

// cells returns uncolored cells.
func cells(texts ...string) []cell {
	out := make([]cell, len(texts))
	for i, t := range texts {
		out[i] = cell{text: t}
	}
	return out
}

// printTable prints rows aligned under headers. Widths are terminal cells,
// so full-width titles take two per character.
func printTable(headers []string, rows [][]cell) {
	if len(rows) == 0 {
		return
	}

	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		for i, c := range row {
			if w := runewidth.StringWidth(c.text); i < len(widths) && w > widths[i] {
				widths[i] = w
			}
		}
	}

	var head, sep strings.Builder
	for i, h := range headers {
		head.WriteString(pad(cell{text: h}, widths[i]))
		sep.WriteString(strings.Repeat("─", widths[i]) + "  ")
	}
	subtle.Println(strings.TrimRight(head.String(), " "))
	subtle.Println(strings.TrimRight(sep.String(), " "))

	for _, row := range rows {
		var line strings.Builder
		for i, c := range row {
			if i < len(widths) {
				line.WriteString(pad(c, widths[i]))
			}
		}
		fmt.Println(strings.TrimRight(line.String(), " "))
	}
}

// pad left-aligns c in a column width cells wide followed by two spaces.
func pad(c cell, width int) string {
	text := c.text
	if c.color != nil {
		text = c.color.Sprint(text)
	}
	return text + strings.Repeat(" ", width-runewidth.StringWidth(c.text)+2)
}

// statusIcon returns a colored check or cross.
func statusIcon(ok bool) string {
	if ok {
		return good.Sprint("✓")
	}
	return bad.Sprint("✗")
}

// fmtFloat formats a coordinate for tables.
func fmtFloat(v float32) string {
	return fmt.Sprintf("%.1f", v)
}
