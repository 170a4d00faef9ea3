// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: MIT

package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/apex/log"
	"github.com/charmbracelet/lipgloss/v2"
	"github.com/charmbracelet/lipgloss/v2/table"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
	"gopkg.in/yaml.v2"

	"github.com/staranto/txtctl/internal/config"
)

// Formats lists the values accepted by --output.
var Formats = []string{"text", "json", "yaml", "raw"}

// Options controls how rows are written.
type Options struct {
	Output string
	Titles bool
	Color  bool
	// NullText is shown in text output for null values.
	NullText string
}

// OptionsFromCommand reads the output flags of cmd.
func OptionsFromCommand(cmd *cli.Command) Options {
	return Options{
		Output:   cmd.String("output"),
		Titles:   cmd.Bool("titles"),
		Color:    cmd.Bool("color"),
		NullText: "-",
	}
}

// ColorDefault reports whether f is a terminal, which is when --color
// defaults to on.
func ColorDefault(f *os.File) bool {
	return f != nil && term.IsTerminal(int(f.Fd()))
}

// DumpExamples renders a table of example command usages.
func DumpExamples(w io.Writer, examples [][2]string) {
	if len(examples) == 0 {
		return
	}
	if w == nil {
		w = os.Stdout
	}

	var rows [][]string
	for _, ex := range examples {
		rows = append(rows, []string{ex[0], ex[1]})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		Headers().
		Rows(rows...)

	// Set headers and disable the header border for a cleaner look.
	t = t.Headers("Command", "Description").BorderHeader(false)

	fmt.Fprintln(w, t)
}

// SliceDiceSpit filters, sorts and renders rows according to the flags of
// cmd.
func SliceDiceSpit(rows []Row, cmd *cli.Command, w io.Writer) error {
	rows = FilterRows(rows, cmd.String("filter"))
	SortRows(rows, cmd.String("sort"))
	return Emit(w, rows, OptionsFromCommand(cmd))
}

// Emit writes rows in the requested format. An empty format means text.
func Emit(w io.Writer, rows []Row, opts Options) error {
	if w == nil {
		w = os.Stdout
	}

	switch opts.Output {
	case "", "text":
		TableWriter(rows, opts, w)
		return nil
	case "json":
		return writeJSON(w, rows)
	case "yaml":
		return writeYAML(w, rows)
	case "raw":
		for _, r := range rows {
			if _, err := fmt.Fprintf(w, "%s=%s\n", r.Key, r.Value); err != nil {
				return err
			}
		}
		return nil
	}
	return fmt.Errorf("unknown output format %q, must be one of %v", opts.Output, Formats)
}

// writeJSON emits a single object with keys in row order so the output can be
// loaded back as a table.
func writeJSON(w io.Writer, rows []Row) error {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, r := range rows {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(r.Key)
		if err != nil {
			return err
		}
		buf.Write(k)
		buf.WriteByte(':')
		if r.Null {
			buf.WriteString("null")
			continue
		}
		v, err := json.Marshal(r.Value)
		if err != nil {
			return err
		}
		buf.Write(v)
	}
	buf.WriteByte('}')

	var out bytes.Buffer
	if err := json.Indent(&out, buf.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := w.Write(out.Bytes())
	return err
}

func writeYAML(w io.Writer, rows []Row) error {
	doc := make(yaml.MapSlice, 0, len(rows))
	for _, r := range rows {
		var v interface{}
		if !r.Null {
			v = r.Value
		}
		doc = append(doc, yaml.MapItem{Key: r.Key, Value: v})
	}
	if len(doc) == 0 {
		_, err := io.WriteString(w, "{}\n")
		return err
	}
	b, err := yaml.Marshal(doc)
	if err != nil {
		return err
	}
	_, err = w.Write(b)
	return err
}

// TableWriter renders rows in a tabular form honoring color, titles and
// padding options.
func TableWriter(rows []Row, opts Options, w io.Writer) {
	if len(rows) == 0 {
		return
	}

	var (
		headerStyle  = lipgloss.NewStyle().Align(lipgloss.Left)
		cellStyle    = lipgloss.NewStyle().Padding(0, 0).Align(lipgloss.Left)
		evenRowStyle = cellStyle
		oddRowStyle  = cellStyle
	)

	if opts.Color {
		headerColor, evenColor, oddColor := getColors("colors")

		headerStyle = headerStyle.Foreground(lipgloss.Color(headerColor))
		evenRowStyle = evenRowStyle.Foreground(lipgloss.Color(evenColor))
		oddRowStyle = oddRowStyle.Foreground(lipgloss.Color(oddColor))
	}

	pad, _ := config.GetInt("padding", 0)
	log.Debugf("padding: %v", pad)

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		v := r.Value
		if r.Null {
			v = opts.NullText
		}
		cells = append(cells, []string{r.Key, v})
	}

	t := table.New().
		BorderBottom(false).
		BorderTop(false).
		BorderLeft(false).
		BorderRight(false).
		Border(lipgloss.HiddenBorder()).
		StyleFunc(func(row, col int) lipgloss.Style {
			var style lipgloss.Style
			switch {
			case row == table.HeaderRow:
				style = headerStyle
			case row%2 == 0:
				style = evenRowStyle
			default:
				style = oddRowStyle
			}

			if col > 0 {
				style = style.PaddingLeft(pad)
			}

			return style
		}).
		Headers().
		Rows(cells...)

	if opts.Titles {
		// https://github.com/charmbracelet/lipgloss/issues/261
		t = t.Headers("KEY", "VALUE").BorderHeader(false)
	}
	fmt.Fprintln(w, t)
}

// getColors returns configured color values for table rendering.
func getColors(key string) (header string, even string, odd string) {
	header, _ = config.GetString(fmt.Sprintf("%s.title", key), "#f6be00")
	even, _ = config.GetString(fmt.Sprintf("%s.even", key), "#ffffff")
	odd, _ = config.GetString(fmt.Sprintf("%s.odd", key), "#00c8f0")
	return
}
