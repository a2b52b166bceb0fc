package clip

import (
	"cmp"
	"fmt"
	"slices"
	"strings"

	"github.com/clipware/clip/pkg/textutil"
)

const usageWidth = 80

// Usage renders the default help text for a command by read-only traversal
// of the tree: synopsis, aliases, sorted child commands, declared arguments,
// and the option table with defaults and choices.
func Usage(c *Command) string {
	var b strings.Builder

	if c.description != "" {
		for _, line := range textutil.Wrap(c.description, usageWidth) {
			b.WriteString(line)
			b.WriteRune('\n')
		}
		b.WriteRune('\n')
	}

	b.WriteString("Usage:\n  ")
	b.WriteString(synopsis(c))
	b.WriteString("\n\n")

	if len(c.aliases) > 0 {
		fmt.Fprintf(&b, "Aliases:\n  %s\n\n", strings.Join(append([]string{c.name}, c.aliases...), ", "))
	}

	if c.children.Len() > 0 {
		b.WriteString("Available Commands:\n")
		writeTable(&b, commandRows(c))
		b.WriteRune('\n')
	}

	if len(c.arguments) > 0 {
		b.WriteString("Arguments:\n")
		writeTable(&b, argumentRows(c))
		b.WriteRune('\n')
	}

	if opts := c.optionScope(); len(opts) > 0 {
		b.WriteString("Options:\n")
		writeTable(&b, optionRows(opts))
		b.WriteRune('\n')
	}

	if c.children.Len() > 0 {
		fmt.Fprintf(&b, "Use %q for more information about a command.\n",
			strings.Join(c.Path(), " ")+" [command] --help")
	}

	return strings.TrimRight(b.String(), "\n")
}

func synopsis(c *Command) string {
	parts := []string{strings.Join(c.Path(), " ")}
	if len(c.optionScope()) > 0 {
		parts = append(parts, "[options]")
	}
	for _, arg := range c.arguments {
		if arg.Required {
			parts = append(parts, "<"+arg.Name+">")
		} else {
			parts = append(parts, "["+arg.Name+"]")
		}
	}
	if c.children.Len() > 0 {
		parts = append(parts, "<command>")
	}
	return strings.Join(parts, " ")
}

type usageRow struct {
	label string
	text  string
}

func commandRows(c *Command) []usageRow {
	cmds := c.children.Commands()
	slices.SortFunc(cmds, func(a, b *Command) int {
		return cmp.Compare(a.name, b.name)
	})
	rows := make([]usageRow, 0, len(cmds))
	for _, sub := range cmds {
		label := sub.name
		if len(sub.aliases) > 0 {
			label += " (" + strings.Join(sub.aliases, ", ") + ")"
		}
		rows = append(rows, usageRow{label: label, text: sub.description})
	}
	return rows
}

func argumentRows(c *Command) []usageRow {
	rows := make([]usageRow, 0, len(c.arguments))
	for _, arg := range c.arguments {
		text := arg.Description
		if arg.Required {
			text = strings.TrimSpace(text + " (required)")
		}
		if len(arg.Choices) > 0 {
			text = strings.TrimSpace(text + fmt.Sprintf(" (one of: %s)", strings.Join(arg.Choices, ", ")))
		}
		rows = append(rows, usageRow{label: arg.Name, text: text})
	}
	return rows
}

func optionRows(opts []*Option) []usageRow {
	sorted := slices.Clone(opts)
	slices.SortFunc(sorted, func(a, b *Option) int {
		return cmp.Compare(a.Name, b.Name)
	})
	rows := make([]usageRow, 0, len(sorted))
	for _, opt := range sorted {
		label := "--" + opt.Name
		if opt.Short != "" {
			label = "-" + opt.Short + ", " + label
		}
		text := opt.Description
		if opt.Required {
			text = strings.TrimSpace(text + " (required)")
		}
		if len(opt.Choices) > 0 {
			text = strings.TrimSpace(text + fmt.Sprintf(" (one of: %s)", strings.Join(opt.Choices, ", ")))
		}
		if opt.Default != nil {
			text = strings.TrimSpace(text + fmt.Sprintf(" (default: %s)", valueText(opt.Default)))
		}
		rows = append(rows, usageRow{label: label, text: text})
	}
	return rows
}

// writeTable renders aligned label/description rows, wrapping descriptions
// to the usage width with continuation lines indented under the text
// column.
func writeTable(b *strings.Builder, rows []usageRow) {
	maxLen := 0
	for _, row := range rows {
		if len(row.label) > maxLen {
			maxLen = len(row.label)
		}
	}
	textCol := maxLen + 4
	wrapWidth := usageWidth - textCol

	for _, row := range rows {
		if row.text == "" {
			fmt.Fprintf(b, "  %s\n", row.label)
			continue
		}
		lines := textutil.Wrap(row.text, wrapWidth)
		fmt.Fprintf(b, "  %s%s\n", textutil.PadRight(row.label, textCol), lines[0])
		for _, line := range lines[1:] {
			fmt.Fprintf(b, "  %s%s\n", strings.Repeat(" ", textCol), line)
		}
	}
}
