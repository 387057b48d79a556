package report

import (
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"gopkg.in/yaml.v3"
)

// Format selects how a plan is rendered.
type Format string

const (
	FormatText Format = "text"
	FormatYAML Format = "yaml"
)

// ParseFormat accepts "text" or "yaml"; an empty string means text.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatText:
		return FormatText, nil
	case FormatYAML:
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown report format %q", s)
	}
}

// Render writes p to w in the given format.
func Render(w io.Writer, p *Plan, format Format) error {
	switch format {
	case FormatText:
		return renderText(w, p)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(p); err != nil {
			return fmt.Errorf("encoding plan: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func renderText(w io.Writer, p *Plan) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Objectives for %s in %s (%s)\n", p.Side, p.Theater, p.CreatedAt.Format(time.RFC3339))
	fmt.Fprintf(tw, "Farthest from threats:\t%s\n", p.Farthest)
	fmt.Fprintf(tw, "Closest to threats:\t%s\n", p.Closest)
	for _, s := range p.Sections {
		fmt.Fprintf(tw, "\n%s\n", s.Title)
		if len(s.Entries) == 0 {
			fmt.Fprintln(tw, "  (none)")
			continue
		}
		for _, e := range s.Entries {
			fmt.Fprintf(tw, "  %d\t%s\t%s\t%s\n", e.Rank, e.Name, e.Kind, formatAttrs(e.Attrs))
		}
	}
	return tw.Flush()
}

// formatAttrs renders attributes as sorted key=value pairs.
func formatAttrs(attrs map[string]any) string {
	keys := slices.Sorted(maps.Keys(attrs))
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%v", k, attrs[k]))
	}
	return strings.Join(parts, " ")
}
