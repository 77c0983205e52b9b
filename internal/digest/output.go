// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package digest

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// FormatTable writes the digest as a human-readable listing to w.
func FormatTable(d types.Digest, w io.Writer) {
	if len(d.Papers) == 0 {
		fmt.Fprintln(w, "No papers found.")
		return
	}

	for i, p := range d.Papers {
		fmt.Fprintf(w, "%d. %s\n", i+1, strings.TrimSpace(p.Title))
		if authors := formatAuthors(p.Authors); authors != "" {
			fmt.Fprintf(w, "   %s\n", authors)
		}
		fmt.Fprintf(w, "   %s\n", p.Link)
		fmt.Fprintf(w, "   %s\n", indent(d.Summaries[i].Text(), "   "))
		fmt.Fprintf(w, "   %s\n\n", d.Citations[i].APA)
	}
	fmt.Fprintf(w, "%d papers\n", len(d.Papers))
}

// FormatJSON writes the digest as indented JSON to w.
func FormatJSON(d types.Digest, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

// FormatYAML writes the digest as YAML to w.
func FormatYAML(d types.Digest, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	defer enc.Close()
	return enc.Encode(d)
}

// FormatBibTeX writes only the BibTeX entries, one block per paper.
func FormatBibTeX(d types.Digest, w io.Writer) {
	for _, c := range d.Citations {
		fmt.Fprintln(w, c.BibTeX)
		fmt.Fprintln(w)
	}
}

func formatAuthors(authors []string) string {
	trimmed := make([]string, 0, len(authors))
	for _, a := range authors {
		if s := strings.TrimSpace(a); s != "" {
			trimmed = append(trimmed, s)
		}
	}
	switch len(trimmed) {
	case 0:
		return ""
	case 1:
		return trimmed[0]
	default:
		return trimmed[0] + " et al."
	}
}

// indent keeps multi-line summaries aligned under their list entry.
func indent(s, prefix string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "\n", "\n"+prefix)
}
