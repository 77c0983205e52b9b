// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package cite formats citation strings from paper metadata. Formatting is
// pure: no I/O, and it always produces strings, even from degenerate input.
package cite

import (
	"fmt"
	"strings"

	"github.com/pdiddy/paper-digest/pkg/types"
)

// noDate is the APA year placeholder when the publication date is unusable.
const noDate = "n.d."

// Format renders APA and BibTeX citation strings for one paper.
func Format(p types.Paper) types.Citation {
	authorStr := strings.Join(p.Authors, ", ")
	year := publicationYear(p.Published)
	key := bibKey(p.ID)

	apa := fmt.Sprintf("%s (%s). %s. arXiv. %s", authorStr, year, p.Title, p.Link)

	bibtex := fmt.Sprintf(`@article{%s,
  title = {%s},
  author = {%s},
  year = {%s},
  howpublished = {arXiv:%s},
  url = {%s}
}`, key, p.Title, authorStr, year, key, p.Link)

	return types.Citation{APA: apa, BibTeX: bibtex}
}

// publicationYear returns the first four characters of the published
// timestamp, or "n.d." when the timestamp is too short to carry a year.
func publicationYear(published string) string {
	if len(published) < 4 {
		return noDate
	}
	return published[:4]
}

// bibKey returns the final path segment of the paper ID. An ID without a
// slash is its own key.
func bibKey(id string) string {
	if idx := strings.LastIndex(id, "/"); idx >= 0 {
		return id[idx+1:]
	}
	return id
}
