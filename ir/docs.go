package ir

import (
	"strings"
)

// Docs holds the documentation of one object or field, split into lines meant
// for every target language and lines addressed to a single one.
type Docs struct {
	// Doc keeps the unconditional lines, verbatim, in source order.
	Doc []string `json:"doc"`
	// TaggedDocs keeps the lines written as `\tag rest-of-line`, grouped per
	// tag in source order. Marker and tag are stripped; the rest of the line
	// is stored as written, leading whitespace included.
	TaggedDocs map[string][]string `json:"tagged_docs"`
}

const docTagMarker = `\`

func docsFromRaw(lines []string) Docs {
	docs := Docs{
		Doc:        []string{},
		TaggedDocs: map[string][]string{},
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, docTagMarker) {
			docs.Doc = append(docs.Doc, line)
			continue
		}
		tag := strings.Fields(trimmed)[0]
		key := strings.TrimPrefix(tag, docTagMarker)
		docs.TaggedDocs[key] = append(docs.TaggedDocs[key], trimmed[len(tag):])
	}
	return docs
}
