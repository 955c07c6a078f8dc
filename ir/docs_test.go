package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocsFromRaw(t *testing.T) {
	{
		docs := docsFromRaw([]string{"general line", `\py python-only line`})
		assert.Equal(t, []string{"general line"}, docs.Doc)
		assert.Equal(t, map[string][]string{"py": {" python-only line"}}, docs.TaggedDocs)
	}
	{
		docs := docsFromRaw([]string{
			" Shared first line.",
			` \py Pythonic detail.`,
			` \py More pythonic detail.`,
			` \cpp RAII detail.`,
			" Shared last line.",
		})
		assert.Equal(t, []string{" Shared first line.", " Shared last line."}, docs.Doc)
		assert.Equal(
			t,
			map[string][]string{
				"py":  {" Pythonic detail.", " More pythonic detail."},
				"cpp": {" RAII detail."},
			},
			docs.TaggedDocs,
		)
	}
	{
		// A marker-only line keeps its tag with an empty remainder.
		docs := docsFromRaw([]string{`\py`})
		assert.Empty(t, docs.Doc)
		assert.Equal(t, map[string][]string{"py": {""}}, docs.TaggedDocs)
	}
	{
		docs := docsFromRaw(nil)
		assert.Empty(t, docs.Doc)
		assert.Empty(t, docs.TaggedDocs)
	}
}
