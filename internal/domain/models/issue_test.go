package models

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueDescriptor_IssueBody(t *testing.T) {
	t.Run("should place each value on its labeled line in fixed order", func(t *testing.T) {
		d := IssueDescriptor{
			URL:     "http://example.com/",
			Browser: "Firefox 38.0",
			OS:      "Mac OS X 10.10",
			Body:    "The layout is broken.",
		}

		body := d.IssueBody()

		lines := strings.Split(body, "\n")
		require.Len(t, lines, 6)
		assert.Equal(t, "", lines[0])
		assert.Equal(t, "**URL**: http://example.com/", lines[1])
		assert.Equal(t, "**Browser / Version**: Firefox 38.0", lines[2])
		assert.Equal(t, "**Operating System**: Mac OS X 10.10", lines[3])
		assert.Equal(t, "", lines[4])
		assert.Equal(t, "The layout is broken.", lines[5])
	})

	t.Run("should keep multi-line free text intact", func(t *testing.T) {
		d := IssueDescriptor{
			URL:  "http://example.com/",
			Body: "line one\nline two",
		}

		assert.True(t, strings.HasSuffix(d.IssueBody(), "\nline one\nline two"))
	})
}
