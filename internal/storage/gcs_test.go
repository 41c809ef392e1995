package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObjectPath(t *testing.T) {
	s := &GCSObjectStore{bucket: "case-files"}

	t.Run("extracts the object name from an upload URL", func(t *testing.T) {
		path, err := s.objectPath("https://storage.googleapis.com/case-files/cases/c1/abc-brief.pdf")
		require.NoError(t, err)
		assert.Equal(t, "cases/c1/abc-brief.pdf", path)
	})

	t.Run("rejects a URL from another bucket", func(t *testing.T) {
		_, err := s.objectPath("https://storage.googleapis.com/other-bucket/cases/c1/abc.pdf")
		assert.Error(t, err)
	})

	t.Run("rejects an unparseable URL", func(t *testing.T) {
		_, err := s.objectPath("://not-a-url")
		assert.Error(t, err)
	})
}
