package deploy_test

import (
	"testing"
	"time"

	"github.com/rassi0429/miragex.app/internal/deploy"
	"github.com/stretchr/testify/assert"
)

func TestBaseName(t *testing.T) {
	testCases := []struct {
		url  string
		want string
	}{
		{"https://example.com/foo.git", "foo"},
		{"https://example.com/foo", "foo"},
		{"git@github.com:org/bar.git", "bar"},
		{"https://example.com/org/My-Repo.git", "my-repo"},
		{"https://example.com/foo/", ""},
		{"", ""},
	}

	for _, tc := range testCases {
		assert.Equal(t, tc.want, deploy.BaseName(tc.url), "url: %s", tc.url)
	}
}

func TestTimestampGenerator(t *testing.T) {
	t.Run("appends timestamp to base name", func(t *testing.T) {
		gen := &deploy.TimestampGenerator{Now: func() time.Time { return time.UnixMilli(1700000000000) }}
		name, err := gen.Generate("https://example.com/foo.git")
		assert.NoError(t, err)
		assert.Equal(t, "foo-1700000000000", name)
	})

	t.Run("distinct timestamps never collide", func(t *testing.T) {
		ts := int64(1700000000000)
		gen := &deploy.TimestampGenerator{Now: func() time.Time {
			ts++
			return time.UnixMilli(ts)
		}}
		first, err := gen.Generate("https://example.com/foo.git")
		assert.NoError(t, err)
		second, err := gen.Generate("https://example.com/foo.git")
		assert.NoError(t, err)
		assert.NotEqual(t, first, second)
	})

	t.Run("trailing slash yields invalid identity", func(t *testing.T) {
		gen := &deploy.TimestampGenerator{}
		_, err := gen.Generate("https://example.com/foo/")
		assert.ErrorIs(t, err, deploy.ErrInvalidIdentity)
	})

	t.Run("name violating the platform grammar is rejected", func(t *testing.T) {
		gen := &deploy.TimestampGenerator{}
		_, err := gen.Generate("https://example.com/my_repo.git")
		assert.ErrorIs(t, err, deploy.ErrInvalidIdentity)
	})
}
