package data

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDataURI(t *testing.T) {
	tests := []struct {
		uri  string
		want string
	}{
		{"data://anowell/foo", "data/anowell/foo"},
		{"data://.my/foo/", "data/.my/foo/"},
		{"dropbox://anowell/foo", "dropbox/anowell/foo"},
		{"s3://bucket", "s3/bucket"},
		{"/anowell/foo", "data/anowell/foo"},
		{"anowell/foo", "data/anowell/foo"},
		{"data://", "data"},
		{"", "data"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			assert.Equal(t, tt.want, parseDataURI(tt.uri))
		})
	}
}

func TestDir_Locations(t *testing.T) {
	client := offlineClient(t)

	dir := NewDir(client, "data://anowell/foo")
	assert.Equal(t, "/v1/connector/data/anowell/foo", dir.URL().Path)
	assert.Equal(t, "data://anowell/foo", dir.URI())
	assert.Equal(t, "data/anowell/foo", dir.Path())
	assert.Equal(t, "foo", dir.Basename())

	assert.Equal(t, "data://anowell/foo", NewDir(client, "/anowell/foo").URI())
	assert.Equal(t, "dropbox://anowell/foo", NewDir(client, "dropbox://anowell/foo").URI())
}

func TestDir_Parent(t *testing.T) {
	client := offlineClient(t)

	tests := []struct {
		uri  string
		want string
	}{
		{"data://anowell/foo", "data://anowell"},
		{"dropbox://anowell/foo", "dropbox://anowell"},
		{"data://anowell/foo/", "data://anowell"},
		{"data://anowell", "data://"},
	}

	for _, tt := range tests {
		t.Run(tt.uri, func(t *testing.T) {
			parent := NewDir(client, tt.uri).Parent()
			require.NotNil(t, parent)
			assert.Equal(t, tt.want, parent.URI())
		})
	}

	assert.Nil(t, NewDir(client, "data://").Parent())
}

func TestDir_RootBasename(t *testing.T) {
	client := offlineClient(t)

	for _, uri := range []string{"data://", "dropbox://", "", "/"} {
		assert.Empty(t, NewDir(client, uri).Basename(), uri)
	}
	assert.Equal(t, "anowell", NewDir(client, "data://anowell").Basename())
}

func TestDir_Children(t *testing.T) {
	client := offlineClient(t)

	assert.Equal(t, "data://a/b/c", NewDir(client, "a/b").ChildDir("c").URI())
	assert.Equal(t, "data://a/b/c", NewDir(client, "a/b/").ChildDir("c").URI())
	assert.Equal(t, "data://a/b/c.txt", NewDir(client, "data://a/b/").ChildFile("c.txt").URI())
	assert.Equal(t, "data://c", NewDir(client, "data://").ChildDir("c").URI())

	file := NewDir(client, ".my/photos").ChildFile("my cat.jpg")
	assert.Equal(t, "/v1/connector/data/.my/photos/my%20cat.jpg", file.URL().EscapedPath())
	assert.Equal(t, "my cat.jpg", file.Basename())
	assert.Equal(t, "data://.my/photos", file.Parent().URI())
}
