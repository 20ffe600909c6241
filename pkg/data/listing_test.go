package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/iterator"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

// pagedDirectory serves pages in order, chaining them with markers.
func pagedDirectory(t *testing.T, pages []listingPage, requests *atomic.Int32) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/connector/data/.my/photos", r.URL.Path)
		requests.Add(1)

		idx := 0
		if marker := r.URL.Query().Get("marker"); marker != "" {
			_, err := fmt.Sscanf(marker, "page-%d", &idx)
			assert.NoError(t, err)
		}
		if idx >= len(pages) {
			t.Errorf("unexpected marker %q", r.URL.Query().Get("marker"))
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		page := pages[idx]
		if idx+1 < len(pages) {
			next := fmt.Sprintf("page-%d", idx+1)
			page.Marker = &next
		}

		w.Header().Set("X-Data-Type", "directory")
		_ = json.NewEncoder(w).Encode(page)
	}
}

func collect(t *testing.T, it *Listing) []string {
	t.Helper()

	var uris []string
	for {
		entry, err := it.Next(context.Background())
		if errors.Is(err, iterator.Done) {
			return uris
		}
		require.NoError(t, err)

		switch e := entry.(type) {
		case *DirEntry:
			uris = append(uris, "dir:"+e.URI())
		case *FileEntry:
			uris = append(uris, "file:"+e.URI())
		}
	}
}

func TestListing_Pages(t *testing.T) {
	pages := []listingPage{
		{
			ACL:     &ACL{Read: []string{"user://*"}},
			Folders: []folderItem{{Name: "cats"}, {Name: "dogs"}},
			Files: []fileItem{
				{Filename: "a.jpg", Size: 10, LastModified: "2016-01-02T03:04:05.000Z"},
			},
		},
		{
			Files: []fileItem{
				{Filename: "b.jpg", Size: 20, LastModified: "2016-01-02T03:04:06.000Z"},
				{Filename: "c.jpg", Size: 30, LastModified: "2016-01-02T03:04:07.000Z"},
			},
		},
		{
			Folders: []folderItem{{Name: "birds"}},
		},
	}

	var requests atomic.Int32
	client := newTestClient(t, pagedDirectory(t, pages, &requests))

	it := NewDir(client, "data://.my/photos").List()
	assert.Equal(t, 0, it.PagesFetched())
	assert.Nil(t, it.ACL())

	got := collect(t, it)
	assert.Equal(t, []string{
		"dir:data://.my/photos/cats",
		"dir:data://.my/photos/dogs",
		"file:data://.my/photos/a.jpg",
		"file:data://.my/photos/b.jpg",
		"file:data://.my/photos/c.jpg",
		"dir:data://.my/photos/birds",
	}, got)
	assert.Equal(t, 3, it.PagesFetched())
	assert.Equal(t, int32(3), requests.Load())
	assert.Nil(t, it.ACL())

	// Exhaustion is idempotent and issues no further requests.
	for i := 0; i < 3; i++ {
		_, err := it.Next(context.Background())
		assert.ErrorIs(t, err, iterator.Done)
	}
	assert.Equal(t, int32(3), requests.Load())
}

func TestListing_FileEntry(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagedDirectory(t, []listingPage{{
		ACL:   &ACL{Read: []string{}},
		Files: []fileItem{{Filename: "a.jpg", Size: 42, LastModified: "2016-01-02T03:04:05.000Z"}},
	}}, &requests))

	it := NewDir(client, ".my/photos").List()
	entry, err := it.Next(context.Background())
	require.NoError(t, err)

	file, ok := entry.(*FileEntry)
	require.True(t, ok)
	assert.Equal(t, uint64(42), file.Size)
	assert.True(t, file.LastModified.Equal(time.Date(2016, 1, 2, 3, 4, 5, 0, time.UTC)))
	assert.Equal(t, "a.jpg", file.Basename())

	require.NotNil(t, it.ACL())
	assert.Empty(t, it.ACL().Read)
}

func TestListing_EmptyDirectory(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagedDirectory(t, []listingPage{{}}, &requests))

	it := NewDir(client, ".my/photos").List()
	_, err := it.Next(context.Background())
	assert.ErrorIs(t, err, iterator.Done)
	assert.Equal(t, 1, it.PagesFetched())
}

func TestListing_EmptyMarkerIsAbsent(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		_, _ = w.Write([]byte(`{"folders":[{"name":"a"}],"marker":""}`))
	})

	it := NewDir(client, ".my/photos").List()
	_, err := it.Next(context.Background())
	require.NoError(t, err)
	_, err = it.Next(context.Background())
	assert.ErrorIs(t, err, iterator.Done)
	assert.Equal(t, int32(1), requests.Load())
}

func TestListing_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "Not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			check: func(t *testing.T, err error) {
				var notFound *api.NotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, "/v1/connector/data/.my/photos", notFound.URL.Path)
			},
		},
		{
			name: "File instead of directory",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Data-Type", "file")
				_, _ = w.Write([]byte("binary"))
			},
			check: func(t *testing.T, err error) {
				var unexpected *UnexpectedDataTypeError
				require.True(t, errors.As(err, &unexpected))
				assert.Equal(t, "directory", unexpected.Expected)
				assert.Equal(t, "file", unexpected.Actual)
			},
		},
		{
			name: "Undecodable page",
			handler: func(w http.ResponseWriter, r *http.Request) {
				_, _ = w.Write([]byte(`{"folders":"nope"}`))
			},
			check: func(t *testing.T, err error) {
				var decErr *api.DecodeError
				require.True(t, errors.As(err, &decErr))
				assert.Equal(t, "directory listing", decErr.Context)
			},
		},
		{
			name: "Error envelope",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusForbidden)
				_, _ = w.Write([]byte(`{"error":"permission denied"}`))
			},
			check: func(t *testing.T, err error) {
				var remote *api.RemoteError
				require.True(t, errors.As(err, &remote))
				assert.Equal(t, "permission denied", remote.Message)
				assert.Equal(t, http.StatusForbidden, remote.StatusCode)
			},
		},
		{
			name: "Raw status",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte("oops"))
			},
			check: func(t *testing.T, err error) {
				var status *api.StatusError
				require.True(t, errors.As(err, &status))
				assert.Equal(t, "oops", status.Body)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var requests atomic.Int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				requests.Add(1)
				tt.handler(w, r)
			})

			it := NewDir(client, ".my/photos").List()
			_, err := it.Next(context.Background())
			require.Error(t, err)
			tt.check(t, err)

			// The error is sticky and no retry is made.
			_, again := it.Next(context.Background())
			assert.Equal(t, err, again)
			assert.Equal(t, int32(1), requests.Load())
			assert.Equal(t, 0, it.PagesFetched())
		})
	}
}

func TestListing_InvalidTimestampRejectsPage(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Header().Set("X-Data-Type", "directory")
		_, _ = w.Write([]byte(`{
			"folders":[{"name":"a"}],
			"files":[
				{"filename":"ok.txt","size":1,"last_modified":"2016-01-02T03:04:05Z"},
				{"filename":"bad.txt","size":1,"last_modified":"not a time"}
			]
		}`))
	})

	it := NewDir(client, ".my/x").List()
	entry, err := it.Next(context.Background())
	assert.Nil(t, entry)

	var decErr *api.DecodeError
	require.True(t, errors.As(err, &decErr))
	assert.Equal(t, "directory listing", decErr.Context)
	assert.Contains(t, err.Error(), "bad.txt")

	_, again := it.Next(context.Background())
	assert.Equal(t, err, again)
	assert.Equal(t, 0, it.PagesFetched())
	assert.Equal(t, int32(1), requests.Load())
}

func TestListing_WithoutDataType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"folders":[{"name":"a"}]}`))
	})

	assert.Equal(t, []string{"dir:data://.my/photos/a"}, collect(t, NewDir(client, ".my/photos").List()))
}

func TestListing_ErrorOnLaterPage(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("marker") == "" {
			_, _ = w.Write([]byte(`{"folders":[{"name":"a"}],"marker":"next"}`))
			return
		}
		w.WriteHeader(http.StatusBadGateway)
	})

	it := NewDir(client, ".my/photos").List()

	var seen []string
	var lastErr error
	for entry, err := range it.All(context.Background()) {
		if err != nil {
			lastErr = err
			continue
		}
		seen = append(seen, entry.URI())
	}

	assert.Equal(t, []string{"data://.my/photos/a"}, seen)
	var status *api.StatusError
	require.True(t, errors.As(lastErr, &status))
	assert.Equal(t, http.StatusBadGateway, status.StatusCode)
}

func TestListing_All(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, pagedDirectory(t, []listingPage{
		{Folders: []folderItem{{Name: "x"}}},
		{Files: []fileItem{{Filename: "y", LastModified: "2016-01-02T03:04:05Z"}}},
	}, &requests))

	var uris []string
	for entry, err := range NewDir(client, ".my/photos").List().All(context.Background()) {
		require.NoError(t, err)
		uris = append(uris, entry.URI())
	}
	assert.Equal(t, []string{"data://.my/photos/x", "data://.my/photos/y"}, uris)
}
