package data

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

func TestFile_Put(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/v1/connector/data/.my/docs/hello.txt", r.URL.Path)
		assert.Equal(t, "Simple simTestKey", r.Header.Get("Authorization"))

		body, err := io.ReadAll(r.Body)
		assert.NoError(t, err)
		assert.Equal(t, "hello world", string(body))
		w.WriteHeader(http.StatusOK)
	})

	err := NewFile(client, "data://.my/docs/hello.txt").Put(context.Background(), strings.NewReader("hello world"))
	assert.NoError(t, err)
}

func TestFile_Get(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("X-Data-Type", "file")
		w.Header().Set("Last-Modified", "Wed, 21 Oct 2015 07:28:00 GMT")
		_, _ = w.Write([]byte("hello world"))
	})

	data, err := NewFile(client, ".my/docs/hello.txt").Get(context.Background())
	require.NoError(t, err)

	assert.Equal(t, uint64(11), data.Size)
	assert.True(t, data.LastModified.Equal(time.Date(2015, 10, 21, 7, 28, 0, 0, time.UTC)), data.LastModified)

	text, err := data.String()
	require.NoError(t, err)
	assert.Equal(t, "hello world", text)
}

func TestFile_Get_DefaultLastModified(t *testing.T) {
	for _, header := range []string{"", "not a date"} {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			if header != "" {
				w.Header().Set("Last-Modified", header)
			}
			_, _ = w.Write([]byte{0x01, 0x02})
		})

		data, err := NewFile(client, ".my/docs/blob").Get(context.Background())
		require.NoError(t, err)

		b, err := data.Bytes()
		require.NoError(t, err)
		assert.Equal(t, []byte{0x01, 0x02}, b)
		assert.Equal(t, time.Date(2015, 3, 14, 8, 0, 0, 0, time.UTC), data.LastModified)
	}
}

func TestFile_Get_WithoutDataType(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("untyped"))
	})

	data, err := NewFile(client, ".my/docs/plain.txt").Get(context.Background())
	require.NoError(t, err)

	text, err := data.String()
	require.NoError(t, err)
	assert.Equal(t, "untyped", text)
}

func TestFileData_BytesOverstatedSize(t *testing.T) {
	data := &FileData{
		Size:       1 << 40,
		ReadCloser: io.NopCloser(strings.NewReader("small")),
	}

	b, err := data.Bytes()
	require.NoError(t, err)
	assert.Equal(t, "small", string(b))
	assert.LessOrEqual(t, cap(b), maxPreallocate+bytes.MinRead*2)
}

func TestFile_Get_Errors(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
		check   func(t *testing.T, err error)
	}{
		{
			name: "Directory",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("X-Data-Type", "directory")
				_, _ = w.Write([]byte(`{"folders":[]}`))
			},
			check: func(t *testing.T, err error) {
				var unexpected *UnexpectedDataTypeError
				require.True(t, errors.As(err, &unexpected))
				assert.Equal(t, "file", unexpected.Expected)
				assert.Equal(t, "directory", unexpected.Actual)
			},
		},
		{
			name: "Not found",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNotFound)
			},
			check: func(t *testing.T, err error) {
				var notFound *api.NotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, "/v1/connector/data/.my/docs/hello.txt", notFound.URL.Path)
			},
		},
		{
			name: "Unauthorized",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusUnauthorized)
				_, _ = w.Write([]byte(`{"error":"authorization required"}`))
			},
			check: func(t *testing.T, err error) {
				var remote *api.RemoteError
				require.True(t, errors.As(err, &remote))
				assert.Equal(t, http.StatusUnauthorized, remote.StatusCode)
			},
		},
		{
			name: "No content",
			handler: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusNoContent)
			},
			check: func(t *testing.T, err error) {
				var status *api.StatusError
				require.True(t, errors.As(err, &status))
				assert.Equal(t, http.StatusNoContent, status.StatusCode)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, tt.handler)

			data, err := NewFile(client, ".my/docs/hello.txt").Get(context.Background())
			require.Error(t, err)
			assert.Nil(t, data)
			tt.check(t, err)
		})
	}
}

func TestFile_Delete(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		if strings.HasSuffix(r.URL.Path, "/missing.txt") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(`{"result":{"deleted":1}}`))
	})

	dir := NewDir(client, ".my/docs")
	assert.NoError(t, dir.ChildFile("hello.txt").Delete(context.Background()))

	err := dir.ChildFile("missing.txt").Delete(context.Background())
	var notFound *api.NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
