package data

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

const (
	opPutFile    = "writing file"
	opGetFile    = "downloading file"
	opDeleteFile = "deleting file"
)

// File is a handle on a remote file. It is immutable and safe to share.
//
// Data URIs take the forms "data://.my/dir/file.txt" or
// "dropbox://dir/file.txt" for other connectors. A path without a scheme,
// with or without a leading slash, is in the "data" connector.
type File struct {
	dataPath
}

// NewFile returns a handle for the file at uri.
func NewFile(c *api.Client, uri string) *File {
	return &File{newDataPath(c, uri)}
}

// Parent returns the directory containing the file, or nil when the URI has
// no parent.
func (f *File) Parent() *Dir {
	parent, _ := f.parent()
	return parent
}

// FileData is a downloaded file. The caller must close it.
type FileData struct {
	// Size in bytes, or 0 when the server did not report it.
	Size uint64
	// LastModified is the server timestamp of the last write.
	LastModified time.Time

	io.ReadCloser
}

// maxPreallocate caps the buffer reserved up front from the reported size.
// Larger content still reads in full.
const maxPreallocate = 64 << 20

// Bytes reads the remaining content and closes the file.
func (d *FileData) Bytes() ([]byte, error) {
	defer d.Close()

	var buf bytes.Buffer
	buf.Grow(int(min(d.Size, maxPreallocate)))
	if _, err := buf.ReadFrom(d.ReadCloser); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// String reads the remaining content as text and closes the file.
func (d *FileData) String() (string, error) {
	b, err := d.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Put writes body to the file, replacing any previous content.
func (f *File) Put(ctx context.Context, body io.Reader) error {
	resp, err := f.client.Send(ctx, &api.Request{
		Method:      http.MethodPut,
		Path:        f.apiPath(),
		Body:        body,
		ContentType: "application/octet-stream",
		Op:          opPutFile,
		Target:      f.URI(),
	})
	if err != nil {
		return err
	}
	return f.statusError(resp.StatusCode, resp.Body)
}

// Get downloads the file.
func (f *File) Get(ctx context.Context) (*FileData, error) {
	resp, err := f.client.Do(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   f.apiPath(),
		Op:     opGetFile,
		Target: f.URI(),
	})
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		defer resp.Body.Close()
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, &api.RequestError{Op: opGetFile, Target: f.URI(), Err: fmt.Errorf("failed to read response: %w", err)}
		}
		if resp.StatusCode == http.StatusNotFound {
			return nil, &api.NotFoundError{URL: f.URL()}
		}
		return nil, api.ErrorFromResponse(resp.StatusCode, body)
	}

	if kind := dataType(resp.Header); kind != "" && kind != dataTypeFile {
		resp.Body.Close()
		return nil, &UnexpectedDataTypeError{Expected: dataTypeFile, Actual: kind}
	}

	var size uint64
	if resp.ContentLength > 0 {
		size = uint64(resp.ContentLength)
	}
	return &FileData{
		Size:         size,
		LastModified: lastModified(resp.Header),
		ReadCloser:   resp.Body,
	}, nil
}

// Delete removes the file.
func (f *File) Delete(ctx context.Context) error {
	resp, err := f.client.Send(ctx, &api.Request{
		Method: http.MethodDelete,
		Path:   f.apiPath(),
		Op:     opDeleteFile,
		Target: f.URI(),
	})
	if err != nil {
		return err
	}
	return f.statusError(resp.StatusCode, resp.Body)
}

func (f *File) statusError(statusCode int, body []byte) error {
	switch {
	case api.IsSuccess(statusCode):
		return nil
	case statusCode == http.StatusNotFound:
		return &api.NotFoundError{URL: f.URL()}
	default:
		return api.ErrorFromResponse(statusCode, body)
	}
}
