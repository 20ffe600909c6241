package data

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

const (
	opListDir   = "listing directory"
	opCreateDir = "creating directory"
	opDeleteDir = "deleting directory"
)

// Dir is a handle on a remote directory. It is immutable and safe to share.
type Dir struct {
	dataPath
}

// NewDir returns a handle for the directory at uri. See File for the accepted
// URI forms.
func NewDir(c *api.Client, uri string) *Dir {
	return &Dir{newDataPath(c, uri)}
}

// Parent returns the enclosing directory, or nil for a root such as
// "data://".
func (d *Dir) Parent() *Dir {
	parent, _ := d.parent()
	return parent
}

// ChildDir returns the directory name inside d.
func (d *Dir) ChildDir(name string) *Dir {
	return NewDir(d.client, d.child(name))
}

// ChildFile returns the file name inside d.
func (d *Dir) ChildFile(name string) *File {
	return NewFile(d.client, d.child(name))
}

// List returns an iterator over the directory contents. No request is made
// until the first call to Next.
func (d *Dir) List() *Listing {
	return newListing(d)
}

type folderItem struct {
	Name string `json:"name"`
	ACL  *ACL   `json:"acl,omitempty"`
}

// Create creates the directory with the given permissions. Its parent must
// exist.
func (d *Dir) Create(ctx context.Context, acl ACL) error {
	parent, ok := d.parent()
	if !ok {
		return &InvalidPathError{URI: d.URI()}
	}
	if acl.Read == nil {
		acl.Read = []string{}
	}

	body, err := json.Marshal(folderItem{Name: d.Basename(), ACL: &acl})
	if err != nil {
		return fmt.Errorf("failed to encode directory creation parameters: %w", err)
	}

	resp, err := d.client.Send(ctx, &api.Request{
		Method:      http.MethodPost,
		Path:        parent.apiPath(),
		Body:        bytes.NewReader(body),
		ContentType: "application/json",
		Op:          opCreateDir,
		Target:      d.URI(),
	})
	if err != nil {
		return err
	}

	switch {
	case api.IsSuccess(resp.StatusCode):
		return nil
	case resp.StatusCode == http.StatusNotFound:
		return &api.NotFoundError{URL: d.URL()}
	default:
		return api.ErrorFromResponse(resp.StatusCode, resp.Body)
	}
}

// DirectoryDeleted reports the outcome of Dir.Delete.
type DirectoryDeleted struct {
	// Deleted is the number of files removed. Some backing stores report
	// success for files that did not exist.
	Deleted uint64 `json:"deleted"`
}

type deletedResponse struct {
	Result *DirectoryDeleted `json:"result"`
}

// Delete removes the directory. A non-empty directory is only removed when
// force is set.
func (d *Dir) Delete(ctx context.Context, force bool) (*DirectoryDeleted, error) {
	var query url.Values
	if force {
		query = url.Values{"force": {"true"}}
	}

	resp, err := d.client.Send(ctx, &api.Request{
		Method: http.MethodDelete,
		Path:   d.apiPath(),
		Query:  query,
		Op:     opDeleteDir,
		Target: d.URI(),
	})
	if err != nil {
		return nil, err
	}

	switch {
	case api.IsSuccess(resp.StatusCode):
		var deleted deletedResponse
		if err := json.Unmarshal(resp.Body, &deleted); err != nil {
			return nil, &api.DecodeError{Context: "directory deletion response", Err: err}
		}
		if deleted.Result == nil {
			return nil, &api.DecodeError{Context: "directory deletion response"}
		}
		return deleted.Result, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, &api.NotFoundError{URL: d.URL()}
	default:
		return nil, api.ErrorFromResponse(resp.StatusCode, resp.Body)
	}
}

// PutFile uploads the local file at localPath into d under its base name.
func (d *Dir) PutFile(ctx context.Context, fs afero.Fs, localPath string) error {
	f, err := fs.Open(localPath)
	if err != nil {
		return fmt.Errorf("opening file for upload '%s': %w", localPath, err)
	}
	defer f.Close()

	return d.ChildFile(filepath.Base(localPath)).Put(ctx, f)
}
