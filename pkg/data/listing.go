package data

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"time"

	"google.golang.org/api/iterator"

	"github.com/hashicorp-forge/algorithmia/pkg/api"
)

// Entry is one item of a directory listing: a *DirEntry or a *FileEntry.
type Entry interface {
	URI() string
	Basename() string

	isEntry()
}

// DirEntry is a subdirectory found by a listing.
type DirEntry struct {
	*Dir
}

// FileEntry is a file found by a listing.
type FileEntry struct {
	*File
	Size         uint64
	LastModified time.Time
}

func (*DirEntry) isEntry()  {}
func (*FileEntry) isEntry() {}

type fileItem struct {
	Filename     string `json:"filename"`
	Size         uint64 `json:"size"`
	LastModified string `json:"last_modified"`
}

type listingPage struct {
	ACL     *ACL         `json:"acl"`
	Folders []folderItem `json:"folders"`
	Files   []fileItem   `json:"files"`
	Marker  *string      `json:"marker"`
}

// Listing iterates over the entries of a directory, fetching pages on demand.
// Within each page directories are returned before files. A Listing must not
// be advanced from several goroutines at once.
//
//	it := dir.List()
//	for {
//		entry, err := it.Next(ctx)
//		if err == iterator.Done {
//			break
//		}
//		if err != nil {
//			return err
//		}
//		fmt.Println(entry.URI())
//	}
type Listing struct {
	dir *Dir

	entries      []Entry
	marker       string
	pagesFetched int
	acl          *ACL

	err error
}

// page is a listing page whose entries have been fully decoded.
type page struct {
	entries []Entry
	marker  string
	acl     *ACL
}

func newListing(d *Dir) *Listing {
	return &Listing{dir: d}
}

// Next returns the next entry. It returns iterator.Done once the listing is
// exhausted. After an error, every call returns the same error.
func (l *Listing) Next(ctx context.Context) (Entry, error) {
	if l.err != nil {
		return nil, l.err
	}

	for {
		if len(l.entries) > 0 {
			entry := l.entries[0]
			l.entries = l.entries[1:]
			return entry, nil
		}

		if l.pagesFetched > 0 && l.marker == "" {
			l.err = iterator.Done
			return nil, l.err
		}

		p, err := l.fetch(ctx)
		if err != nil {
			l.err = err
			return nil, err
		}

		l.entries = p.entries
		l.marker = p.marker
		l.acl = p.acl
		l.pagesFetched++
	}
}

// All returns the remaining entries as a sequence. The sequence stops after
// yielding the first error; exhaustion is not reported as an error.
func (l *Listing) All(ctx context.Context) iter.Seq2[Entry, error] {
	return func(yield func(Entry, error) bool) {
		for {
			entry, err := l.Next(ctx)
			if errors.Is(err, iterator.Done) {
				return
			}
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}

// PagesFetched returns the number of pages fetched so far.
func (l *Listing) PagesFetched() int {
	return l.pagesFetched
}

// ACL returns the permissions reported with the most recently fetched page,
// or nil when none were reported.
func (l *Listing) ACL() *ACL {
	return l.acl
}

func (l *Listing) fetch(ctx context.Context) (*page, error) {
	var query url.Values
	if l.marker != "" {
		query = url.Values{"marker": {l.marker}}
	}

	resp, err := l.dir.client.Send(ctx, &api.Request{
		Method: http.MethodGet,
		Path:   l.dir.apiPath(),
		Query:  query,
		Op:     opListDir,
		Target: l.dir.URI(),
	})
	if err != nil {
		return nil, err
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, &api.NotFoundError{URL: l.dir.URL()}
	case !api.IsSuccess(resp.StatusCode):
		return nil, api.ErrorFromResponse(resp.StatusCode, resp.Body)
	}

	if kind := dataType(resp.Header); kind != "" && kind != dataTypeDirectory {
		return nil, &UnexpectedDataTypeError{Expected: dataTypeDirectory, Actual: kind}
	}

	var raw listingPage
	if err := json.Unmarshal(resp.Body, &raw); err != nil {
		return nil, &api.DecodeError{Context: "directory listing", Err: err}
	}
	return l.decodePage(&raw)
}

// decodePage converts a wire page into entries, directories first. The page
// is rejected as a whole when any entry is invalid.
func (l *Listing) decodePage(raw *listingPage) (*page, error) {
	entries := make([]Entry, 0, len(raw.Folders)+len(raw.Files))
	for _, folder := range raw.Folders {
		entries = append(entries, &DirEntry{Dir: l.dir.ChildDir(folder.Name)})
	}
	for _, file := range raw.Files {
		modified, err := parseTimestamp(file.LastModified)
		if err != nil {
			return nil, &api.DecodeError{
				Context: "directory listing",
				Err:     fmt.Errorf("file %q: %w", file.Filename, err),
			}
		}
		entries = append(entries, &FileEntry{
			File:         l.dir.ChildFile(file.Filename),
			Size:         file.Size,
			LastModified: modified,
		})
	}

	p := &page{
		entries: entries,
		acl:     raw.ACL,
	}
	if raw.Marker != nil {
		p.marker = *raw.Marker
	}
	return p, nil
}
