package mirror

import (
	"context"

	gh "github.com/google/go-github/v32/github"

	"github.com/udesa-vision/i308-utils/internal/debug"
)

// Lister enumerates the entries at one location of a remote repository.
type Lister interface {
	// List returns the entries in the order the remote provides them.
	// Any unsuccessful response is reported as *RemoteListingError.
	List(ctx context.Context, loc Location) ([]Entry, error)
}

// ContentsLister implements Lister with the GitHub contents API.
type ContentsLister struct {
	client *gh.Client
}

// NewContentsLister creates a ContentsLister using client.
func NewContentsLister(client *gh.Client) *ContentsLister {
	return &ContentsLister{client: client}
}

// List calls GET /repos/{owner}/{repo}/contents/{path}?ref={branch}.
// When the path names a single file the result holds just that file.
func (l *ContentsLister) List(ctx context.Context, loc Location) ([]Entry, error) {
	owner, repo := loc.ownerRepo()
	debug.Debug("[mirror] Listing %s", loc)

	file, dir, resp, err := l.client.Repositories.GetContents(ctx, owner, repo, loc.Path,
		&gh.RepositoryContentGetOptions{Ref: loc.Branch})
	if err != nil {
		status := 0
		if resp != nil {
			status = resp.StatusCode
		}
		return nil, NewRemoteListingError(loc, status, err)
	}

	if file != nil {
		return []Entry{toEntry(file)}, nil
	}

	entries := make([]Entry, 0, len(dir))
	for _, c := range dir {
		entries = append(entries, toEntry(c))
	}
	debug.Debug("[mirror] %s: %d entries", loc, len(entries))
	return entries, nil
}

func toEntry(c *gh.RepositoryContent) Entry {
	kind := KindOther
	switch c.GetType() {
	case "file":
		kind = KindFile
	case "dir":
		kind = KindDir
	}
	return Entry{
		Name:        c.GetName(),
		Path:        c.GetPath(),
		Kind:        kind,
		DownloadURL: c.GetDownloadURL(),
		Size:        c.GetSize(),
	}
}
