package mirror

import "strings"

// DefaultBranch is used when a Location carries no branch.
const DefaultBranch = "main"

// EntryKind classifies a remote listing entry.
type EntryKind string

const (
	// KindFile is a regular file with a download URL.
	KindFile EntryKind = "file"
	// KindDir is a directory that is mirrored recursively.
	KindDir EntryKind = "dir"
	// KindOther covers symlinks and submodules, which are not mirrored.
	KindOther EntryKind = "other"
)

// Location identifies a directory (or file) inside a remote repository.
type Location struct {
	// Repository is the "owner/name" identifier.
	Repository string
	// Branch is the branch, tag, or commit to read from.
	Branch string
	// Path is the path inside the repository. Empty means the root.
	Path string
}

// ownerRepo splits Repository on its first slash. The parts are passed to the
// listing API as-is.
func (l Location) ownerRepo() (string, string) {
	owner, repo, _ := strings.Cut(l.Repository, "/")
	return owner, repo
}

// String formats the location as owner/name/path@branch.
func (l Location) String() string {
	s := l.Repository
	if l.Path != "" {
		s += "/" + l.Path
	}
	if l.Branch != "" {
		s += "@" + l.Branch
	}
	return s
}

// Entry is one item of a remote directory listing.
type Entry struct {
	// Name is the base name of the entry.
	Name string `json:"name"`
	// Path is the full path inside the repository.
	Path string `json:"path"`
	// Kind is file, dir, or other.
	Kind EntryKind `json:"kind"`
	// DownloadURL is the raw content URL. Only set for files.
	DownloadURL string `json:"download_url,omitempty"`
	// Size is the file size reported by the API.
	Size int `json:"size"`
}

// Result summarizes one Mirror run.
type Result struct {
	// FilesDownloaded is the number of files written.
	FilesDownloaded int `json:"files_downloaded"`
	// FilesSkipped is the number of files left alone because they already existed.
	FilesSkipped int `json:"files_skipped"`
	// FilesFailed is the number of files whose download failed.
	FilesFailed int `json:"files_failed"`
	// Directories is the number of remote directories listed.
	Directories int `json:"directories"`
	// Files contains the local paths written, in traversal order.
	Files []string `json:"files"`
	// Errors contains the recoverable errors behind FilesFailed.
	Errors []error `json:"-"`
}
