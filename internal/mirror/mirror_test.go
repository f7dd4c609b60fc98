package mirror

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

const testRepo = "owner/repo"

type fakeEntry struct {
	name string
	kind string // file, dir, symlink
}

// fakeGitHub serves the contents API under /api/ and raw files under /raw/.
type fakeGitHub struct {
	t      *testing.T
	server *httptest.Server

	// listings maps a repository path to its entries.
	listings map[string][]fakeEntry
	// files maps a repository path to its content.
	files map[string]string
	// listingStatus and fileStatus override the response status per path.
	listingStatus map[string]int
	fileStatus    map[string]int

	mu         sync.Mutex
	rawHits    int
	refs       []string
	authHeader string
}

func newFakeGitHub(t *testing.T) *fakeGitHub {
	t.Helper()
	f := &fakeGitHub{
		t:             t,
		listings:      map[string][]fakeEntry{},
		files:         map[string]string{},
		listingStatus: map[string]int{},
		fileStatus:    map[string]int{},
	}
	f.server = httptest.NewServer(http.HandlerFunc(f.handle))
	t.Cleanup(f.server.Close)
	return f
}

// snapshot returns the recorded request state under the lock.
func (f *fakeGitHub) snapshot() (refs []string, rawHits int, auth string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.refs...), f.rawHits, f.authHeader
}

func (f *fakeGitHub) addFile(p, content string) {
	f.files[p] = content
}

func (f *fakeGitHub) handle(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.authHeader = r.Header.Get("Authorization")
	f.mu.Unlock()

	switch {
	case strings.HasPrefix(r.URL.Path, "/api/repos/"+testRepo+"/contents"):
		p := strings.TrimPrefix(r.URL.Path, "/api/repos/"+testRepo+"/contents")
		p = strings.Trim(p, "/")
		f.mu.Lock()
		f.refs = append(f.refs, r.URL.Query().Get("ref"))
		f.mu.Unlock()
		f.serveListing(w, p)
	case strings.HasPrefix(r.URL.Path, "/raw/"):
		p := strings.TrimPrefix(r.URL.Path, "/raw/")
		f.mu.Lock()
		f.rawHits++
		f.mu.Unlock()
		if status, ok := f.fileStatus[p]; ok {
			http.Error(w, "boom", status)
			return
		}
		content, ok := f.files[p]
		if !ok {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(content))
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeGitHub) serveListing(w http.ResponseWriter, p string) {
	if status, ok := f.listingStatus[p]; ok {
		w.WriteHeader(status)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")

	// Path naming a single file returns an object, not an array.
	if _, ok := f.files[p]; ok {
		if _, isDir := f.listings[p]; !isDir {
			_ = json.NewEncoder(w).Encode(f.item(p, "file"))
			return
		}
	}

	entries, ok := f.listings[p]
	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"Not Found"}`))
		return
	}

	items := make([]map[string]interface{}, 0, len(entries))
	for _, e := range entries {
		items = append(items, f.item(joinPath(p, e.name), e.kind))
	}
	_ = json.NewEncoder(w).Encode(items)
}

func (f *fakeGitHub) item(p, kind string) map[string]interface{} {
	item := map[string]interface{}{
		"name": filepath.Base(p),
		"path": p,
		"type": kind,
	}
	if kind == "file" {
		item["download_url"] = f.server.URL + "/raw/" + p
	}
	return item
}

func joinPath(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}

func (f *fakeGitHub) mirror(t *testing.T, token string) *Mirror {
	t.Helper()
	m, err := NewGitHubMirror(ClientOptions{
		APIURL: f.server.URL + "/api",
		Token:  token,
	})
	if err != nil {
		t.Fatalf("NewGitHubMirror() error = %v", err)
	}
	return m
}

// standardTree serves {a.txt, sub/b.txt, z.txt}.
func standardTree(t *testing.T) *fakeGitHub {
	f := newFakeGitHub(t)
	f.listings[""] = []fakeEntry{{"a.txt", "file"}, {"sub", "dir"}, {"z.txt", "file"}}
	f.listings["sub"] = []fakeEntry{{"b.txt", "file"}}
	f.addFile("a.txt", "alpha")
	f.addFile("sub/b.txt", "bravo")
	f.addFile("z.txt", "zulu")
	return f
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile(%s) error = %v", path, err)
	}
	return string(data)
}

func TestMirror_Completeness(t *testing.T) {
	f := standardTree(t)
	out := t.TempDir()

	result, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo}, out)
	if err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	for path, want := range map[string]string{
		"a.txt":     "alpha",
		"sub/b.txt": "bravo",
		"z.txt":     "zulu",
	} {
		if got := readFile(t, filepath.Join(out, filepath.FromSlash(path))); got != want {
			t.Errorf("%s content = %q, want %q", path, got, want)
		}
	}

	// depth-first, pre-order, listing order
	wantFiles := []string{
		filepath.Join(out, "a.txt"),
		filepath.Join(out, "sub", "b.txt"),
		filepath.Join(out, "z.txt"),
	}
	if diff := cmp.Diff(wantFiles, result.Files); diff != "" {
		t.Errorf("Result.Files mismatch (-want +got):\n%s", diff)
	}
	if result.FilesDownloaded != 3 || result.FilesSkipped != 0 || result.FilesFailed != 0 {
		t.Errorf("Result = %+v, want 3 downloaded", result)
	}
	if result.Directories != 2 {
		t.Errorf("Result.Directories = %d, want 2", result.Directories)
	}
}

func TestMirror_DefaultsBranchToMain(t *testing.T) {
	f := standardTree(t)

	if _, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo}, t.TempDir()); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	refs, _, _ := f.snapshot()
	if diff := cmp.Diff([]string{"main", "main"}, refs); diff != "" {
		t.Errorf("listing refs mismatch (-want +got):\n%s", diff)
	}
}

func TestMirror_Idempotent(t *testing.T) {
	f := standardTree(t)
	out := t.TempDir()
	m := f.mirror(t, "")
	loc := Location{Repository: testRepo, Branch: "dev"}

	if _, err := m.Mirror(context.Background(), loc, out); err != nil {
		t.Fatalf("first Mirror() error = %v", err)
	}
	_, hits, _ := f.snapshot()

	result, err := m.Mirror(context.Background(), loc, out)
	if err != nil {
		t.Fatalf("second Mirror() error = %v", err)
	}

	if _, after, _ := f.snapshot(); after != hits {
		t.Errorf("second run fetched %d files, want 0", after-hits)
	}
	if result.FilesDownloaded != 0 || result.FilesSkipped != 3 {
		t.Errorf("second run Result = %+v, want 0 downloaded 3 skipped", result)
	}
}

func TestMirror_PreservesExistingFiles(t *testing.T) {
	f := standardTree(t)
	out := t.TempDir()
	existing := filepath.Join(out, "a.txt")
	if err := os.WriteFile(existing, []byte("X"), 0644); err != nil {
		t.Fatal(err)
	}

	result, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo}, out)
	if err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	if got := readFile(t, existing); got != "X" {
		t.Errorf("a.txt content = %q, want preserved %q", got, "X")
	}
	if result.FilesSkipped != 1 || result.FilesDownloaded != 2 {
		t.Errorf("Result = %+v, want 1 skipped 2 downloaded", result)
	}
}

func TestMirror_FileFailureIsRecoverable(t *testing.T) {
	f := standardTree(t)
	f.fileStatus["sub/b.txt"] = http.StatusInternalServerError
	out := t.TempDir()

	result, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo}, out)
	if err != nil {
		t.Fatalf("Mirror() error = %v, want nil", err)
	}

	if got := readFile(t, filepath.Join(out, "a.txt")); got != "alpha" {
		t.Errorf("a.txt content = %q, want %q", got, "alpha")
	}
	if got := readFile(t, filepath.Join(out, "z.txt")); got != "zulu" {
		t.Errorf("z.txt content = %q, want %q", got, "zulu")
	}
	if _, err := os.Stat(filepath.Join(out, "sub", "b.txt")); !os.IsNotExist(err) {
		t.Errorf("sub/b.txt should not exist, Stat error = %v", err)
	}

	if result.FilesFailed != 1 || len(result.Errors) != 1 {
		t.Fatalf("Result = %+v, want exactly one failure", result)
	}
	var fetchErr *FileFetchError
	if !errors.As(result.Errors[0], &fetchErr) {
		t.Fatalf("Result.Errors[0] = %T, want *FileFetchError", result.Errors[0])
	}
	if fetchErr.StatusCode != http.StatusInternalServerError || fetchErr.Path != "sub/b.txt" {
		t.Errorf("FileFetchError = %+v, want status 500 for sub/b.txt", fetchErr)
	}

	// the failed file is retried on the next run
	delete(f.fileStatus, "sub/b.txt")
	if _, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo}, out); err != nil {
		t.Fatalf("resume Mirror() error = %v", err)
	}
	if got := readFile(t, filepath.Join(out, "sub", "b.txt")); got != "bravo" {
		t.Errorf("sub/b.txt content after resume = %q, want %q", got, "bravo")
	}
}

func TestMirror_ListingFailureIsFatal(t *testing.T) {
	f := newFakeGitHub(t)
	f.listings[""] = []fakeEntry{{"a.txt", "file"}, {"first", "dir"}, {"sub", "dir"}, {"z.txt", "file"}}
	f.listings["first"] = []fakeEntry{{"c.txt", "file"}}
	f.listings["sub"] = []fakeEntry{{"b.txt", "file"}}
	f.listingStatus["sub"] = http.StatusNotFound
	f.addFile("a.txt", "alpha")
	f.addFile("first/c.txt", "charlie")
	f.addFile("sub/b.txt", "bravo")
	f.addFile("z.txt", "zulu")
	out := t.TempDir()

	result, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo}, out)
	if err == nil {
		t.Fatal("Mirror() expected error but got none")
	}

	var listErr *RemoteListingError
	if !errors.As(err, &listErr) {
		t.Fatalf("Mirror() error = %T, want *RemoteListingError", err)
	}
	if listErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", listErr.StatusCode)
	}
	if listErr.Location.Path != "sub" {
		t.Errorf("Location.Path = %q, want %q", listErr.Location.Path, "sub")
	}
	if ListingStatus(err) != http.StatusNotFound {
		t.Errorf("ListingStatus() = %d, want 404", ListingStatus(err))
	}

	if _, err := os.Stat(filepath.Join(out, "sub", "b.txt")); !os.IsNotExist(err) {
		t.Errorf("sub/b.txt should not exist, Stat error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(out, "z.txt")); !os.IsNotExist(err) {
		t.Errorf("z.txt after the failed listing should not exist, Stat error = %v", err)
	}
	// siblings written before the failure are kept
	if got := readFile(t, filepath.Join(out, "a.txt")); got != "alpha" {
		t.Errorf("a.txt content = %q, want %q", got, "alpha")
	}
	if got := readFile(t, filepath.Join(out, "first", "c.txt")); got != "charlie" {
		t.Errorf("first/c.txt content = %q, want %q", got, "charlie")
	}
	if result == nil || result.FilesDownloaded != 2 {
		t.Errorf("Result = %+v, want 2 downloaded before failure", result)
	}
}

func TestMirror_RootListingFailure(t *testing.T) {
	f := newFakeGitHub(t)
	f.listingStatus[""] = http.StatusForbidden
	out := filepath.Join(t.TempDir(), "never-created")

	_, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo}, out)
	if got := ListingStatus(err); got != http.StatusForbidden {
		t.Fatalf("ListingStatus() = %d, want 403 (err = %v)", got, err)
	}
	if _, err := os.Stat(out); !os.IsNotExist(err) {
		t.Errorf("output dir should not be created when listing fails, Stat error = %v", err)
	}
}

func TestMirror_Subpath(t *testing.T) {
	f := standardTree(t)
	out := t.TempDir()

	result, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo, Path: "sub"}, out)
	if err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if got := readFile(t, filepath.Join(out, "b.txt")); got != "bravo" {
		t.Errorf("b.txt content = %q, want %q", got, "bravo")
	}
	if result.FilesDownloaded != 1 {
		t.Errorf("Result.FilesDownloaded = %d, want 1", result.FilesDownloaded)
	}
}

func TestMirror_SingleFilePath(t *testing.T) {
	f := standardTree(t)
	out := t.TempDir()

	if _, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo, Path: "z.txt"}, out); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if got := readFile(t, filepath.Join(out, "z.txt")); got != "zulu" {
		t.Errorf("z.txt content = %q, want %q", got, "zulu")
	}
}

func TestMirror_IgnoresOtherEntryKinds(t *testing.T) {
	f := newFakeGitHub(t)
	f.listings[""] = []fakeEntry{{"link", "symlink"}, {"a.txt", "file"}}
	f.addFile("a.txt", "alpha")
	out := t.TempDir()

	result, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo}, out)
	if err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if _, err := os.Lstat(filepath.Join(out, "link")); !os.IsNotExist(err) {
		t.Errorf("symlink entry should not be mirrored, Lstat error = %v", err)
	}
	if result.FilesDownloaded != 1 || result.FilesFailed != 0 {
		t.Errorf("Result = %+v, want 1 downloaded", result)
	}
}

func TestMirror_SendsToken(t *testing.T) {
	f := standardTree(t)

	if _, err := f.mirror(t, "secret").Mirror(context.Background(), Location{Repository: testRepo}, t.TempDir()); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if _, _, auth := f.snapshot(); auth != "token secret" {
		t.Errorf("Authorization = %q, want %q", auth, "token secret")
	}
}

type staticLister []Entry

func (s staticLister) List(ctx context.Context, loc Location) ([]Entry, error) {
	return s, nil
}

func TestMirror_RejectsUnsafeNames(t *testing.T) {
	out := t.TempDir()
	m := New(staticLister{{Name: "../escape.txt", Kind: KindFile, DownloadURL: "http://127.0.0.1:1/x"}}, nil, nil)

	result, err := m.Mirror(context.Background(), Location{Repository: testRepo}, out)
	if err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}
	if result.FilesFailed != 1 {
		t.Errorf("Result.FilesFailed = %d, want 1", result.FilesFailed)
	}
	if _, err := os.Stat(filepath.Join(filepath.Dir(out), "escape.txt")); !os.IsNotExist(err) {
		t.Errorf("escape.txt should not be written outside output dir")
	}
}

func TestMirror_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	EnableMetrics("test", reg)
	t.Cleanup(func() {
		mirrorCount, lastMirrorTimestamp, mirrorLatency, listingCount, filesTotal = nil, nil, nil, nil, nil
	})

	f := standardTree(t)
	f.fileStatus["z.txt"] = http.StatusBadGateway
	out := t.TempDir()
	if err := os.WriteFile(filepath.Join(out, "a.txt"), []byte("X"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := f.mirror(t, "").Mirror(context.Background(), Location{Repository: testRepo}, out); err != nil {
		t.Fatalf("Mirror() error = %v", err)
	}

	tests := []struct {
		outcome string
		want    float64
	}{
		{outcomeDownloaded, 1},
		{outcomeSkipped, 1},
		{outcomeFailed, 1},
	}
	for _, tt := range tests {
		if got := testutil.ToFloat64(filesTotal.WithLabelValues(testRepo, tt.outcome)); got != tt.want {
			t.Errorf("mirror_files_total{outcome=%q} = %v, want %v", tt.outcome, got, tt.want)
		}
	}
	if got := testutil.ToFloat64(listingCount.WithLabelValues(testRepo, "true")); got != 2 {
		t.Errorf("mirror_listing_count{success=true} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(mirrorCount.WithLabelValues(testRepo, "true")); got != 1 {
		t.Errorf("mirror_count{success=true} = %v, want 1", got)
	}
}
