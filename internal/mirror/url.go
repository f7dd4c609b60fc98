package mirror

import (
	"fmt"
	"strings"
)

// ParseLocation parses a repository reference into a Location.
// Supported formats:
//   - owner/repo
//   - owner/repo/path
//   - github.com/owner/repo[/path]
//   - https://github.com/owner/repo[/path]
//   - https://github.com/owner/repo/tree/branch[/path]
//   - git@github.com:owner/repo.git
//
// Branch is left empty unless the reference names one (/tree/branch).
func ParseLocation(ref string) (Location, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Location{}, fmt.Errorf("repository cannot be empty")
	}

	if strings.HasPrefix(ref, "git@github.com:") {
		ref = strings.TrimPrefix(ref, "git@github.com:")
		return parseOwnerRepoPath(strings.TrimSuffix(ref, ".git"))
	}

	for _, prefix := range []string{"https://", "http://"} {
		ref = strings.TrimPrefix(ref, prefix)
	}
	ref = strings.TrimPrefix(ref, "github.com/")
	ref = strings.TrimSuffix(ref, "/")

	// owner/repo/tree/branch/path
	if ownerRepo, branchPath, ok := strings.Cut(ref, "/tree/"); ok {
		loc, err := parseOwnerRepoPath(ownerRepo)
		if err != nil {
			return Location{}, err
		}
		branch, p, _ := strings.Cut(branchPath, "/")
		if branch == "" {
			return Location{}, fmt.Errorf("missing branch after /tree/: %s", ref)
		}
		loc.Branch = branch
		loc.Path = p
		return loc, nil
	}

	return parseOwnerRepoPath(ref)
}

// parseOwnerRepoPath parses "owner/repo" or "owner/repo/path" format.
func parseOwnerRepoPath(s string) (Location, error) {
	parts := strings.Split(s, "/")
	if len(parts) < 2 {
		return Location{}, fmt.Errorf("invalid repository format, expected owner/repo: %s", s)
	}
	if parts[0] == "" || parts[1] == "" {
		return Location{}, fmt.Errorf("owner and repo cannot be empty: %s", s)
	}

	loc := Location{Repository: parts[0] + "/" + strings.TrimSuffix(parts[1], ".git")}
	if len(parts) > 2 {
		loc.Path = strings.Join(parts[2:], "/")
	}
	return loc, nil
}
