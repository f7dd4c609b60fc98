package mirror

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"
	"time"

	gh "github.com/google/go-github/v32/github"
)

// DefaultAPIURL is the public GitHub REST API endpoint.
const DefaultAPIURL = "https://api.github.com/"

// ClientOptions configures the HTTP clients used for listing and downloads.
type ClientOptions struct {
	// Token is the optional personal access token.
	Token string
	// APIURL overrides the REST API base URL (GitHub Enterprise, tests).
	APIURL string
	// Timeout is the per-request timeout. Zero means no timeout.
	Timeout time.Duration
	// Transport is the base round tripper. Nil means http.DefaultTransport.
	Transport http.RoundTripper
}

// tokenTransport adds the token authorization header to every request.
type tokenTransport struct {
	token string
	base  http.RoundTripper
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	r := req.Clone(req.Context())
	r.Header.Set("Authorization", "token "+t.token)
	return t.base.RoundTrip(r)
}

// NewHTTPClient builds the client used for both API and raw content requests.
func NewHTTPClient(opts ClientOptions) *http.Client {
	transport := opts.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	if opts.Token != "" {
		transport = &tokenTransport{token: opts.Token, base: transport}
	}
	return &http.Client{
		Transport: transport,
		Timeout:   opts.Timeout,
	}
}

// NewAPIClient creates a go-github client rooted at opts.APIURL.
func NewAPIClient(httpClient *http.Client, apiURL string) (*gh.Client, error) {
	client := gh.NewClient(httpClient)
	if apiURL == "" || apiURL == DefaultAPIURL {
		return client, nil
	}

	u, err := url.Parse(apiURL)
	if err != nil {
		return nil, fmt.Errorf("invalid API URL %q: %w", apiURL, err)
	}
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	client.BaseURL = u
	return client, nil
}

// NewGitHubMirror wires a Mirror against the GitHub contents API.
func NewGitHubMirror(opts ClientOptions) (*Mirror, error) {
	httpClient := NewHTTPClient(opts)
	apiClient, err := NewAPIClient(httpClient, opts.APIURL)
	if err != nil {
		return nil, err
	}
	return New(NewContentsLister(apiClient), httpClient, nil), nil
}

// TokenFromEnv retrieves a GitHub token.
// Priority: GITHUB_TOKEN env > GH_TOKEN env > gh auth token command
func TokenFromEnv() string {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token
	}

	if _, err := exec.LookPath("gh"); err == nil {
		output, err := exec.Command("gh", "auth", "token").Output()
		if err == nil {
			if token := strings.TrimSpace(string(output)); token != "" {
				return token
			}
		}
	}

	return ""
}
