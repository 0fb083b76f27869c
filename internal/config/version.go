package config

import (
	"context"
	"fmt"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// FallbackVersion is used when the "latest" release lookup fails for any
// reason. The lookup degrades silently; a stale default beats a dead command.
const FallbackVersion = "4.0.6"

const latestLookupTimeout = 2 * time.Second

// latestReleaseClient performs the lookup without following the redirect so
// the Location header stays observable.
func latestReleaseClient() *http.Client {
	return &http.Client{
		Timeout: latestLookupTimeout,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}

// resolveVersion turns the configured version string into a concrete version.
// The literal "latest" triggers a release lookup against the source repo.
func (r Resolver) resolveVersion(ctx context.Context, repo, configured string) (string, *semver.Version, error) {
	versionStr := configured
	if versionStr == "latest" {
		versionStr = r.lookupLatest(ctx, repo)
	}

	version, err := semver.NewVersion(versionStr)
	if err != nil {
		return "", nil, settingError("version", fmt.Sprintf("version %q is not a valid semantic version.", versionStr))
	}
	return versionStr, version, nil
}

// lookupLatest asks the upstream repository for its latest release tag by
// reading the redirect target of the stable /releases/latest/ URL.
func (r Resolver) lookupLatest(ctx context.Context, repo string) string {
	client := r.HTTPClient
	if client == nil {
		client = latestReleaseClient()
	}

	url := fmt.Sprintf("https://github.com/%s/releases/latest/", repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return FallbackVersion
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return FallbackVersion
	}
	defer resp.Body.Close()

	if resp.StatusCode < 300 || resp.StatusCode >= 400 {
		return FallbackVersion
	}
	location := resp.Header.Get("Location")
	if location == "" {
		return FallbackVersion
	}

	tag := path.Base(strings.TrimRight(location, "/"))
	version := strings.TrimPrefix(tag, "v")
	if version == "" {
		return FallbackVersion
	}
	return version
}
