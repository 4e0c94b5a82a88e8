package backend

import (
	"context"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/metafates/gache"
	"github.com/reelplayer/reel/backend/filesystem"
	"github.com/samber/lo"
	log "github.com/sirupsen/logrus"
)

const updateCheckCacheLifetime = 24 * time.Hour

type UpdateChecker struct {
	OnUpdatedVersionFound func()

	versionTagFound  string
	latestReleaseURL string
	appVersionTag    string
	lastCheckedTag   *string

	client *retryablehttp.Client
	cache  *gache.Cache[string]
}

// NewUpdateChecker creates an update checker which resolves the latest
// release tag by following the redirect of latestReleaseURL.
// The resolved tag is cached in cacheDir between launches.
func NewUpdateChecker(appVersionTag, latestReleaseURL, cacheDir string, lastCheckedTag *string) UpdateChecker {
	client := retryablehttp.NewClient()
	client.RetryMax = 2
	client.RetryWaitMax = 10 * time.Second
	client.Logger = nil
	return UpdateChecker{
		appVersionTag:    appVersionTag,
		latestReleaseURL: latestReleaseURL,
		lastCheckedTag:   lastCheckedTag,
		client:           client,
		cache: gache.New[string](&gache.Options{
			Path:       filepath.Join(cacheDir, "latest-version.json"),
			Lifetime:   updateCheckCacheLifetime,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (u *UpdateChecker) Start(ctx context.Context, interval time.Duration) {
	go func() {
		u.checkForUpdate() // check once at startup
		t := time.NewTicker(interval)
		for {
			select {
			case <-ctx.Done():
				t.Stop()
				return
			case <-t.C:
				u.checkForUpdate()
			}
		}
	}()
}

func (u *UpdateChecker) VersionTagFound() string {
	return u.versionTagFound
}

func (u *UpdateChecker) LatestReleaseURL() *url.URL {
	url, _ := url.Parse(u.latestReleaseURL)
	return url
}

func (u *UpdateChecker) checkForUpdate() {
	t := u.CheckLatestVersionTag()
	if t == "" || t == *u.lastCheckedTag || !IsNewerVersion(t, u.appVersionTag) {
		return
	}
	u.versionTagFound = t
	if u.OnUpdatedVersionFound != nil {
		u.OnUpdatedVersionFound()
	}
}

// CheckLatestVersionTag returns the tag of the latest release, or "" if it
// could not be determined.
func (u *UpdateChecker) CheckLatestVersionTag() string {
	if tag, expired, err := u.cache.Get(); err == nil && !expired && tag != "" {
		return tag
	}
	resp, err := u.client.Head(u.latestReleaseURL)
	if err != nil {
		log.Printf("failed to check for newest version: %s", err.Error())
		return ""
	}
	resp.Body.Close()
	tag := tagFromReleaseURL(resp.Request.URL.String())
	if tag != "" {
		if err := u.cache.Set(tag); err != nil {
			log.Debugf("failed to cache version tag: %v", err)
		}
	}
	return tag
}

func tagFromReleaseURL(url string) string {
	url = strings.TrimSuffix(url, "/")
	idx := strings.LastIndex(url, "/")
	if idx < 0 || idx >= len(url)-1 {
		return ""
	}
	tag := url[idx+1:]
	if tag == "latest" {
		// redirect not followed
		return ""
	}
	return tag
}

// IsNewerVersion reports whether tag names a later version than current.
// Tags are dotted numeric versions with an optional "v" prefix; anything
// after a '-' is ignored.
func IsNewerVersion(tag, current string) bool {
	a, b := parseVersion(tag), parseVersion(current)
	for _, p := range lo.Zip2(a, b) {
		if p.A != p.B {
			return p.A > p.B
		}
	}
	return false
}

func parseVersion(v string) []int {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	v, _, _ = strings.Cut(v, "-")
	parts := strings.Split(v, ".")
	return lo.Map(parts, func(p string, _ int) int {
		n, _ := strconv.Atoi(p)
		return n
	})
}
