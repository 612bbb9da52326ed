// Package release holds the static CDN mirror table and computes the object
// layout a release publishes to it.
package release

import (
	"fmt"
	"regexp"
	"strings"

	foundationerrors "git.home.luguber.info/inful/docroles/internal/foundation/errors"
)

// Mirror is a CDN bucket and the region it lives in.
type Mirror struct {
	Host   string
	Region string
}

// buckets is ordered: the primary mirror first, then backups.
var buckets = [...]Mirror{
	{Host: "cdn.bokeh.org", Region: "us-east-1"},
	{Host: "cdn-backup.bokeh.org", Region: "us-west-2"},
}

// Buckets returns the mirror table in precedence order. The returned slice
// is a copy.
func Buckets() []Mirror {
	out := make([]Mirror, len(buckets))
	copy(out, buckets[:])
	return out
}

// Primary returns the first mirror.
func Primary() Mirror {
	return buckets[0]
}

const (
	uploadContentType  = "application/javascript"
	uploadCacheControl = "max-age=31536000"
	deploymentsBucket  = "bokeh-deployments"
	deploymentsRegion  = "us-east-1"
)

var (
	bundleNames    = []string{"bokeh", "bokeh-gl", "bokeh-api", "bokeh-widgets", "bokeh-tables", "bokeh-mathjax"}
	bundleSuffixes = []string{"js", "min.js", "esm.js", "esm.min.js"}

	// PEP 440 pre/dev segments: 3.5.0a1, 3.5.0.rc2, 3.5.0.dev3, 3.5.0-dev.1.
	prereleasePattern = regexp.MustCompile(`(?i)(?:a|b|c|rc|alpha|beta|pre|preview|dev)[-_.]?\d*(?:$|[-_.+])`)
	versionPattern    = regexp.MustCompile(`^\d+(?:\.\d+)*(?:[-_.]?[A-Za-z]+[-_.]?\d*)*(?:\+[A-Za-z0-9.]+)?$`)
)

// Upload is one object put to a CDN mirror.
type Upload struct {
	Bucket       string `json:"bucket" yaml:"bucket"`
	Region       string `json:"region" yaml:"region"`
	LocalPath    string `json:"local_path" yaml:"local_path"`
	Key          string `json:"key" yaml:"key"`
	ContentType  string `json:"content_type" yaml:"content_type"`
	CacheControl string `json:"cache_control" yaml:"cache_control"`
}

// IsPrerelease reports whether version carries a pre-release or development
// segment.
func IsPrerelease(version string) bool {
	if i := strings.IndexByte(version, '+'); i >= 0 {
		version = version[:i]
	}
	return prereleasePattern.MatchString(version)
}

// Subdir is the CDN directory a version is published under.
func Subdir(version string) string {
	if IsPrerelease(version) {
		return "dev"
	}
	return "release"
}

// PlanCDNUploads lists every object a release of version puts to the CDN,
// mirror by mirror in table order.
func PlanCDNUploads(version string) ([]Upload, error) {
	if !versionPattern.MatchString(version) {
		return nil, foundationerrors.ValidationError(fmt.Sprintf("invalid release version %q", version)).
			WithContext("version", version).
			Build()
	}
	subdir := Subdir(version)

	plan := make([]Upload, 0, len(buckets)*len(bundleNames)*len(bundleSuffixes))
	for _, m := range buckets {
		for _, name := range bundleNames {
			for _, suffix := range bundleSuffixes {
				plan = append(plan, Upload{
					Bucket:       m.Host,
					Region:       m.Region,
					LocalPath:    fmt.Sprintf("bokehjs/build/js/%s.%s", name, suffix),
					Key:          fmt.Sprintf("bokeh/%s/%s-%s.%s", subdir, name, version, suffix),
					ContentType:  uploadContentType,
					CacheControl: uploadCacheControl,
				})
			}
		}
	}
	return plan, nil
}

// DeploymentTarball is the archive name a release stages for deployment.
func DeploymentTarball(version string) string {
	return fmt.Sprintf("deployment-%s.tgz", version)
}

// DeploymentURI is where DeploymentTarball is stored.
func DeploymentURI(version string) string {
	return fmt.Sprintf("s3://%s/%s", deploymentsBucket, DeploymentTarball(version))
}

// DeploymentRegion is the region of the deployments bucket.
func DeploymentRegion() string {
	return deploymentsRegion
}
