package deploy

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"k8s.io/apimachinery/pkg/util/validation"
)

// ErrInvalidIdentity is returned when a repository URL does not yield a
// usable resource name.
var ErrInvalidIdentity = errors.New("invalid deployment identity")

// Generator derives the unique deployment name for a repository URL. The
// name is used verbatim as the name and selector label of all three
// resources of the triad.
type Generator interface {
	Generate(repoURL string) (string, error)
}

// TimestampGenerator appends a millisecond timestamp to the repository
// base name so that repeated deployments of the same repository get
// distinct names. Two requests within the same millisecond can still
// collide.
type TimestampGenerator struct {
	// Now defaults to time.Now.
	Now func() time.Time
}

func (g *TimestampGenerator) Generate(repoURL string) (string, error) {
	now := time.Now
	if g.Now != nil {
		now = g.Now
	}

	name := fmt.Sprintf("%s-%d", BaseName(repoURL), now().UTC().UnixMilli())
	if errs := validation.IsDNS1123Label(name); len(errs) > 0 {
		return "", fmt.Errorf("%w: %q: %s", ErrInvalidIdentity, name, strings.Join(errs, ", "))
	}
	return name, nil
}

// BaseName extracts the final path segment of the repository URL and
// strips a trailing extension, so ".../foo.git" and ".../foo" both yield
// "foo". A trailing slash yields an empty base name, which Generate
// rejects.
func BaseName(repoURL string) string {
	segment := repoURL
	if i := strings.LastIndex(segment, "/"); i >= 0 {
		segment = segment[i+1:]
	}
	if i := strings.LastIndex(segment, "."); i >= 0 {
		segment = segment[:i]
	}
	return strings.ToLower(segment)
}
