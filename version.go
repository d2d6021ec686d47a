package apidocs

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/Gobd/apidocs/rules"
)

var (
	// ErrInvalidVersion is returned when a version string cannot be parsed.
	ErrInvalidVersion = errors.New("invalid api version")
	// ErrDuplicateVersion is returned when two descriptions share a group name.
	ErrDuplicateVersion = errors.New("duplicate api version")
)

// APIVersion identifies one published revision of the API.
type APIVersion struct {
	Major  int
	Minor  int
	Status string // optional, e.g. "beta"
}

// String renders the version as major.minor with an optional -status suffix.
func (v APIVersion) String() string {
	s := strconv.Itoa(v.Major) + "." + strconv.Itoa(v.Minor)
	if v.Status != "" {
		s += "-" + v.Status
	}
	return s
}

// GroupName returns the default document name for v: "v1", "v1.1", "v2-beta".
func (v APIVersion) GroupName() string {
	s := "v" + strconv.Itoa(v.Major)
	if v.Minor != 0 {
		s += "." + strconv.Itoa(v.Minor)
	}
	if v.Status != "" {
		s += "-" + v.Status
	}
	return s
}

// Less orders versions by major, minor, then status; a version without a
// status sorts after its pre-releases.
func (v APIVersion) Less(o APIVersion) bool {
	if v.Major != o.Major {
		return v.Major < o.Major
	}
	if v.Minor != o.Minor {
		return v.Minor < o.Minor
	}
	if v.Status == "" || o.Status == "" {
		return v.Status != "" && o.Status == ""
	}
	return v.Status < o.Status
}

// ParseVersion parses "1", "1.0", "v2" or "2.1-beta".
func ParseVersion(s string) (APIVersion, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(s), "v")
	if raw == "" {
		return APIVersion{}, fmt.Errorf("%w: %q", ErrInvalidVersion, s)
	}

	var v APIVersion
	if i := strings.IndexByte(raw, '-'); i >= 0 {
		v.Status = raw[i+1:]
		raw = raw[:i]
		if v.Status == "" {
			return APIVersion{}, fmt.Errorf("%w: %q: empty status", ErrInvalidVersion, s)
		}
	}

	majorStr, minorStr, hasMinor := strings.Cut(raw, ".")
	major, err := strconv.Atoi(majorStr)
	if err != nil || major < 0 {
		return APIVersion{}, fmt.Errorf("%w: %q: bad major version", ErrInvalidVersion, s)
	}
	v.Major = major

	if hasMinor {
		minor, err := strconv.Atoi(minorStr)
		if err != nil || minor < 0 {
			return APIVersion{}, fmt.Errorf("%w: %q: bad minor version", ErrInvalidVersion, s)
		}
		v.Minor = minor
	}
	return v, nil
}

// MustParseVersion is like ParseVersion but panics on error.
func MustParseVersion(s string) APIVersion {
	v, err := ParseVersion(s)
	if err != nil {
		panic(err)
	}
	return v
}

// Description is the metadata of one API version as seen by the
// documentation: its version, the document (group) name, and whether it is
// deprecated.
type Description struct {
	Version    APIVersion `json:"version"`
	GroupName  string     `json:"group_name"`
	Deprecated bool       `json:"deprecated"`
}

// NewDescription describes v under its default group name.
func NewDescription(v APIVersion, deprecated bool) Description {
	return Description{Version: v, GroupName: v.GroupName(), Deprecated: deprecated}
}

func (d *Description) Rules() []*rules.FieldRules {
	return []*rules.FieldRules{
		rules.Field(&d.GroupName, rules.Required, rules.Length(1, 64)),
	}
}

// Provider exposes the known API version descriptions.
type Provider interface {
	Descriptions() []Description
}

// StaticProvider is a Provider over a fixed list.
type StaticProvider struct {
	descs []Description
}

// NewProvider validates descs and returns them ordered by version.
func NewProvider(descs ...Description) (*StaticProvider, error) {
	seen := make(map[string]struct{}, len(descs))
	sorted := make([]Description, 0, len(descs))
	for i := range descs {
		d := descs[i]
		if err := rules.Validate(&d); err != nil {
			return nil, fmt.Errorf("version %s: %w", d.Version, err)
		}
		if _, ok := seen[d.GroupName]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateVersion, d.GroupName)
		}
		seen[d.GroupName] = struct{}{}
		sorted = append(sorted, d)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Version.Less(sorted[j].Version)
	})
	return &StaticProvider{descs: sorted}, nil
}

// Descriptions returns a copy of the descriptions.
func (p *StaticProvider) Descriptions() []Description {
	return append([]Description(nil), p.descs...)
}
