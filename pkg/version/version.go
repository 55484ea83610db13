package version

import (
	"fmt"

	"github.com/blang/semver"
)

/*
The variables in this file are replaced with the actual values
during the build with -ldflags "-X ..."
*/

var (
	// Branch or tag of the code
	Branch = "{branch}"
	// Revision of the code
	Revision = "{revision}"
	// Dirty flag shows if the binary is built from a
	// repo with uncommitted changes
	Dirty = "{dirty}"
)

// Version interface
type Version interface {
	Short() string
	String() string
}

type version struct {
	branch   string
	revision string
	dirty    bool
}

func (v *version) String() string {
	s := fmt.Sprintf("Version: %s @Revision: %s", v.branch, v.revision)
	if v.dirty {
		s += " (dirty-repo)"
	}

	return s
}

func (v *version) Short() string {
	rev := v.revision
	if len(rev) > 7 {
		rev = rev[0:7]
	}

	s := fmt.Sprintf("%s@%s", v.branch, rev)
	if v.dirty {
		s += "(D)"
	}
	return s
}

// Current get current version
func Current() Version {
	return &version{
		branch:   Branch,
		revision: Revision,
		dirty:    Dirty != "",
	}
}

// Semver returns the release version if the binary was built from a
// release tag (v1.2.3)
func Semver() (semver.Version, error) {
	return semver.ParseTolerant(Branch)
}
