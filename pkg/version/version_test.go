package version

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVersionString(t *testing.T) {
	v := &version{branch: "v1.2.0", revision: "0123456789abcdef"}
	require.Equal(t, "Version: v1.2.0 @Revision: 0123456789abcdef", v.String())
	require.Equal(t, "v1.2.0@0123456", v.Short())

	v = &version{branch: "master", revision: "abc", dirty: true}
	require.Equal(t, "master@abc(D)", v.Short())
}

func TestSemver(t *testing.T) {
	old := Branch
	defer func() { Branch = old }()

	Branch = "v1.4.2"
	v, err := Semver()
	require.NoError(t, err)
	require.Equal(t, uint64(4), v.Minor)

	Branch = "master"
	_, err = Semver()
	require.Error(t, err)
}
