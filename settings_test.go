package pmpatch

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultSettings(t *testing.T) {
	t.Setenv("PERL5LIB", "/opt/perl/lib")

	s := DefaultSettings()
	require.Equal(t, "patch", s.PatchProgram)
	require.Equal(t, 1, s.StripLevel)
	require.Equal(t, []string{"/opt/perl/lib"}, s.IncludeDirs)
}

func TestLoadSettingsFromFile(t *testing.T) {
	t.Setenv("PERL5LIB", "")
	dir := t.TempDir()
	path := mustWriteFile(t, dir, "settings.toml", `
patch_program = "gpatch"
strip_level = 0
include_dirs = ["/usr/local/lib/perl5"]
`)

	s, err := LoadSettings(path)
	require.NoError(t, err)
	require.Equal(t, "gpatch", s.PatchProgram)
	require.Equal(t, 0, s.StripLevel)
	require.Equal(t, []string{"/usr/local/lib/perl5"}, s.IncludeDirs)
}

func TestLoadSettingsExplicitFileMustExist(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

func TestLoadSettingsEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // keep the host config out
	t.Setenv("PMPATCH_PATCH_PROGRAM", "busybox-patch")
	t.Setenv("PMPATCH_STRIP_LEVEL", "2")

	s, err := LoadSettings("")
	require.NoError(t, err)
	require.Equal(t, "busybox-patch", s.PatchProgram)
	require.Equal(t, 2, s.StripLevel)
}

func TestLoadSettingsDefaultLocationMissingIsFine(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("PERL5LIB", "")

	s, err := LoadSettings("")
	require.NoError(t, err)
	require.Equal(t, "patch", s.PatchProgram)
	require.Equal(t, 1, s.StripLevel)
	require.Empty(t, s.IncludeDirs)
}
