package pmpatch

import (
	"os"
	"path/filepath"
	"strings"
)

// Locator resolves a module path-form (e.g. "Foo/Bar.pm") to the absolute
// path of the installed module file.
type Locator interface {
	Locate(modulePath string) (string, bool)
}

// IncludeLocator searches an ordered list of include directories, the way
// the interpreter itself resolves modules. The first hit wins.
type IncludeLocator struct {
	dirs []string
}

func NewIncludeLocator(dirs []string) *IncludeLocator {
	return &IncludeLocator{dirs: dirs}
}

func (l *IncludeLocator) Locate(modulePath string) (string, bool) {
	rel := filepath.FromSlash(modulePath)
	for _, dir := range l.dirs {
		if dir == "" {
			continue
		}

		candidate := filepath.Join(dir, rel)
		info, err := os.Stat(candidate)
		if err != nil || info.IsDir() {
			continue
		}

		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		return abs, true
	}
	return "", false
}

// EnvIncludeDirs returns the module search directories named by PERL5LIB.
func EnvIncludeDirs() []string {
	raw := os.Getenv("PERL5LIB")
	if raw == "" {
		return nil
	}

	var dirs []string
	for _, d := range strings.Split(raw, string(os.PathListSeparator)) {
		if d != "" {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
