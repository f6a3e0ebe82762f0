package pmpatch

import (
	"regexp"
	"strings"
)

const (
	namespaceSeparator = "::"
	moduleExtension    = ".pm"
)

// patchNameRegex matches pm-<Module-Name>-<version>-<topic>.patch. Module
// name words start with a letter, the version starts with a digit and the
// topic contains no dots, so the three segments never overlap.
var patchNameRegex = regexp.MustCompile(`^pm-([A-Za-z][A-Za-z0-9]*(?:-[A-Za-z][A-Za-z0-9]*)*)-([0-9][0-9._]*)-([^.]+)\.patch$`)

// PatchFile is the decomposed form of a candidate patch filename. The
// Version is carried for reporting only and never compared.
type PatchFile struct {
	Filename    string
	ModuleDash  string
	ModuleColon string
	ModulePath  string
	Version     string
	Topic       string
}

// ParsePatchName decomposes a filename following the patch naming
// convention. ok is false when the name is not a candidate; that is a
// skip signal, not an error.
func ParsePatchName(filename string) (PatchFile, bool) {
	m := patchNameRegex.FindStringSubmatch(filename)
	if m == nil {
		return PatchFile{}, false
	}

	dash := m[1]
	return PatchFile{
		Filename:    filename,
		ModuleDash:  dash,
		ModuleColon: strings.ReplaceAll(dash, "-", namespaceSeparator),
		ModulePath:  strings.ReplaceAll(dash, "-", "/") + moduleExtension,
		Version:     m[2],
		Topic:       m[3],
	}, true
}
