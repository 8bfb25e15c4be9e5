package domain

// InstalledPackage is a package present in the managed environment.
type InstalledPackage struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

// Key returns the normalized package name.
func (p InstalledPackage) Key() InternedString {
	return NewInternedString(NormalizeName(p.Name))
}

// toolingPackages are seeded into every environment by the venv module and run the installer
// itself. Keys are normalized names.
var toolingPackages = map[string]struct{}{
	"pip":        {},
	"setuptools": {},
	"wheel":      {},
}

// IsToolingPackage reports whether name is one of the packaging tools the environment needs
// to install anything. Strict synchronization never removes them and upgrades replace them in
// place.
func IsToolingPackage(name string) bool {
	_, ok := toolingPackages[NormalizeName(name)]
	return ok
}
