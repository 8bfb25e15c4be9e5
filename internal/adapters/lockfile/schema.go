package lockfile

// poetryLock is the subset of poetry.lock the reader needs.
type poetryLock struct {
	Packages []poetryPackage `toml:"package"`
}

// poetryPackage is one [[package]] table. Poetry 1.x writes `category`, later versions `groups`.
type poetryPackage struct {
	Name     string   `toml:"name"`
	Version  string   `toml:"version"`
	Category string   `toml:"category"`
	Groups   []string `toml:"groups"`
}

// nativeLock is the polyvenv.lock.yaml format.
type nativeLock struct {
	Version  string          `yaml:"version"`
	Packages []nativePackage `yaml:"packages"`
}

type nativePackage struct {
	Name    string   `yaml:"name"`
	Version string   `yaml:"version"`
	Groups  []string `yaml:"groups"`
}
