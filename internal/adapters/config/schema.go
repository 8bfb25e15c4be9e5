package config

// Polyfile represents the structure of the polyvenv.yaml configuration file.
type Polyfile struct {
	Version   string            `yaml:"version"`
	Root      string            `yaml:"root"`
	Primary   string            `yaml:"primary"`
	Runtimes  map[string]string `yaml:"runtimes"`
	Venv      string            `yaml:"venv"`
	Lockfile  string            `yaml:"lockfile"`
	Groups    []string          `yaml:"groups"`
	Strict    bool              `yaml:"strict"`
	Verify    *bool             `yaml:"verify"`
	Isolation IsolationDTO      `yaml:"isolation"`
}

// IsolationDTO represents the isolation section of the configuration.
type IsolationDTO struct {
	Variables []string `yaml:"variables"`
	Pinned    []string `yaml:"pinned"`
}
