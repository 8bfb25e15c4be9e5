package nix

import "time"

// buildResults is the JSON printed by `nix build --json`.
type buildResults []struct {
	DrvPath string            `json:"drvPath"`
	Outputs map[string]string `json:"outputs"`
}

// cacheEntry remembers the store path an installable was realized to.
type cacheEntry struct {
	Installable string    `json:"installable"`
	StorePath   string    `json:"storePath"`
	Timestamp   time.Time `json:"timestamp"`
}
