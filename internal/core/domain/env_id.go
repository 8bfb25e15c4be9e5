package domain

import (
	"slices"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// GenerateProvisionID creates a deterministic identifier for a provisioning input:
// the runtimes, the primary, the lock digest and the requested groups.
// Two runs with the same identifier produce the same environment.
func GenerateProvisionID(runtimes RuntimeSet, primary, lockDigest string, groups []string, strict bool) string {
	sortedGroups := slices.Clone(groups)
	slices.Sort(sortedGroups)
	sortedGroups = slices.Compact(sortedGroups)

	var builder strings.Builder
	for _, r := range runtimes {
		builder.WriteString(r.Version)
		builder.WriteString("=")
		builder.WriteString(r.ExecutablePath)
		builder.WriteString(";")
	}
	builder.WriteString("primary:")
	builder.WriteString(primary)
	builder.WriteString(";lock:")
	builder.WriteString(lockDigest)
	builder.WriteString(";groups:")
	builder.WriteString(strings.Join(sortedGroups, ","))
	builder.WriteString(";strict:")
	builder.WriteString(strconv.FormatBool(strict))

	return strconv.FormatUint(xxhash.Sum64String(builder.String()), 16)
}
