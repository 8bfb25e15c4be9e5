package domain

import "strings"

// Command is an external program invocation.
type Command struct {
	// Name is the executable, resolved against PATH from Env when not absolute.
	Name string
	// Args are passed after the name.
	Args []string
	// Env is the complete environment as KEY=VALUE pairs.
	Env []string
	// Dir is the working directory. Empty means the current one.
	Dir string
}

// String renders the command line for logs and error metadata.
func (c Command) String() string {
	return strings.Join(append([]string{c.Name}, c.Args...), " ")
}
