package pipeline

import (
	"encoding/json"
	"path/filepath"
	"strings"

	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/zerr"
)

// Shells an activation descriptor can be rendered for.
const (
	ShellSh   = "sh"
	ShellFish = "fish"
	ShellJSON = "json"
)

// Render formats the descriptor for the given shell. "bash" and "zsh" render as sh.
func Render(d domain.ActivationDescriptor, shell string) (string, error) {
	switch shell {
	case ShellSh, "bash", "zsh", "":
		return renderPosix(d), nil
	case ShellFish:
		return renderFish(d), nil
	case ShellJSON:
		return renderJSON(d)
	default:
		return "", CheckShell(shell)
	}
}

// CheckShell reports whether Render supports the shell.
func CheckShell(shell string) error {
	switch shell {
	case ShellSh, "bash", "zsh", "", ShellFish, ShellJSON:
		return nil
	default:
		return zerr.With(zerr.Wrap(domain.ErrUnknownShell, "cannot render for "+shell), "shell", shell)
	}
}

func renderPosix(d domain.ActivationDescriptor) string {
	var b strings.Builder
	for _, name := range d.Names() {
		b.WriteString("export " + name + "=" + quotePosix(d.Variables[name]) + "\n")
	}
	for _, name := range d.Unset {
		b.WriteString("unset " + name + "\n")
	}
	return b.String()
}

func renderFish(d domain.ActivationDescriptor) string {
	var b strings.Builder
	for _, name := range d.Names() {
		value := d.Variables[name]
		if name == domain.PathVar {
			// fish keeps PATH as a list.
			parts := filepath.SplitList(value)
			quoted := make([]string, len(parts))
			for i, p := range parts {
				quoted[i] = quoteFish(p)
			}
			b.WriteString("set -gx " + name + " " + strings.Join(quoted, " ") + "\n")
			continue
		}
		b.WriteString("set -gx " + name + " " + quoteFish(value) + "\n")
	}
	for _, name := range d.Unset {
		b.WriteString("set -e " + name + "\n")
	}
	return b.String()
}

func renderJSON(d domain.ActivationDescriptor) (string, error) {
	if d.Unset == nil {
		d.Unset = []string{}
	}
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return "", zerr.Wrap(err, "failed to encode activation descriptor")
	}
	return string(data) + "\n", nil
}

func quotePosix(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func quoteFish(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	return "'" + strings.ReplaceAll(s, "'", `\'`) + "'"
}
