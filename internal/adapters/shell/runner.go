// Package shell runs external programs for the other adapters.
package shell

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/creack/pty"
	"go.trai.ch/polyvenv/internal/core/domain"
	"go.trai.ch/polyvenv/internal/core/ports"
	"go.trai.ch/zerr"
)

// tailLines is the number of trailing output lines attached to a failed command's error.
const tailLines = 20

// Runner implements ports.CommandRunner using os/exec and pty.
type Runner struct {
	logger ports.Logger
}

// NewRunner creates a new Runner.
func NewRunner(logger ports.Logger) *Runner {
	return &Runner{logger: logger}
}

// Output runs the command with pipes and returns its standard output.
func (r *Runner) Output(ctx context.Context, command domain.Command) ([]byte, error) {
	cmd := r.prepare(ctx, command)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return stdout.Bytes(), commandError(err, command, stderr.String())
	}
	return stdout.Bytes(), nil
}

// Stream runs the command on a pseudo-terminal and writes its combined output to w
// one line at a time. Without a pseudo-terminal it falls back to pipes.
func (r *Runner) Stream(ctx context.Context, command domain.Command, w io.Writer) error {
	if w == nil {
		w = io.Discard
	}

	lines := &lineWriter{out: w}
	cmd := r.prepare(ctx, command)

	ptmx, err := pty.Start(cmd)
	if err != nil {
		r.logger.Warn("pseudo-terminal unavailable, streaming " + command.Name + " through pipes")
		return r.streamPipes(ctx, command, lines)
	}

	ioDone := make(chan struct{})
	go func() {
		defer close(ioDone)
		defer func() { _ = ptmx.Close() }()
		_, _ = io.Copy(lines, ptmx)
	}()

	waitErr := cmd.Wait()
	<-ioDone
	_ = lines.Close()

	if waitErr != nil {
		return commandError(waitErr, command, lines.tail())
	}
	return nil
}

func (r *Runner) streamPipes(ctx context.Context, command domain.Command, lines *lineWriter) error {
	cmd := r.prepare(ctx, command)
	cmd.Stdout = lines
	cmd.Stderr = lines

	err := cmd.Run()
	_ = lines.Close()
	if err != nil {
		return commandError(err, command, lines.tail())
	}
	return nil
}

func (r *Runner) prepare(ctx context.Context, command domain.Command) *exec.Cmd {
	cmdEnv := resolveEnvironment(os.Environ(), command.Env)

	executable := command.Name
	if !filepath.IsAbs(executable) {
		if lp, err := lookPath(executable, cmdEnv); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, command.Args...) //nolint:gosec // commands are built by adapters
	if len(cmd.Args) > 0 {
		cmd.Args[0] = command.Name
	}
	cmd.Dir = command.Dir
	cmd.Env = cmdEnv
	return cmd
}

func commandError(err error, command domain.Command, output string) error {
	exitCode := -1
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		exitCode = exitErr.ExitCode()
	}

	wrapped := zerr.Wrap(domain.ErrCommandFailed, err.Error())
	wrapped = zerr.With(wrapped, "command", command.String())
	wrapped = zerr.With(wrapped, "exit_code", exitCode)
	if output = strings.TrimSpace(output); output != "" {
		wrapped = zerr.With(wrapped, "output", lastLines(output, tailLines))
	}
	return wrapped
}

func lastLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) > n {
		lines = lines[len(lines)-n:]
	}
	return strings.Join(lines, "\n")
}

// lineWriter forwards complete lines to out and keeps the most recent ones for error reports.
type lineWriter struct {
	out    io.Writer
	buf    []byte
	recent []string
}

func (w *lineWriter) Write(p []byte) (int, error) {
	w.buf = append(w.buf, p...)

	for {
		i := bytes.IndexByte(w.buf, '\n')
		if i < 0 {
			break
		}
		if err := w.writeLine(w.buf[:i]); err != nil {
			return 0, err
		}
		w.buf = w.buf[i+1:]
	}

	return len(p), nil
}

func (w *lineWriter) Close() error {
	if len(w.buf) == 0 {
		return nil
	}
	err := w.writeLine(w.buf)
	w.buf = nil
	return err
}

func (w *lineWriter) writeLine(line []byte) error {
	// PTYs translate \n into \r\n.
	msg := strings.TrimSuffix(string(line), "\r")

	w.recent = append(w.recent, msg)
	if len(w.recent) > tailLines {
		w.recent = w.recent[1:]
	}

	_, err := io.WriteString(w.out, msg+"\n")
	return err
}

func (w *lineWriter) tail() string {
	return strings.Join(w.recent, "\n")
}

// allowListedEnvVars are inherited from the system when a command carries no environment.
var allowListedEnvVars = map[string]struct{}{
	"HOME":   {},
	"TERM":   {},
	"USER":   {},
	"PATH":   {},
	"LANG":   {},
	"TMPDIR": {},
}

// resolveEnvironment returns the command's environment, or the allow-listed system
// variables when the command carries none.
func resolveEnvironment(sysEnv, cmdEnv []string) []string {
	if len(cmdEnv) > 0 {
		return cmdEnv
	}

	result := make([]string, 0, len(allowListedEnvVars))
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed {
			result = append(result, entry)
		}
	}
	return result
}

// lookPath searches for an executable in the directories named by the PATH environment variable.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if strings.HasPrefix(e, "PATH=") {
			path = strings.TrimPrefix(e, "PATH=")
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
