package ports

import (
	"context"
	"io"

	"go.trai.ch/polyvenv/internal/core/domain"
)

// CommandRunner runs external programs.
//
//go:generate go run go.uber.org/mock/mockgen -source=command_runner.go -destination=mocks/mock_command_runner.go -package=mocks
type CommandRunner interface {
	// Output runs the command and returns its standard output.
	Output(ctx context.Context, cmd domain.Command) ([]byte, error)

	// Stream runs the command on a pseudo-terminal and copies its output to w line by line.
	Stream(ctx context.Context, cmd domain.Command, w io.Writer) error
}
