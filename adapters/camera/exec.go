// Package camera holds the external image acquisition and conversion
// collaborators. Both run configurable commands - the hardware and
// the codec are black boxes to the rest of the system.
package camera

import (
	"context"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/rythmn1111/final-cam/ports"
)

// Command argv placeholders, substituted per invocation.
const (
	PlaceholderIn  = "{in}"
	PlaceholderOut = "{out}"
)

type ExecCamera struct {
	log ports.Logger
	cmd []string
}

// NewExecCamera acquires frames by running cmd, with {out} replaced
// by the destination path. The default is a libcamera-jpeg command.
func NewExecCamera(log ports.Logger, cmd []string) *ExecCamera {
	log = log.With(slog.String("entity", "ExecCamera"))
	return &ExecCamera{log: log, cmd: cmd}
}

func (c *ExecCamera) Acquire(ctx context.Context, dest string) error {
	argv := substitute(c.cmd, "", dest)
	c.log.Debug("acquire", slog.Any("argv", argv))
	out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		c.log.Error("acquisition command failed", slog.Any("err", err), slog.String("output", strings.TrimSpace(string(out))))
		return err
	}
	return nil
}

type ExecConverter struct {
	log ports.Logger
	cmd []string
}

// NewExecConverter converts frames by running cmd, with {in} and
// {out} replaced per invocation. The default is a cwebp command.
func NewExecConverter(log ports.Logger, cmd []string) *ExecConverter {
	log = log.With(slog.String("entity", "ExecConverter"))
	return &ExecConverter{log: log, cmd: cmd}
}

func (c *ExecConverter) Convert(ctx context.Context, src, dest string) error {
	argv := substitute(c.cmd, src, dest)
	c.log.Debug("convert", slog.Any("argv", argv))
	out, err := exec.CommandContext(ctx, argv[0], argv[1:]...).CombinedOutput()
	if err != nil {
		c.log.Error("conversion command failed", slog.Any("err", err), slog.String("output", strings.TrimSpace(string(out))))
		return err
	}
	return nil
}

func substitute(cmd []string, in, out string) []string {
	argv := make([]string, len(cmd))
	for i, arg := range cmd {
		arg = strings.ReplaceAll(arg, PlaceholderIn, in)
		arg = strings.ReplaceAll(arg, PlaceholderOut, out)
		argv[i] = arg
	}
	return argv
}
