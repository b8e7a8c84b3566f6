package link

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// ArgsFunc builds the command line (executable first) for an interface and direction.
type ArgsFunc func(iface string, dir Direction) []string

// IfconfigArgs produces "ifconfig <iface> <dir>".
func IfconfigArgs(iface string, dir Direction) []string {
	return []string{"ifconfig", iface, string(dir)}
}

// IPLinkArgs produces "ip link set <iface> <dir>".
func IPLinkArgs(iface string, dir Direction) []string {
	return []string{"ip", "link", "set", iface, string(dir)}
}

// Option configures a CommandSetter.
type Option func(*CommandSetter)

// WithLogger sets the logger used for command warnings.
func WithLogger(log logrus.FieldLogger) Option {
	return func(s *CommandSetter) { s.Log = log }
}

// WithExecutable overrides the executable while keeping the driver's arguments.
func WithExecutable(path string) Option {
	return func(s *CommandSetter) { s.Executable = path }
}

// CommandSetter toggles an interface by running an external command.
// The command's exit status is not inspected: a non-zero exit is only
// logged. A command that cannot be started is an error.
type CommandSetter struct {
	Interface  string
	Args       ArgsFunc
	Executable string // replaces Args()[0] when set
	Log        logrus.FieldLogger
}

// NewCommandSetter creates a CommandSetter for iface.
func NewCommandSetter(iface string, args ArgsFunc, opts ...Option) *CommandSetter {
	s := &CommandSetter{Interface: iface, Args: args}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Command returns the command line that Set would run.
func (s *CommandSetter) Command(dir Direction) []string {
	args := s.Args(s.Interface, dir)
	if s.Executable != "" {
		args[0] = s.Executable
	}
	return args
}

// Set runs the command synchronously.
func (s *CommandSetter) Set(ctx context.Context, dir Direction) error {
	args := s.Command(dir)
	cmd := exec.CommandContext(ctx, args[0], args[1:]...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	if err == nil {
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		s.logger().WithFields(logrus.Fields{
			"interface": s.Interface,
			"direction": string(dir),
			"exit_code": exitErr.ExitCode(),
			"stderr":    strings.TrimSpace(stderr.String()),
		}).Warnf("%s exited with status %d", args[0], exitErr.ExitCode())
		return nil
	}
	return fmt.Errorf("link: run %s: %w", strings.Join(args, " "), err)
}

func (s *CommandSetter) logger() logrus.FieldLogger {
	if s.Log != nil {
		return s.Log
	}
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
