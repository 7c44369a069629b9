// SPDX-License-Identifier: MPL-2.0

package fwadmin

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"unicode"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/syntax"
)

const (
	// DefaultUsername is the FileWave super-user account.
	DefaultUsername = "fwadmin"
	// DefaultPassword is the factory password of DefaultUsername.
	DefaultPassword = "filewave"
	// DefaultHost is the server host used when none is configured.
	DefaultHost = "localhost"
	// DefaultPort is the FileWave admin port.
	DefaultPort = "20016"

	redactedPassword = "********"
)

var (
	// ErrExpectedFailure is returned by the expecting-failure invocations when the
	// admin tool exits with status zero.
	ErrExpectedFailure = errors.New("expected an error, but command was successful")

	// ErrNoIdentifier is the sentinel error wrapped by NoIdentifierError.
	ErrNoIdentifier = errors.New("no identifier in admin tool output")
)

type (
	// ExecCommandFunc is the function signature for creating exec.Cmd.
	// Tests inject a helper-process implementation.
	ExecCommandFunc func(ctx context.Context, name string, arg ...string) *exec.Cmd

	// Options holds the server connection parameters prepended to every invocation.
	Options struct {
		Username string
		Password string
		Host     string
		Port     string
	}

	// ClientOption configures a Client.
	ClientOption func(*clientSettings)

	// RunOption configures a single invocation.
	RunOption func(*runSettings)

	// FilesetNotifier is implemented by callers that track filesets created or
	// removed through the Client. Notifications are best-effort and are sent
	// synchronously after the admin tool reported success.
	FilesetNotifier interface {
		FilesetCreated(id string)
		FilesetRemoved(id string)
	}

	// Client invokes the FileWave Admin command-line tool.
	Client struct {
		executable  string
		connection  []string
		execCommand ExecCommandFunc
		notifier    FilesetNotifier
		logger      *log.Logger
	}

	// Result is the outcome of an invocation that was expected to fail.
	Result struct {
		Output   string
		ExitCode ExitCode
	}

	// CommandError reports a non-zero exit of the admin tool.
	CommandError struct {
		// Args are the arguments passed to the tool, with the password redacted.
		Args []string
		// ExitCode is the tool's exit status.
		ExitCode ExitCode
		// Output is the combined stdout/stderr, trailing whitespace trimmed.
		Output string
	}

	// NoIdentifierError is returned when a creation command succeeded but its
	// confirmation message did not carry the expected identifier.
	NoIdentifierError struct {
		Operation string
		Output    string
	}

	clientSettings struct {
		goos        string
		baseDir     string
		executable  string
		execCommand ExecCommandFunc
		notifier    FilesetNotifier
		logger      *log.Logger
	}

	runSettings struct {
		withoutConnection bool
	}
)

// Error implements the error interface.
func (e *CommandError) Error() string {
	st, _ := DescribeExitStatus(e.ExitCode)
	msg := fmt.Sprintf("admin tool %s exited with status %d (%s: %s)", shellJoin(e.Args), e.ExitCode, st.Name, st.Description)
	if e.Output != "" {
		msg += ": " + e.Output
	}
	return msg
}

// Status returns the documented meaning of the exit code.
func (e *CommandError) Status() ExitStatus {
	st, _ := DescribeExitStatus(e.ExitCode)
	return st
}

// Error implements the error interface.
func (e *NoIdentifierError) Error() string {
	return fmt.Sprintf("%s: no identifier in admin tool output %q", e.Operation, e.Output)
}

// Unwrap returns ErrNoIdentifier for errors.Is() compatibility.
func (e *NoIdentifierError) Unwrap() error { return ErrNoIdentifier }

// WithPlatform overrides the platform identifier used to resolve the executable.
// Defaults to runtime.GOOS.
func WithPlatform(goos string) ClientOption {
	return func(s *clientSettings) {
		s.goos = goos
	}
}

// WithAdminPath sets the FileWave install directory. Defaults to AdminBaseDir().
func WithAdminPath(dir string) ClientOption {
	return func(s *clientSettings) {
		s.baseDir = dir
	}
}

// WithExecutable bypasses platform resolution and uses path as the admin tool.
func WithExecutable(path string) ClientOption {
	return func(s *clientSettings) {
		s.executable = path
	}
}

// WithExecCommand sets a custom exec command function for testing.
func WithExecCommand(fn ExecCommandFunc) ClientOption {
	return func(s *clientSettings) {
		s.execCommand = fn
	}
}

// WithNotifier registers a FilesetNotifier.
func WithNotifier(n FilesetNotifier) ClientOption {
	return func(s *clientSettings) {
		s.notifier = n
	}
}

// WithLogger sets the logger used for invocation tracing.
func WithLogger(l *log.Logger) ClientOption {
	return func(s *clientSettings) {
		s.logger = l
	}
}

// WithoutConnection omits the -u/-p/-H/-P flags from an invocation.
func WithoutConnection() RunOption {
	return func(s *runSettings) {
		s.withoutConnection = true
	}
}

// New creates a Client. Empty connection fields are filled with the FileWave
// defaults. It fails with an UnsupportedPlatformError when the admin tool has no
// known location on the selected platform.
func New(opts Options, clientOpts ...ClientOption) (*Client, error) {
	s := clientSettings{
		goos:        runtime.GOOS,
		execCommand: exec.CommandContext,
	}
	for _, opt := range clientOpts {
		opt(&s)
	}

	executable := s.executable
	if executable == "" {
		var err error
		executable, err = ResolveExecutable(s.goos, s.baseDir)
		if err != nil {
			return nil, err
		}
	}

	opts = opts.withDefaults()
	logger := s.logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	return &Client{
		executable: executable,
		connection: []string{
			"-u", opts.Username,
			"-p", opts.Password,
			"-H", opts.Host,
			"-P", opts.Port,
		},
		execCommand: s.execCommand,
		notifier:    s.notifier,
		logger:      logger,
	}, nil
}

func (o Options) withDefaults() Options {
	if o.Username == "" {
		o.Username = DefaultUsername
	}
	if o.Password == "" {
		o.Password = DefaultPassword
	}
	if o.Host == "" {
		o.Host = DefaultHost
	}
	if o.Port == "" {
		o.Port = DefaultPort
	}
	return o
}

// Executable returns the resolved admin tool path.
func (c *Client) Executable() string {
	return c.executable
}

// Run invokes the admin tool with args and returns its combined output.
// A non-zero exit is returned as a *CommandError carrying the output.
func (c *Client) Run(ctx context.Context, args []string, opts ...RunOption) (string, error) {
	return c.invoke(ctx, args, opts)
}

// RunExpectingFailure invokes the admin tool for a call that must fail.
// A non-zero exit is the success path and is returned as a Result; a zero exit
// returns ErrExpectedFailure.
func (c *Client) RunExpectingFailure(ctx context.Context, args []string, opts ...RunOption) (Result, error) {
	out, err := c.invoke(ctx, args, opts)
	if err != nil {
		var cmdErr *CommandError
		if errors.As(err, &cmdErr) {
			return Result{Output: cmdErr.Output, ExitCode: cmdErr.ExitCode}, nil
		}
		return Result{}, err
	}
	return Result{Output: out}, ErrExpectedFailure
}

// Args returns the full argument list for an invocation, connection flags
// included unless WithoutConnection is given.
func (c *Client) Args(args []string, opts ...RunOption) []string {
	var s runSettings
	for _, opt := range opts {
		opt(&s)
	}
	argv := make([]string, 0, len(c.connection)+len(args))
	if !s.withoutConnection {
		argv = append(argv, c.connection...)
	}
	return append(argv, args...)
}

func (c *Client) invoke(ctx context.Context, args []string, opts []RunOption) (string, error) {
	argv := c.Args(args, opts...)
	c.logger.Debug("running admin tool", "command", shellJoin(append([]string{c.executable}, redact(argv)...)))

	cmd := c.execCommand(ctx, c.executable, argv...)
	raw, err := cmd.CombinedOutput()
	out := strings.TrimRightFunc(string(raw), unicode.IsSpace)
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			c.logger.Debug("admin tool failed", "code", exitErr.ExitCode(), "output", out)
			return out, &CommandError{
				Args:     redact(argv),
				ExitCode: ExitCode(exitErr.ExitCode()),
				Output:   out,
			}
		}
		return out, fmt.Errorf("run %s: %w", c.executable, err)
	}
	return out, nil
}

// shellJoin renders argv as a shell command line, quoting arguments that
// contain spaces or shell metacharacters.
func shellJoin(argv []string) string {
	parts := make([]string, len(argv))
	for i, arg := range argv {
		q, err := syntax.Quote(arg, syntax.LangBash)
		if err != nil {
			q = strconv.Quote(arg)
		}
		parts[i] = q
	}
	return strings.Join(parts, " ")
}

// redact returns a copy of argv with the value following -p masked.
func redact(argv []string) []string {
	out := make([]string, len(argv))
	copy(out, argv)
	for i := 0; i < len(out)-1; i++ {
		if out[i] == "-p" {
			out[i+1] = redactedPassword
			i++
		}
	}
	return out
}

func (c *Client) notifyCreated(id string) {
	if c.notifier != nil {
		c.notifier.FilesetCreated(id)
	}
}

func (c *Client) notifyRemoved(id string) {
	if c.notifier != nil {
		c.notifier.FilesetRemoved(id)
	}
}
