// Package smt implements §4.A: one long-lived SMT solver subprocess
// conversation, speaking SMT-LIB2 over its stdin/stdout, with push/pop
// scoping and incremental declarations.
package smt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog"

	"github.com/alanz/liquidfix/internal/ports"
	"github.com/alanz/liquidfix/internal/types"
)

// Config configures one Session (§6 configuration options, §4.A startup).
type Config struct {
	Options
	LogPath string // "" disables the sidecar transcript (§6 "Log file")
	Logger  zerolog.Logger
}

// Session is the concrete §4.A implementation of ports.SMTSession. The
// scheduling model (§5) treats a Session as single-threaded and
// synchronous: every method blocks on subprocess I/O and must not be
// called concurrently with another method on the same Session.
type Session struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stdinW  *bufio.Writer
	stdout  *bufio.Reader
	log     *TranscriptLog
	opts    Options
	version Version
	logger  zerolog.Logger
}

var _ ports.SMTSession = (*Session)(nil)

// Options returns the configuration toggles the session was opened with.
func (s *Session) Options() Options {
	return s.opts
}

// NewSession spawns the configured solver subprocess, performs the version
// handshake for Z3, validates stringTheory compatibility, and issues the
// version-gated option preamble (§4.A "Startup"). A configuration
// incompatibility (§7 category 3) fails here, before any constraint work
// begins.
func NewSession(ctx context.Context, cfg Config) (*Session, error) {
	argv := cfg.Solver.Command()
	if len(argv) == 0 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("smt: unsupported solver %q", cfg.Solver))
	}
	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("smt: failed to open solver stdin").WithCause(err)
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, errbuilder.New().WithCode(errbuilder.CodeInternal).WithMsg("smt: failed to open solver stdout").WithCause(err)
	}
	if err := cmd.Start(); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("smt: failed to start %s subprocess", cfg.Solver)).
			WithCause(err)
	}

	var tlog *TranscriptLog
	if cfg.LogPath != "" {
		tlog, err = OpenTranscriptLog(cfg.LogPath)
		if err != nil {
			_ = stdin.Close()
			return nil, err
		}
	}

	s := &Session{
		cmd:    cmd,
		stdin:  stdin,
		stdinW: bufio.NewWriter(stdin),
		stdout: bufio.NewReader(stdout),
		log:    tlog,
		opts:   cfg.Options,
		logger: cfg.Logger,
	}

	if cfg.Solver == Z3 {
		version, err := s.detectZ3Version()
		if err != nil {
			_, _ = s.Close()
			return nil, err
		}
		s.version = version
	}

	if cfg.StringTheory && !cfg.Solver.SupportsStringTheory(s.version) {
		_, _ = s.Close()
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("smt: stringTheory requires z3 >= 4.4.2, got %s %s", cfg.Solver, s.version))
	}

	for _, c := range preambleCommands(cfg.Options, s.version) {
		if err := s.writeCommand(c); err != nil {
			_, _ = s.Close()
			return nil, err
		}
	}
	return s, nil
}

// detectZ3Version issues (get-info :version) and parses the reply, e.g.
// (:version "4.8.12").
func (s *Session) detectZ3Version() (Version, error) {
	if err := s.writeCommand(commandGetInfoVersion()); err != nil {
		return nil, err
	}
	resp, err := ReadResponse(s.readLine)
	if err != nil {
		return nil, err
	}
	if resp.Kind != RespModel || len(resp.Model) != 1 {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("smt: unexpected get-info reply %q", resp.String()))
	}
	raw := strings.Trim(resp.Model[0].Text, `"`)
	return ParseVersion(raw)
}

func (s *Session) writeCommand(line string) error {
	s.log.outbound(line)
	if _, err := s.stdinW.WriteString(line + "\n"); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("smt: failed writing to solver stdin").
			WithCause(err)
	}
	if err := s.stdinW.Flush(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("smt: failed flushing solver stdin").
			WithCause(err)
	}
	return nil
}

func (s *Session) readLine() (string, error) {
	line, err := s.stdout.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Declare issues declare-fun. Every other command besides check-sat and
// get-value is acknowledged implicitly as Ok without reading the solver
// (§4.A "Wire protocol").
func (s *Session) Declare(sym types.Symbol, argSorts []types.Sort, retSort types.Sort) error {
	return s.writeCommand(commandDeclareFun(sym, argSorts, retSort))
}

func (s *Session) Assert(p types.Expr) error {
	return s.writeCommand(commandAssert(p))
}

func (s *Session) AssertWithTrigger(p types.Expr, triggers []types.Expr) error {
	return s.writeCommand(commandAssertTrigger(p, triggers))
}

func (s *Session) Distinct(es []types.Expr) error {
	return s.writeCommand(commandDistinct(es))
}

func (s *Session) Push() error {
	return s.writeCommand(commandPush())
}

func (s *Session) Pop() error {
	return s.writeCommand(commandPop())
}

// CheckSat issues check-sat and reads exactly one response. An `Error`
// reply here is fatal (§7 category 2).
func (s *Session) CheckSat() (ports.CheckSatResult, error) {
	if err := s.writeCommand(commandCheckSat()); err != nil {
		return ports.Unknown, err
	}
	resp, err := ReadResponse(s.readLine)
	if err != nil {
		return ports.Unknown, err
	}
	s.log.inbound(resp.String())
	switch resp.Kind {
	case RespSat:
		return ports.Sat, nil
	case RespUnsat:
		return ports.Unsat, nil
	case RespUnknown:
		return ports.Unknown, nil
	case RespError:
		return ports.Unknown, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("smt: solver returned error on check-sat: %s", resp.ErrorMsg))
	default:
		return ports.Unknown, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("smt: unexpected check-sat reply %q", resp.String()))
	}
}

// GetValue issues get-value and reads exactly one model response.
func (s *Session) GetValue(syms []types.Symbol) ([]ports.ValueBinding, error) {
	if err := s.writeCommand(commandGetValue(syms)); err != nil {
		return nil, err
	}
	resp, err := ReadResponse(s.readLine)
	if err != nil {
		return nil, err
	}
	s.log.inbound(resp.String())
	if resp.Kind == RespError {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("smt: solver returned error on get-value: %s", resp.ErrorMsg))
	}
	if resp.Kind != RespModel {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("smt: unexpected get-value reply %q", resp.String()))
	}
	out := make([]ports.ValueBinding, len(resp.Model))
	for i, b := range resp.Model {
		out[i] = ports.ValueBinding{Sym: b.Sym, Text: b.Text}
	}
	return out, nil
}

// Close closes stdin (signalling EOF to the solver), waits for the
// subprocess to exit, and closes the transcript log. I/O errors on handle
// close are warned, not fatal (§7 category 5); the subprocess exit code is
// always returned when available.
func (s *Session) Close() (int, error) {
	closeErr := s.stdin.Close()
	waitErr := s.cmd.Wait()
	logErr := s.log.Close()
	exitCode := 0
	if s.cmd.ProcessState != nil {
		exitCode = s.cmd.ProcessState.ExitCode()
	}
	if closeErr != nil {
		s.logger.Warn().Err(closeErr).Msg("smt: error closing solver stdin")
	}
	if logErr != nil {
		s.logger.Warn().Err(logErr).Msg("smt: error closing transcript log")
	}
	if waitErr != nil {
		if exitErr, ok := waitErr.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return exitCode, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("smt: solver subprocess wait failed").
			WithCause(waitErr)
	}
	return exitCode, nil
}
