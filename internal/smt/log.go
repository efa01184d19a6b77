package smt

import (
	"os"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// TranscriptLog mirrors every outbound command and inbound response to a
// sidecar file (§4.A "Logging", §6 "Log file"): path is
// "<constraintFile>.smt2", each outbound command written verbatim, each
// inbound response written as "; SMT Says: <repr>". The handle is owned
// exclusively by the Session that created it (§5 "Shared resources").
type TranscriptLog struct {
	file *os.File
}

// OpenTranscriptLog creates (or truncates) the log file at path, creating
// its directory if missing.
func OpenTranscriptLog(path string) (*TranscriptLog, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("smt: failed to create log directory").
				WithCause(err)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("smt: failed to create transcript log").
			WithCause(err)
	}
	return &TranscriptLog{file: f}, nil
}

// LogCommandPath derives the sidecar log path for a constraint file, per
// §6: "<constraintFile>.smt2".
func LogCommandPath(constraintFile string) string {
	return constraintFile + ".smt2"
}

func (l *TranscriptLog) outbound(line string) {
	if l == nil {
		return
	}
	_, _ = l.file.WriteString(line + "\n")
}

func (l *TranscriptLog) inbound(repr string) {
	if l == nil {
		return
	}
	_, _ = l.file.WriteString("; SMT Says: " + repr + "\n")
}

// Close flushes and closes the log file. I/O errors on close are non-fatal
// (§7 category 5) — the caller logs them via zerolog and continues tearing
// down the session.
func (l *TranscriptLog) Close() error {
	if l == nil {
		return nil
	}
	return l.file.Close()
}
