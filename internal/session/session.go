// Package session holds the per-process state a running shell needs:
// working directory, home directory, and the previous directory used
// by some shells' "cd -" convention (tracked here even though posh's
// path rules, per spec, don't special-case it, so the field stays
// available without forcing a redesign if that ever changes).
package session

import (
	"os"
)

// Session is the mutable state shared across one shell invocation.
type Session struct {
	CWD         string
	HomeDir     string
	PreviousDir string
}

// New builds a Session from the current process's working directory
// and the HOME environment variable.
func New() (*Session, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return &Session{
		CWD:     cwd,
		HomeDir: os.Getenv("HOME"),
	}, nil
}

// Chdir changes both the process's and the session's working directory,
// recording the prior CWD.
func (s *Session) Chdir(path string) error {
	if err := os.Chdir(path); err != nil {
		return err
	}
	prev := s.CWD
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	s.PreviousDir = prev
	s.CWD = cwd
	return nil
}
