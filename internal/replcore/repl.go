// Package replcore implements the REPL driver: the read-parse-execute
// loop, backed by a line editor for interactive input.
package replcore

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/chzyer/readline"
	"github.com/gYonder/posh/internal/history"
	"github.com/gYonder/posh/internal/session"
	"github.com/gYonder/posh/internal/shellcore"
	"github.com/gYonder/posh/internal/ui"
	"golang.org/x/term"
)

// prompt is the shell's entire prompt string: two ASCII bytes.
const prompt = "$ "

// Shell is the prompt loop: reset the browse cursor, read a line, add
// it to history, parse it into a pipeline, execute it, repeat.
type Shell struct {
	Session *session.Session
	rl      *readline.Instance
	hist    *history.Store
}

// New builds a Shell for an interactive terminal session, wiring
// readline's line editing, HISTFILE-backed history, and tab completion.
func New(sess *session.Session) (*Shell, error) {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            prompt,
		HistoryFile:       os.Getenv("HISTFILE"),
		HistorySearchFold: true,
		AutoComplete:      NewCompleter(sess),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return nil, err
	}
	return &Shell{Session: sess, rl: rl, hist: history.Default()}, nil
}

// Run drives the interactive loop until EOF (Ctrl-D) or the `exit`
// builtin terminates the process. Parse and execution errors are
// printed to stderr; the loop continues.
func (sh *Shell) Run() {
	defer sh.rl.Close()
	defer history.Default().FlushToHistfile()

	for {
		sh.hist.ResetBrowse()

		line, err := sh.rl.Readline()
		if err == readline.ErrInterrupt { // Ctrl-C cancels the line
			continue
		}
		if err != nil { // io.EOF or Ctrl-D
			break
		}

		runLine(sh.Session, line)
	}
}

// RunScript drives the non-interactive loop for sess: stdin is read
// line by line with no prompt ever written and no completion offered,
// matching how a one-line shell behaves when fed a script or a pipe.
func RunScript(sess *session.Session, r io.Reader) {
	defer history.Default().FlushToHistfile()

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		runLine(sess, scanner.Text())
	}
}

// runLine is the body both loops share: record history, parse, execute.
func runLine(sess *session.Session, line string) {
	if line == "" {
		return
	}
	history.Default().Add(line)

	pl, err := shellcore.ParsePipeline(line)
	if err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("posh: "+err.Error()))
		return
	}
	if pl == nil {
		return
	}

	if err := shellcore.Execute(sess, pl); err != nil {
		fmt.Fprintln(os.Stderr, ui.ErrorStyle.Render("posh: "+err.Error()))
	}
}

// IsInteractive reports whether fd is attached to a terminal, gating
// whether the prompt and completion are shown at all.
func IsInteractive(fd uintptr) bool {
	return term.IsTerminal(int(fd))
}
