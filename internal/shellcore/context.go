// Package shellcore implements the pipeline parser, the per-stage
// context builder, and the executor that wires pipes between stages
// and runs each one as a builtin or a spawned external process.
package shellcore

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gYonder/posh/internal/builtins"
	"github.com/gYonder/posh/internal/lexer"
)

// Context is one parsed pipeline stage: a classified command, its
// argument list with any redirection operator and target already
// stripped out, and the stdout/stderr sinks the executor will use.
type Context struct {
	Kind         builtins.Kind
	CommandName  string
	ResolvedPath string // set when Kind == builtins.Executable
	Args         []string

	Stdout         io.Writer
	stdoutRedirect bool    // true once an explicit file redirection set Stdout
	StdoutCloser   io.Closer

	Stderr       io.Writer
	StderrCloser io.Closer

	Stdin       io.Reader
	StdinCloser io.Closer
}

var redirectOps = map[string]struct {
	stdout, stderr, append bool
}{
	">":   {stdout: true},
	"1>":  {stdout: true},
	">>":  {stdout: true, append: true},
	"1>>": {stdout: true, append: true},
	"2>":  {stderr: true},
	"2>>": {stderr: true, append: true},
	"&>":  {stdout: true, stderr: true},
	"&>>": {stdout: true, stderr: true, append: true},
}

// BuildContext lexes a single (already pipe-split) stage and produces
// its Context: command classification, redirection-stripped args, and
// opened output writers. At most one redirection operator is
// recognized per stage, matching spec.md's documented limitation.
func BuildContext(stageInput string) (*Context, error) {
	words := lexer.Tokenize(stageInput)
	if len(words) == 0 {
		return nil, fmt.Errorf("syntax error: empty command")
	}

	commandStr := words[0]
	rest := words[1:]

	opIdx := -1
	for i, w := range rest {
		if _, ok := redirectOps[w]; ok {
			opIdx = i
			break
		}
	}

	var target string
	args := rest
	var spec struct{ stdout, stderr, append bool }
	if opIdx >= 0 {
		spec = redirectOps[rest[opIdx]]
		if opIdx+1 >= len(rest) {
			return nil, fmt.Errorf("syntax error: no file specified for redirection")
		}
		target = rest[opIdx+1]
		args = append(append([]string{}, rest[:opIdx]...), rest[opIdx+2:]...)
	}

	cls := builtins.Classify(commandStr)

	ctx := &Context{
		Kind:         cls.Kind,
		CommandName:  commandStr,
		ResolvedPath: cls.ResolvedPath,
		Args:         args,
		Stdout:       os.Stdout,
		Stderr:       os.Stderr,
	}

	if spec.stdout || spec.stderr {
		if dir := filepath.Dir(target); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("%s: %w", target, err)
			}
		}
		f, err := openRedirectTarget(target, spec.append)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", target, err)
		}
		if spec.stdout {
			ctx.Stdout = f
			ctx.stdoutRedirect = true
			ctx.StdoutCloser = f
		}
		if spec.stderr {
			ctx.Stderr = f
			if spec.stdout {
				// &> / &>>: stdout and stderr share one writer and one
				// close; StdoutCloser above already owns it.
			} else {
				ctx.StderrCloser = f
			}
		}
	}

	return ctx, nil
}

func openRedirectTarget(path string, appendMode bool) (*os.File, error) {
	flags := os.O_CREATE | os.O_WRONLY
	if appendMode {
		flags |= os.O_APPEND
	} else {
		flags |= os.O_TRUNC
	}
	return os.OpenFile(path, flags, 0o644)
}
