package shellcore

import (
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/gYonder/posh/internal/builtins"
	"github.com/gYonder/posh/internal/session"
	"github.com/sourcegraph/conc"
)

// Execute wires stdin/stdout between stages with OS pipes, spawns a
// child process for each Executable stage, runs each builtin stage
// in-process (synchronously when it is the pipeline's only stage,
// otherwise on a worker goroutine so it can run concurrently with its
// producer/consumer neighbors), and waits for everything to finish.
func Execute(sess *session.Session, pl *Pipeline) error {
	if pl == nil || len(pl.Stages) == 0 {
		return nil
	}
	if len(pl.Stages) == 1 {
		return runSingle(sess, pl.Stages[0])
	}
	return runPiped(sess, pl.Stages)
}

func runSingle(sess *session.Session, ctx *Context) error {
	defer closeIfSet(ctx.StdoutCloser)
	defer closeIfSet(ctx.StderrCloser)

	switch ctx.Kind {
	case builtins.Invalid:
		fmt.Fprintf(ctx.Stderr, "%s: command not found\n", ctx.CommandName)
		return nil
	case builtins.Executable:
		return spawnAndWait(ctx, os.Stdin)
	default:
		env := &builtins.Env{Stdin: os.Stdin, Stdout: ctx.Stdout, Stderr: ctx.Stderr}
		cls := builtins.Classification{Kind: ctx.Kind, Name: ctx.CommandName, ResolvedPath: ctx.ResolvedPath}
		return builtins.Run(sess, env, cls, ctx.Args)
	}
}

func runPiped(sess *session.Session, stages []*Context) error {
	n := len(stages)

	// Wire an OS pipe between every adjacent pair of stages. A stage
	// that already has an explicit file redirection keeps it — file
	// redirections take precedence over piping.
	var pipeCloser []func()
	for i := 0; i < n-1; i++ {
		pr, pw, err := os.Pipe()
		if err != nil {
			return fmt.Errorf("failed to create pipe: %w", err)
		}
		if !stages[i].stdoutRedirect {
			stages[i].Stdout = pw
			stages[i].StdoutCloser = pw
		} else {
			pw.Close()
		}
		stages[i+1].Stdin = pr
		stages[i+1].StdinCloser = pr
		pipeCloser = append(pipeCloser, func() { pr.Close() })
	}
	defer func() {
		for _, c := range pipeCloser {
			c()
		}
	}()

	// errs is indexed by stage so every failure, whether from a spawned
	// process or a builtin worker, can be attributed back to its stage.
	errs := make([]error, n)
	type spawned struct {
		idx int
		cmd *exec.Cmd
	}
	var cmds []spawned

	var wg conc.WaitGroup
	for i := 0; i < n; i++ {
		ctx := stages[i]
		switch ctx.Kind {
		case builtins.Executable:
			cmd, err := startExecutable(ctx)
			if err != nil {
				fmt.Fprintf(ctx.Stderr, "%s: %v\n", ctx.CommandName, err)
				errs[i] = err
				closeStagePipes(ctx)
				continue
			}
			cmds = append(cmds, spawned{idx: i, cmd: cmd})

		case builtins.Invalid:
			fmt.Fprintf(ctx.Stderr, "%s: command not found\n", ctx.CommandName)
			closeStagePipes(ctx)

		default:
			idx := i
			wg.Go(func() {
				defer closeStagePipes(ctx)
				env := &builtins.Env{Stdin: readerOrStdin(ctx.Stdin), Stdout: ctx.Stdout, Stderr: ctx.Stderr}
				cls := builtins.Classification{Kind: ctx.Kind, Name: ctx.CommandName, ResolvedPath: ctx.ResolvedPath}
				errs[idx] = builtins.Run(sess, env, cls, ctx.Args)
			})
		}
	}

	joinErr := joinWorkers(&wg)

	for _, sp := range cmds {
		if err := sp.cmd.Wait(); err != nil && errs[sp.idx] == nil {
			errs[sp.idx] = err
		}
	}

	if joinErr != nil {
		return joinErr
	}
	for i, err := range errs {
		if err != nil {
			return fmt.Errorf("%s: %w", stages[i].CommandName, err)
		}
	}
	return nil
}

// joinWorkers waits for all builtin worker goroutines, converting a
// panic in any one of them into a returned error instead of crashing
// the shell process.
func joinWorkers(wg *conc.WaitGroup) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("builtin worker panicked: %v", r)
		}
	}()
	wg.Wait()
	return nil
}

func startExecutable(ctx *Context) (*exec.Cmd, error) {
	cmd := exec.Command(ctx.ResolvedPath, ctx.Args...)
	cmd.Args[0] = ctx.CommandName
	cmd.Stdin = stdinFileOrInherit(ctx)
	cmd.Stdout = asFile(ctx.Stdout, os.Stdout)
	cmd.Stderr = asFile(ctx.Stderr, os.Stderr)

	if err := cmd.Start(); err != nil {
		return nil, err
	}
	// The child now owns its own reference to the piped ends; drop the
	// parent's copy so EOF/closure can propagate once the child exits.
	closeStagePipes(ctx)
	return cmd, nil
}

func spawnAndWait(ctx *Context, stdin *os.File) error {
	cmd := exec.Command(ctx.ResolvedPath, ctx.Args...)
	cmd.Args[0] = ctx.CommandName
	cmd.Stdin = stdin
	cmd.Stdout = asFile(ctx.Stdout, os.Stdout)
	cmd.Stderr = asFile(ctx.Stderr, os.Stderr)
	if err := cmd.Run(); err != nil {
		fmt.Fprintf(ctx.Stderr, "%s: %v\n", ctx.CommandName, err)
		return err
	}
	return nil
}

func stdinFileOrInherit(ctx *Context) *os.File {
	if f, ok := ctx.Stdin.(*os.File); ok {
		return f
	}
	return os.Stdin
}

func readerOrStdin(r io.Reader) io.Reader {
	if r != nil {
		return r
	}
	return os.Stdin
}

func asFile(w io.Writer, fallback *os.File) *os.File {
	if f, ok := w.(*os.File); ok {
		return f
	}
	return fallback
}

func closeStagePipes(ctx *Context) {
	closeIfSet(ctx.StdoutCloser)
	closeIfSet(ctx.StderrCloser)
	closeIfSet(ctx.StdinCloser)
}

func closeIfSet(c io.Closer) {
	if c == nil {
		return
	}
	c.Close()
}
