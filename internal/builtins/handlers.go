package builtins

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gYonder/posh/internal/history"
	"github.com/gYonder/posh/internal/session"
	"github.com/spf13/pflag"
)

// ErrCommandNotFound is a sentinel for an unresolved command name. The
// executor does not return it: it writes "NAME: command not found" to
// the stage's stderr and carries on.
var ErrCommandNotFound = fmt.Errorf("command not found")

// Run dispatches a classified builtin. It never handles Kind ==
// Executable or Kind == Invalid — the executor spawns the former and
// reports the latter itself.
func Run(sess *session.Session, env *Env, cls Classification, args []string) error {
	switch cls.Kind {
	case Echo:
		return runEcho(env, args)
	case Type:
		return runType(env, args)
	case Pwd:
		return runPwd(sess, env)
	case Cd:
		return runCd(sess, env, args)
	case History:
		return runHistory(env, args)
	case Exit:
		runExit(args) // terminates the process; never returns
		return nil
	default:
		return fmt.Errorf("builtins: Run called with non-builtin kind %v", cls.Kind)
	}
}

func runEcho(env *Env, args []string) error {
	_, err := fmt.Fprintln(env.Stdout, strings.Join(args, " "))
	return err
}

// runHistory dispatches the history builtin's sub-commands using a
// pflag.FlagSet to recognize -r/-w/-a ahead of a positional count.
func runHistory(env *Env, args []string) error {
	fs := pflag.NewFlagSet("history", pflag.ContinueOnError)
	fs.SetOutput(io.Discard)
	readPath := fs.StringP("read", "r", "", "load history from PATH")
	writePath := fs.StringP("write", "w", "", "overwrite HISTFILE-style PATH with the full history")
	appendPath := fs.StringP("append", "a", "", "append new entries to PATH")

	if err := fs.Parse(reorderArgsForFlags(fs, args)); err != nil {
		history.Default().Print(env.Stdout, nil)
		return nil
	}

	switch {
	case *readPath != "":
		return history.Default().ReadFile(*readPath)
	case *writePath != "":
		return history.Default().WriteFile(*writePath, false)
	case *appendPath != "":
		return history.Default().WriteFile(*appendPath, true)
	}

	rest := fs.Args()
	if len(rest) == 1 {
		if n, err := strconv.Atoi(rest[0]); err == nil && n >= 0 {
			history.Default().Print(env.Stdout, &n)
			return nil
		}
	}
	history.Default().Print(env.Stdout, nil)
	return nil
}

func runType(env *Env, args []string) error {
	name := ""
	if len(args) > 0 {
		name = args[0]
	}
	cls := Classify(name)
	switch cls.Kind {
	case Invalid:
		_, err := fmt.Fprintf(env.Stdout, "%s: not found\n", name)
		return err
	case Executable:
		_, err := fmt.Fprintf(env.Stdout, "%s is %s\n", name, cls.ResolvedPath)
		return err
	default:
		_, err := fmt.Fprintf(env.Stdout, "%s is a shell builtin\n", name)
		return err
	}
}

func runPwd(sess *session.Session, env *Env) error {
	_, err := fmt.Fprintln(env.Stdout, sess.CWD)
	return err
}

func runCd(sess *session.Session, env *Env, args []string) error {
	var arg string
	if len(args) > 0 {
		arg = args[0]
	}
	target := resolveCdTarget(sess, arg)
	if err := sess.Chdir(target); err != nil {
		_, werr := fmt.Fprintf(env.Stdout, "cd: %s: No such file or directory\n", arg)
		return werr
	}
	return nil
}

func runExit(args []string) {
	code := 0
	if len(args) > 0 {
		if n, err := strconv.Atoi(args[0]); err == nil {
			code = n
		}
	}
	history.Default().FlushToHistfile()
	os.Exit(code % 256)
}

// resolveCdTarget implements the path-building rules from spec.md
// §4.F: the first path segment picks a base (HOME, CWD, root, or
// CWD's parent), and every subsequent segment either pops ("..") is
// skipped (""/".") or is pushed, independent of the filesystem.
func resolveCdTarget(sess *session.Session, arg string) string {
	if arg == "" || arg == "~" {
		return sess.HomeDir
	}

	segments := strings.Split(arg, "/")
	var base string
	switch segments[0] {
	case "~":
		base = sess.HomeDir
	case ".":
		base = sess.CWD
	case "":
		base = "/"
	case "..":
		base = parentOf(sess.CWD)
	default:
		base = joinSegment(sess.CWD, segments[0])
	}

	cur := base
	for _, seg := range segments[1:] {
		switch {
		case seg == "..":
			cur = parentOf(cur)
		case seg == "" || seg == ".":
			// skipped
		default:
			cur = joinSegment(cur, seg)
		}
	}
	return cur
}

func parentOf(path string) string {
	if path == "/" || path == "" {
		return "/"
	}
	idx := strings.LastIndexByte(path, '/')
	if idx <= 0 {
		return "/"
	}
	return path[:idx]
}

func joinSegment(base, seg string) string {
	if base == "/" {
		return "/" + seg
	}
	return base + "/" + seg
}
