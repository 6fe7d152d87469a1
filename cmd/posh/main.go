// Command posh is a one-line POSIX-flavored interactive shell.
package main

import (
	"fmt"
	"os"

	"github.com/gYonder/posh/internal/replcore"
	"github.com/gYonder/posh/internal/session"
)

func main() {
	sess, err := session.New()
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		os.Exit(1)
	}

	if !replcore.IsInteractive(os.Stdin.Fd()) {
		replcore.RunScript(sess, os.Stdin)
		return
	}

	sh, err := replcore.New(sess)
	if err != nil {
		fmt.Fprintf(os.Stderr, "posh: %v\n", err)
		os.Exit(1)
	}
	sh.Run()
}
