package builtins

import (
	"strings"

	"github.com/spf13/pflag"
)

// reorderArgsForFlags moves recognized flags ahead of positional
// arguments so a builtin's pflag.FlagSet can parse Unix-style
// interspersed invocations like "history 5 -a PATH" the same as
// "history -a PATH 5".
func reorderArgsForFlags(fs *pflag.FlagSet, args []string) []string {
	var flags, positional []string

	i := 0
	for i < len(args) {
		arg := args[i]
		if arg == "--" {
			positional = append(positional, args[i+1:]...)
			break
		}
		if strings.HasPrefix(arg, "-") && arg != "-" {
			flags = append(flags, arg)
			name := strings.TrimLeft(arg, "-")
			if strings.Contains(name, "=") {
				i++
				continue
			}
			f := fs.Lookup(name)
			if f == nil && len(name) == 1 {
				f = fs.ShorthandLookup(name)
			}
			if f != nil && f.Value.Type() != "bool" {
				if i+1 < len(args) && !strings.HasPrefix(args[i+1], "-") {
					i++
					flags = append(flags, args[i])
				}
			}
		} else {
			positional = append(positional, arg)
		}
		i++
	}
	return append(flags, positional...)
}
