// Package console detects double-click launches so the binary can fall back
// to serving instead of printing usage into a window that closes at once.
package console

// WithDefaultCommand returns args with cmd inserted after the program name
// when no subcommand was given or the first argument is a flag.
func WithDefaultCommand(args []string, cmd string) []string {
	if len(args) > 1 && args[1] == cmd {
		return args
	}
	if len(args) > 1 && len(args[1]) > 0 && args[1][0] != '-' {
		return args
	}
	out := make([]string, 0, len(args)+1)
	if len(args) > 0 {
		out = append(out, args[0])
	} else {
		out = append(out, "overdrive")
	}
	out = append(out, cmd)
	if len(args) > 1 {
		out = append(out, args[1:]...)
	}
	return out
}
