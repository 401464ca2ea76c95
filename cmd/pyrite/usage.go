package main

import "fmt"

func (c *cli) printUsage() {
	fmt.Fprintln(c.stderr, "Usage:")
	fmt.Fprintln(c.stderr, "  pyrite [flags] run <file.py|file.yml>")
	fmt.Fprintln(c.stderr, "  pyrite [flags] <file.py|file.yml>")
	fmt.Fprintln(c.stderr, "  pyrite ast <file.py>")
	fmt.Fprintln(c.stderr, "  pyrite [flags] repl")
	fmt.Fprintln(c.stderr, "  pyrite version")
	fmt.Fprintln(c.stderr, "")
	fmt.Fprintln(c.stderr, "Flags:")
	fmt.Fprintln(c.stderr, "  --log-level trace|debug|info|warn|error|disabled")
	fmt.Fprintln(c.stderr, "  --log-format console|json")
	fmt.Fprintln(c.stderr, "  --max-depth N")
}
