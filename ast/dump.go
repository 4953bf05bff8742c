package ast

import "github.com/alecthomas/repr"

// Dump pretty-prints n's tree for test-failure output: a readable
// nested-struct dump where %#v would be unreadable.
func Dump(n Node) string {
	if n == nil {
		return "<nil>"
	}

	return repr.String(n, repr.Indent("  "))
}
