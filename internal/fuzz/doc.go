// Package fuzztests houses Go fuzz harnesses for the inputs hdlgraph reads
// from outside: saved graph files and encoded constant values. The goal is
// to guard against panics and hangs on arbitrary bytes.
package fuzztests
