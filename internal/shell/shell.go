// Package shell implements the interactive command-line front end of
// spec.md §4.7: a REPL that drives a mounted Session's namespace
// operations and nothing else. It holds no vault state of its own.
package shell

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/hambosto/vaultfs/internal/namespace"
	"github.com/hambosto/vaultfs/internal/session"
)

// Shell is the read-eval-print loop over one mounted Session.
type Shell struct {
	session *session.Session
	in      *bufio.Scanner
	out     io.Writer
}

// New wires a Shell to read commands from in and write output to out.
func New(s *session.Session, in io.Reader, out io.Writer) *Shell {
	return &Shell{session: s, in: bufio.NewScanner(in), out: out}
}

// Run drives the loop until "quit"/"exit" or end of input.
func (sh *Shell) Run() {
	for {
		fmt.Fprintf(sh.out, "%s> ", sh.session.Namespace.CurrentPath())
		if !sh.in.Scan() {
			return
		}

		line := strings.TrimSpace(sh.in.Text())
		if line == "" {
			continue
		}

		if sh.dispatch(line) {
			return
		}
	}
}

// dispatch executes one command line and reports whether the shell
// should stop.
func (sh *Shell) dispatch(line string) bool {
	fields := strings.Fields(line)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "quit", "exit":
		return true

	case "ls", "dir":
		sh.list()

	case "tree":
		sh.tree()

	case "cd", "chdir":
		sh.requireArg(args, func(path string) error { return sh.session.Namespace.Chdir(path) })

	case "mkdir":
		sh.requireArg(args, func(name string) error { return sh.session.Namespace.Mkdir(name) })

	case "rmdir":
		sh.requireArg(args, func(name string) error { return sh.session.Namespace.Rmdir(name) })

	case "touch", "create":
		sh.requireArg(args, func(name string) error { return sh.session.Namespace.Create(name) })

	case "write":
		sh.requireNameAndData(args, func(name, data string) error {
			return sh.session.Namespace.Write(name, []byte(data))
		})

	case "append":
		sh.requireNameAndData(args, func(name, data string) error {
			return sh.session.Namespace.Append(name, []byte(data))
		})

	case "cat", "read":
		sh.requireArg(args, sh.readFile)

	case "rm", "del":
		sh.requireArg(args, func(name string) error { return sh.session.Namespace.Rm(name) })

	default:
		fmt.Fprintf(sh.out, "Unknown command: %s\n", cmd)
	}

	return false
}

func (sh *Shell) list() {
	for _, e := range sh.session.Namespace.List() {
		kind := "FILE"
		if e.Kind == namespace.Directory {
			kind = "DIR"
		}
		fmt.Fprintf(sh.out, "%-5s %s\n", kind, e.Name)
	}
}

func (sh *Shell) tree() {
	for _, node := range sh.session.Namespace.Tree() {
		kind := "FILE"
		if node.Entry.Kind == namespace.Directory {
			kind = "DIR"
		}
		fmt.Fprintf(sh.out, "%s%-5s %s\n", strings.Repeat("  ", node.Depth), kind, node.Entry.Name)
	}
}

func (sh *Shell) readFile(name string) error {
	content, err := sh.session.Namespace.Read(name)
	if err != nil {
		return err
	}
	fmt.Fprintln(sh.out, string(content))
	return nil
}

// requireArg runs op against args[0], reporting both "missing
// argument" and op's own error through the same channel the unknown
// command fallback uses.
func (sh *Shell) requireArg(args []string, op func(string) error) {
	if len(args) < 1 {
		fmt.Fprintln(sh.out, "missing argument")
		return
	}
	if err := op(args[0]); err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}

// requireNameAndData runs op against args[0] and the remaining
// arguments joined with single spaces, per spec.md §6.
func (sh *Shell) requireNameAndData(args []string, op func(name, data string) error) {
	if len(args) < 2 {
		fmt.Fprintln(sh.out, "missing argument")
		return
	}
	if err := op(args[0], strings.Join(args[1:], " ")); err != nil {
		fmt.Fprintf(sh.out, "error: %v\n", err)
	}
}
