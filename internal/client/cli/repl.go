package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	SignUp(ctx context.Context) error
	SignIn(ctx context.Context) error
	SignOut(ctx context.Context) error
	WhoAmI(ctx context.Context) error
	List(ctx context.Context) error
	Add(ctx context.Context) error
	Toggle(ctx context.Context, arg string) error
	Edit(ctx context.Context, arg string) error
	Remove(ctx context.Context, arg string) error
	Show(ctx context.Context, arg string) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on a. The loop exits on scanner EOF or
// when the user types "exit" or "quit".
//
// Errors returned by command handlers are ignored here; handlers display or
// log their own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("tk (%s) > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		arg := ""
		if len(parts) > 1 {
			arg = parts[1]
		}

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (l)ist, add, toggle, edit, rm, show, whoami, signout, exit")
			} else {
				printlnFn("Available commands: signup, signin, exit")
			}

		case "signup":
			_ = a.SignUp(ctx)

		case "signin", "login":
			_ = a.SignIn(ctx)

		case "signout", "logout":
			_ = a.SignOut(ctx)

		case "whoami":
			_ = a.WhoAmI(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "add":
			_ = a.Add(ctx)

		case "toggle", "done":
			_ = a.Toggle(ctx, arg)

		case "edit":
			_ = a.Edit(ctx, arg)

		case "rm", "delete":
			_ = a.Remove(ctx, arg)

		case "show":
			_ = a.Show(ctx, arg)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
