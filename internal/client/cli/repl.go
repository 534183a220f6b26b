package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Preferences(ctx context.Context, args []string) error
	Translate(ctx context.Context, args []string) error
	History(ctx context.Context, args []string) error
	Languages(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	ClearError()
}

// runREPL reads a line from the scanner, parses the first token as the
// command and dispatches to methods on a. The loop exits on scanner EOF,
// when ctx is done, or when the user types "exit" or "quit".
//
//	Always:
//	  - help                        show available commands
//	  - translate [from:to] <text>  translate text (guests are metered)
//	  - prefs [<from> <to>]         show or set default languages
//	  - langs [query]               search supported languages
//	  - status                      session, languages, quota, last error
//	  - clear                       clear the last error
//	  - exit | quit                 leave the program
//
//	Guest:     register, login
//	Logged in: logout, history [text|voice|clear|delete <id>]
//
// Errors returned by command handlers are ignored here; handlers print
// their own messages.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("tl (%s)> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: (t)ranslate, prefs, langs, history, status, clear, logout, exit")
			} else {
				printlnFn("Available commands: (t)ranslate, prefs, langs, status, clear, register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "prefs":
			_ = a.Preferences(ctx, args)

		case "t", "translate":
			_ = a.Translate(ctx, args)

		case "history":
			_ = a.History(ctx, args)

		case "langs":
			_ = a.Languages(ctx, args)

		case "status":
			_ = a.Status(ctx)

		case "clear":
			a.ClearError()

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
