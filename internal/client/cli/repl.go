package cli

import (
	"bufio"
	"context"
	"fmt"
	"slices"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// Screen names shown in the prompt.
const (
	screenLoading = "loading"
	screenAuth    = "auth"
	screenNotes   = "notes"
	screenCompose = "compose"
	screenNote    = "note"
)

// screenCommands lists what each screen accepts besides help and exit.
var screenCommands = map[string][]string{
	screenAuth:    {"signin", "signup"},
	screenNotes:   {"list", "refresh", "open", "add", "delete", "signout"},
	screenCompose: {"title", "content", "attach", "detach", "draft", "save", "back"},
	screenNote:    {"show", "preview", "close", "delete", "edit", "back"},
}

// execIface defines the command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	screen() string

	SignIn(ctx context.Context) error
	SignUp(ctx context.Context) error

	List(ctx context.Context) error
	Refresh(ctx context.Context) error
	Open(ctx context.Context, arg string) error
	Add(ctx context.Context) error
	Delete(ctx context.Context, arg string) error
	SignOut(ctx context.Context) error

	Title(ctx context.Context) error
	Content(ctx context.Context) error
	Attach(ctx context.Context, paths []string) error
	Detach(ctx context.Context, arg string) error
	Draft(ctx context.Context) error
	Save(ctx context.Context) error
	Back(ctx context.Context) error

	Show(ctx context.Context) error
	Preview(ctx context.Context, arg string) error
	ClosePreview(ctx context.Context) error
	Edit(ctx context.Context) error
}

// runREPL reads one command per line from reader and dispatches it to the
// screen that is currently mounted. Commands that the screen does not offer
// are reported as unknown. The loop exits on EOF or when the user types
// "exit" or "quit".
//
// Errors returned by handlers are printed; screen failures have already been
// shown as alerts by the time a handler returns.
func runREPL(ctx context.Context, a execIface, statusFn func() string, reader *bufio.Reader) {
	for {
		printlnFn(fmt.Sprintf("gn> %s > ", statusFn()))
		line, err := reader.ReadString('\n')
		if line == "" && err != nil {
			return
		}
		if !dispatch(ctx, a, strings.Fields(line)) {
			return
		}
		if err != nil {
			return
		}
	}
}

// dispatch runs one command line and reports whether the REPL should go on.
func dispatch(ctx context.Context, a execIface, parts []string) bool {
	if len(parts) == 0 {
		return true
	}
	cmd, args := parts[0], parts[1:]
	available := screenCommands[a.screen()]

	switch {
	case cmd == "help":
		printlnFn("Available commands:", strings.Join(append(slices.Clone(available), "help", "exit"), ", "))
		return true
	case cmd == "exit" || cmd == "quit":
		printlnFn("Bye!")
		return false
	case !slices.Contains(available, cmd):
		printlnFn("Unknown command:", cmd)
		return true
	}

	arg := ""
	if len(args) > 0 {
		arg = args[0]
	}

	var err error
	switch cmd {
	case "signin":
		err = a.SignIn(ctx)
	case "signup":
		err = a.SignUp(ctx)

	case "list":
		err = a.List(ctx)
	case "refresh":
		err = a.Refresh(ctx)
	case "open":
		if arg == "" {
			printlnFn("Usage: open <n>")
			return true
		}
		err = a.Open(ctx, arg)
	case "add":
		err = a.Add(ctx)
	case "delete":
		if a.screen() == screenNotes && arg == "" {
			printlnFn("Usage: delete <n>")
			return true
		}
		err = a.Delete(ctx, arg)
	case "signout":
		err = a.SignOut(ctx)

	case "title":
		err = a.Title(ctx)
	case "content":
		err = a.Content(ctx)
	case "attach":
		err = a.Attach(ctx, args)
	case "detach":
		if arg == "" {
			printlnFn("Usage: detach <n>")
			return true
		}
		err = a.Detach(ctx, arg)
	case "draft":
		err = a.Draft(ctx)
	case "save":
		err = a.Save(ctx)
	case "back":
		err = a.Back(ctx)

	case "show":
		err = a.Show(ctx)
	case "preview":
		if arg == "" {
			printlnFn("Usage: preview <n>")
			return true
		}
		err = a.Preview(ctx, arg)
	case "close":
		err = a.ClosePreview(ctx)
	case "edit":
		err = a.Edit(ctx)
	}

	if err != nil {
		printlnFn("Error:", err)
	}
	return true
}
