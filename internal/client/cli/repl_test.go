package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) Preferences(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "prefs")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) Translate(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "translate")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) History(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "history")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) Languages(ctx context.Context, args []string) error {
	f.calls = append(f.calls, "langs")
	f.args = append(f.args, args)
	return nil
}
func (f *fakeExec) Status(ctx context.Context) error { f.calls = append(f.calls, "status"); return nil }
func (f *fakeExec) ClearError()                      { f.calls = append(f.calls, "clear") }

func silence(t *testing.T) *[]string {
	t.Helper()
	var printed []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		parts := make([]string, len(a))
		for i, v := range a {
			parts[i], _ = v.(string)
		}
		printed = append(printed, strings.Join(parts, " "))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &printed
}

func TestRunREPL_Commands(t *testing.T) {
	printed := silence(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"t hello there",
		"prefs en he",
		"history voice",
		"langs heb",
		"status",
		"clear",
		"logout",
		"",
		"foobar",
		"exit",
		"register",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "guest" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"login", "translate", "prefs", "history", "langs", "status", "clear", "logout"}, exec.calls)
	assert.Equal(t, [][]string{{"hello", "there"}, {"en", "he"}, {"voice"}, {"heb"}}, exec.args)
	assert.Contains(t, *printed, "tl (guest)> ")
	assert.Contains(t, *printed, "Unknown command: foobar")
	assert.Contains(t, *printed, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	silence(t)
	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("register")))
	assert.Equal(t, []string{"register"}, exec.calls)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	silence(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("login\n")))
	assert.Empty(t, exec.calls)
}
