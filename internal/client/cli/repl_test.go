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
	calls    []string
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
func (f *fakeExec) ListSecrets(ctx context.Context) error {
	f.calls = append(f.calls, "list")
	return nil
}
func (f *fakeExec) AddSecret(ctx context.Context) error {
	f.calls = append(f.calls, "addsecret")
	return nil
}
func (f *fakeExec) Whoami(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func silencePrintln(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"list",
		"addsecret",
		"whoami",
		"foobar",
		"logout",
		"exit",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"login", "list", "addsecret", "whoami", "logout"}, exec.calls)
}

func TestRunREPL_ShortListAlias(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("l\nquit\n")

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "x" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"list"}, exec.calls)
}

func TestRunREPL_ExitsOnEOF(t *testing.T) {
	silencePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "x" }, bufio.NewScanner(strings.NewReader("")))

	assert.Empty(t, exec.calls)
}

func TestRunREPL_SkipsBlankLines(t *testing.T) {
	silencePrintln(t)

	input := strings.NewReader("\n   \nlist\nexit\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "x" }, bufio.NewScanner(input))

	assert.Equal(t, []string{"list"}, exec.calls)
}
