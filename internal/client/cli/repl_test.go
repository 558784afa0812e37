package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Signup(ctx context.Context) error {
	f.calls = append(f.calls, "signup")
	return nil
}
func (f *fakeExec) Signin(ctx context.Context) error {
	f.calls = append(f.calls, "signin")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Post(ctx context.Context) error { f.calls = append(f.calls, "post"); return nil }
func (f *fakeExec) List(ctx context.Context) error { f.calls = append(f.calls, "list"); return nil }
func (f *fakeExec) Mine(ctx context.Context) error { f.calls = append(f.calls, "mine"); return nil }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}

func capturePrintln(t *testing.T) *[]string {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = orig })
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	capturePrintln(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"signup",
		"login",
		"sell",
		"l",
		"",
		"mine",
		"logout",
		"register",
		"exit",
		"list",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, bufio.NewReader(input))

	want := []string{"signup", "signin", "post", "list", "mine", "logout", "signup"}
	if strings.Join(exec.calls, ",") != strings.Join(want, ",") {
		t.Fatalf("calls = %v, want %v", exec.calls, want)
	}
}

func TestRunREPL_HelpDependsOnSession(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("help\nsignin\nhelp\nquit\n"))

	var helps []string
	for _, l := range *lines {
		if strings.HasPrefix(l, "Available commands:") {
			helps = append(helps, l)
		}
	}
	if len(helps) != 2 {
		t.Fatalf("help lines = %v", helps)
	}
	if strings.Contains(helps[0], "post") || !strings.Contains(helps[0], "signup") {
		t.Fatalf("signed-out help = %q", helps[0])
	}
	if !strings.Contains(helps[1], "post") || strings.Contains(helps[1], "signup") {
		t.Fatalf("signed-in help = %q", helps[1])
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	lines := capturePrintln(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return " (Ada Lovelace)" }, rdr("frobnicate now\nquit\n"))

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
	joined := strings.Join(*lines, "\n")
	for _, want := range []string{"adboard (Ada Lovelace)> ", "Unknown command: frobnicate", "Bye!"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("output %q lacks %q", joined, want)
		}
	}
}

func TestRunREPL_StopsOnEOFAndCancel(t *testing.T) {
	capturePrintln(t)

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list"))
	if len(exec.calls) != 1 {
		t.Fatalf("calls = %v", exec.calls)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	exec = &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("list\nlist\n"))
	if len(exec.calls) != 0 {
		t.Fatalf("calls after cancel = %v", exec.calls)
	}
}
