package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls  []string
	opened []string
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Register(ctx context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) WhoAmI(ctx context.Context) error {
	f.calls = append(f.calls, "whoami")
	return nil
}
func (f *fakeExec) Open(ctx context.Context, route string) string {
	f.calls = append(f.calls, "open")
	f.opened = append(f.opened, route)
	return route
}
func (f *fakeExec) Search(ctx context.Context, scanner *bufio.Scanner) error {
	f.calls = append(f.calls, "search")
	return nil
}

func muteOutput(t *testing.T) {
	t.Helper()
	orig := printlnFn
	printlnFn = func(...any) {}
	t.Cleanup(func() { printlnFn = orig })
}

func TestRunREPL_DispatchAndExit(t *testing.T) {
	muteOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"whoami",
		"open dashboard",
		"search",
		"logout",
		"exit",
		"login", // never reached
	}, "\n")

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	want := []string{"login", "whoami", "open", "search", "logout"}
	if len(f.calls) != len(want) {
		t.Fatalf("calls = %v, want %v", f.calls, want)
	}
	for i := range want {
		if f.calls[i] != want[i] {
			t.Fatalf("calls[%d] = %q, want %q", i, f.calls[i], want[i])
		}
	}
	if len(f.opened) != 1 || f.opened[0] != "dashboard" {
		t.Fatalf("opened = %v", f.opened)
	}
}

func TestRunREPL_BlankAndUnknownLines(t *testing.T) {
	muteOutput(t)

	input := "\n   \nfrobnicate\nopen\nquit\n"

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewScanner(strings.NewReader(input)))

	if len(f.calls) != 0 {
		t.Fatalf("unexpected calls: %v", f.calls)
	}
}

func TestRunREPL_EOFStopsLoop(t *testing.T) {
	muteOutput(t)

	f := &fakeExec{}
	runREPL(context.Background(), f, func() string { return "" }, bufio.NewScanner(strings.NewReader("whoami")))

	if len(f.calls) != 1 || f.calls[0] != "whoami" {
		t.Fatalf("calls = %v", f.calls)
	}
}
