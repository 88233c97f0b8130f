package cli

import (
	"bufio"
	"context"
	"strings"
	"testing"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  map[string]string
}

func (f *fakeExec) record(cmd, arg string) {
	f.calls = append(f.calls, cmd)
	if f.args == nil {
		f.args = map[string]string{}
	}
	f.args[cmd] = arg
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Register(ctx context.Context) error {
	f.record("register", "")
	return nil
}
func (f *fakeExec) Login(ctx context.Context) error {
	f.record("login", "")
	f.loggedIn = true
	return nil
}
func (f *fakeExec) Logout(ctx context.Context) error {
	f.record("logout", "")
	f.loggedIn = false
	return nil
}
func (f *fakeExec) List(ctx context.Context) error { f.record("list", ""); return nil }
func (f *fakeExec) Search(ctx context.Context, term string) error {
	f.record("search", term)
	return nil
}
func (f *fakeExec) Genre(ctx context.Context, name string) error {
	f.record("genre", name)
	return nil
}
func (f *fakeExec) Show(ctx context.Context, arg string) error {
	f.record("show", arg)
	return nil
}
func (f *fakeExec) Like(ctx context.Context, arg string) error {
	f.record("like", arg)
	return nil
}
func (f *fakeExec) Add(ctx context.Context) error     { f.record("add", ""); return nil }
func (f *fakeExec) MyBooks(ctx context.Context) error { f.record("mybooks", ""); return nil }
func (f *fakeExec) Update(ctx context.Context, arg string) error {
	f.record("update", arg)
	return nil
}
func (f *fakeExec) Delete(ctx context.Context, arg string) error {
	f.record("delete", arg)
	return nil
}
func (f *fakeExec) Profile(ctx context.Context) error { f.record("profile", ""); return nil }
func (f *fakeExec) DeleteAccount(ctx context.Context) error {
	f.record("account-delete", "")
	return nil
}

func TestRunREPL_LoginFlowAndCommands(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login",
		"help",
		"list",
		"search dune imperial",
		"genre Science Fiction",
		"show 2",
		"like 2",
		"mybooks",
		"foobar",
		"exit",
	}, "\n"))

	exec := &fakeExec{loggedIn: false}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "status" }, sc)

	wantOrder := []string{"login", "list", "search", "genre", "show", "like", "mybooks"}
	if len(exec.calls) < len(wantOrder) {
		t.Fatalf("few calls: %+v", exec.calls)
	}
	idx := 0
	for _, c := range exec.calls {
		if idx < len(wantOrder) && c == wantOrder[idx] {
			idx++
		}
	}
	if idx != len(wantOrder) {
		t.Fatalf("commands order mismatch: got %v, want subseq %v", exec.calls, wantOrder)
	}

	// multi-word arguments are joined back together
	if exec.args["search"] != "dune imperial" {
		t.Fatalf("search arg: %q", exec.args["search"])
	}
	if exec.args["genre"] != "Science Fiction" {
		t.Fatalf("genre arg: %q", exec.args["genre"])
	}
	if exec.args["like"] != "2" {
		t.Fatalf("like arg: %q", exec.args["like"])
	}
}

func TestRunREPL_ListAlias(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("l\nquit\n")
	exec := &fakeExec{}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 1 || exec.calls[0] != "list" {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}

func TestRunREPL_UnknownAndQuit(t *testing.T) {
	origPrint := printlnFn
	printlnFn = func(...any) (int, error) { return 0, nil }
	t.Cleanup(func() { printlnFn = origPrint })

	input := strings.NewReader("frobnicate\n\nquit\n")
	exec := &fakeExec{loggedIn: true}
	sc := bufio.NewScanner(input)

	runREPL(context.Background(), exec, func() string { return "s" }, sc)

	if len(exec.calls) != 0 {
		t.Fatalf("unexpected calls: %v", exec.calls)
	}
}
