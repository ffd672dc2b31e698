package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"testing"

	"todokeeper/internal/client/models"
	"todokeeper/internal/client/session"
)

func stubInputs(t *testing.T, text string, passwords ...string) func() {
	t.Helper()
	origST, origGP := getSimpleText, getPassword

	getSimpleText = func(_ *bufio.Reader, _ string, _ io.Writer) (string, error) { return text, nil }
	i := 0
	getPassword = func(_ string, _ io.Writer) (string, error) {
		pw := passwords[i%len(passwords)]
		i++
		return pw, nil
	}
	return func() {
		getSimpleText = origST
		getPassword = origGP
	}
}

func capturePrintln(t *testing.T) (*[]string, func()) {
	t.Helper()
	var lines []string
	orig := printlnFn
	printlnFn = func(args ...any) {
		s := ""
		for i, a := range args {
			if i > 0 {
				s += " "
			}
			s += toString(a)
		}
		lines = append(lines, s)
	}
	return &lines, func() { printlnFn = orig }
}

func toString(a any) string {
	if s, ok := a.(string); ok {
		return s
	}
	return ""
}

type fakeSession struct {
	signUpEmail   string
	signUpPass    string
	signUpConfirm string
	signUpErr     error

	signInEmail string
	signInPass  string
	signInErr   error

	signOutCalled bool
	forcedOut     bool
	restored      bool

	state session.State
	user  *models.User
}

func (f *fakeSession) SignUp(_ context.Context, email, password, confirm string) error {
	f.signUpEmail, f.signUpPass, f.signUpConfirm = email, password, confirm
	return f.signUpErr
}

func (f *fakeSession) SignIn(_ context.Context, email, password string) error {
	f.signInEmail, f.signInPass = email, password
	return f.signInErr
}

func (f *fakeSession) SignOut(context.Context) { f.signOutCalled = true; f.user = nil }

func (f *fakeSession) ForceSignOut(context.Context) { f.forcedOut = true; f.user = nil }

func (f *fakeSession) Restore(context.Context) { f.restored = true }

func (f *fakeSession) State() session.State { return f.state }

func (f *fakeSession) CurrentUser() *models.User { return f.user }

func TestSignUp_PassesInputsThrough(t *testing.T) {
	restore := stubInputs(t, "alice@example.org", "longenough1", "longenough1")
	defer restore()
	_, restoreOut := capturePrintln(t)
	defer restoreOut()

	f := &fakeSession{}
	a := &App{session: f}

	if err := a.SignUp(context.Background()); err != nil {
		t.Fatalf("SignUp err: %v", err)
	}
	if f.signUpEmail != "alice@example.org" {
		t.Fatalf("email mismatch: %q", f.signUpEmail)
	}
	if f.signUpPass != "longenough1" || f.signUpConfirm != "longenough1" {
		t.Fatalf("password mismatch: %q / %q", f.signUpPass, f.signUpConfirm)
	}
}

func TestSignIn_ErrorShownInline(t *testing.T) {
	restore := stubInputs(t, "alice@example.org", "wrong")
	defer restore()
	lines, restoreOut := capturePrintln(t)
	defer restoreOut()

	f := &fakeSession{signInErr: errors.New("Invalid email or password")}
	a := &App{session: f}

	if err := a.SignIn(context.Background()); err == nil {
		t.Fatalf("want error")
	}
	if len(*lines) == 0 || (*lines)[0] != "Error: Invalid email or password" {
		t.Fatalf("error not shown inline: %v", *lines)
	}
}

func TestSignOut_AlwaysClears(t *testing.T) {
	_, restoreOut := capturePrintln(t)
	defer restoreOut()

	f := &fakeSession{user: &models.User{Email: "a@b.com"}}
	a := &App{session: f}

	if err := a.SignOut(context.Background()); err != nil {
		t.Fatalf("SignOut err: %v", err)
	}
	if !f.signOutCalled {
		t.Fatalf("session SignOut not called")
	}
}

func TestWhoAmI(t *testing.T) {
	lines, restoreOut := capturePrintln(t)
	defer restoreOut()

	a := &App{session: &fakeSession{user: &models.User{ID: "u-1", Email: "a@b.com"}}}
	if err := a.WhoAmI(context.Background()); err != nil {
		t.Fatalf("WhoAmI err: %v", err)
	}
	if (*lines)[0] != "Signed in as a@b.com (id u-1)" {
		t.Fatalf("unexpected output: %v", *lines)
	}
}
