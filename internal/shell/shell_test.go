package shell

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/hambosto/vaultfs/internal/header"
	"github.com/hambosto/vaultfs/internal/session"
	"github.com/hambosto/vaultfs/internal/vault"
)

func newTestSession(t *testing.T) *session.Session {
	t.Helper()
	path := filepath.Join(t.TempDir(), "vault.dat")
	c, err := vault.Open(path)
	if err != nil {
		t.Fatalf("vault.Open failed: %v", err)
	}
	t.Cleanup(func() { c.Close() })

	payload, err := header.NewPayload(0)
	if err != nil {
		t.Fatalf("NewPayload failed: %v", err)
	}
	s, err := session.New(0, payload, c)
	if err != nil {
		t.Fatalf("session.New failed: %v", err)
	}
	return s
}

func runScript(t *testing.T, s *session.Session, script string) string {
	t.Helper()
	var out strings.Builder
	sh := New(s, strings.NewReader(script), &out)
	sh.Run()
	return out.String()
}

func TestShellCreateWriteReadCycle(t *testing.T) {
	s := newTestSession(t)
	out := runScript(t, s, "mkdir docs\ncd docs\ntouch notes\nwrite notes hello vault world\ncat notes\nquit\n")

	if !strings.Contains(out, "hello vault world") {
		t.Errorf("output missing written content: %q", out)
	}
}

func TestShellUnknownCommand(t *testing.T) {
	s := newTestSession(t)
	out := runScript(t, s, "frobnicate\nquit\n")
	if !strings.Contains(out, "Unknown command: frobnicate") {
		t.Errorf("output = %q, want Unknown command message", out)
	}
}

func TestShellRmThenCatNotFound(t *testing.T) {
	s := newTestSession(t)
	out := runScript(t, s, "touch a\nrm a\ncat a\nquit\n")
	if !strings.Contains(out, "error:") {
		t.Errorf("output = %q, want an error reading a removed file", out)
	}
}

func TestShellLsShowsDirectChildrenOnly(t *testing.T) {
	s := newTestSession(t)
	out := runScript(t, s, "mkdir docs\ntouch top\ncd docs\ntouch nested\ncd /\nls\nquit\n")
	if !strings.Contains(out, "top") || strings.Contains(out, "nested") {
		t.Errorf("ls at root leaked into subdirectory: %q", out)
	}
}
