package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/shaiso/zide/internal/boards"
	"github.com/shaiso/zide/internal/mockide"
)

// harness — фейковый сервер и фабрики для команд.
type harness struct {
	server  *httptest.Server
	handler *mockide.Handler
	stdout  bytes.Buffer
	stderr  bytes.Buffer
	apiKey  string
	json    bool
}

func newHarness(t *testing.T, serverKey string) *harness {
	t.Helper()
	h := &harness{
		handler: mockide.NewHandler(mockide.Config{
			State:  mockide.DefaultState(),
			APIKey: serverKey,
			Logger: quietLogger(),
		}),
	}
	mux := http.NewServeMux()
	h.handler.RegisterRoutes(mux)
	h.server = httptest.NewServer(mux)
	t.Cleanup(h.server.Close)
	return h
}

func (h *harness) clientFn(opts ...Option) *Client {
	base := []Option{WithLogger(quietLogger())}
	if h.apiKey != "" {
		base = append(base, WithAPIKey(h.apiKey))
	}
	return NewClient(h.server.URL, append(base, opts...)...)
}

func (h *harness) outputFn() *Output {
	return NewOutputTo(h.json, &h.stdout, &h.stderr)
}

func execute(cmd *cobra.Command, args ...string) error {
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true
	return cmd.ExecuteContext(context.Background())
}

func TestStatusCmd(t *testing.T) {
	h := newHarness(t, "")

	if err := execute(NewStatusCmd(h.clientFn, h.outputFn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := h.stdout.String()
	for _, want := range []string{"VERSION", "1.0.0", "true", "blinky"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestStatusCmd_JSON(t *testing.T) {
	h := newHarness(t, "")
	h.json = true

	if err := execute(NewStatusCmd(h.clientFn, h.outputFn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var status Status
	if err := json.Unmarshal(h.stdout.Bytes(), &status); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, h.stdout.String())
	}
	if status.Version != "1.0.0" || status.ActiveProject != "blinky" {
		t.Errorf("unexpected status %+v", status)
	}
}

func TestStatusCmd_Unauthorized(t *testing.T) {
	h := newHarness(t, "secret")

	err := execute(NewStatusCmd(h.clientFn, h.outputFn))
	if !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !strings.Contains(h.stderr.String(), "API key is correct") {
		t.Errorf("expected key hint, got %q", h.stderr.String())
	}

	h.stderr.Reset()
	h.apiKey = "secret"
	if err := execute(NewStatusCmd(h.clientFn, h.outputFn)); err != nil {
		t.Fatalf("expected success with key, got %v", err)
	}
}

func TestStatusCmd_Unreachable(t *testing.T) {
	h := newHarness(t, "")
	h.server.Close()

	err := execute(NewStatusCmd(h.clientFn, h.outputFn))
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}
	if !strings.Contains(h.stderr.String(), "running on "+h.server.URL) {
		t.Errorf("expected server hint, got %q", h.stderr.String())
	}
}

func TestProjectsCmd(t *testing.T) {
	h := newHarness(t, "")

	if err := execute(NewProjectsCmd(h.clientFn, h.outputFn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "blinky") || !strings.Contains(h.stdout.String(), "debug") {
		t.Errorf("unexpected output:\n%s", h.stdout.String())
	}
}

func TestWorkspaceCmd(t *testing.T) {
	h := newHarness(t, "")

	if err := execute(NewWorkspaceCmd(h.clientFn, h.outputFn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "/home/user/zephyrproject") {
		t.Errorf("unexpected output:\n%s", h.stdout.String())
	}
}

func TestBuildCmd(t *testing.T) {
	h := newHarness(t, "")

	if err := execute(NewBuildCmd(h.clientFn, h.outputFn), "--project", "blinky", "--pristine"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "Build triggered: Build started for blinky/debug (pristine)"
	if strings.TrimSpace(h.stderr.String()) != expected {
		t.Errorf("expected %q, got %q", expected, h.stderr.String())
	}

	actions := h.handler.Actions()
	if len(actions) != 1 {
		t.Fatalf("expected 1 action, got %d", len(actions))
	}
	if actions[0].Kind != "build" || !actions[0].Pristine {
		t.Errorf("unexpected action %+v", actions[0])
	}
}

func TestBuildCmd_UnknownProject(t *testing.T) {
	h := newHarness(t, "")

	err := execute(NewBuildCmd(h.clientFn, h.outputFn), "--project", "nope")
	if !errors.Is(err, ErrServer) {
		t.Fatalf("expected ErrServer, got %v", err)
	}
	if apiMessage(err) != "Project 'nope' not found" {
		t.Errorf("unexpected message %q", apiMessage(err))
	}
	if len(h.handler.Actions()) != 0 {
		t.Error("no action should be recorded")
	}
}

func TestFlashCmd_ActiveProject(t *testing.T) {
	h := newHarness(t, "")

	if err := execute(NewFlashCmd(h.clientFn, h.outputFn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := "Flash triggered: Flash started for blinky/debug"
	if strings.TrimSpace(h.stderr.String()) != expected {
		t.Errorf("expected %q, got %q", expected, h.stderr.String())
	}
}

func TestRequestCmd(t *testing.T) {
	h := newHarness(t, "")

	if err := execute(NewRequestCmd(h.clientFn, h.outputFn), "get", "/status"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var result struct {
		Status  int            `json:"status"`
		Payload map[string]any `json:"payload"`
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &result); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if result.Status != http.StatusOK || result.Payload["success"] != true {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestRequestCmd_Errors(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
		text   string
	}{
		{name: "unsupported method", args: []string{"DELETE", "status"}, target: ErrUnsupportedMethod},
		{name: "bad data", args: []string{"POST", "build", "--data", "{"}, text: "--data is not valid JSON"},
		{name: "not found", args: []string{"POST", "build", "--data", `{"projectName":"nope"}`}, target: ErrServer},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, "")
			err := execute(NewRequestCmd(h.clientFn, h.outputFn), tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Errorf("expected %v, got %v", tt.target, err)
			}
			if tt.text != "" && !strings.Contains(err.Error(), tt.text) {
				t.Errorf("expected %q in %v", tt.text, err)
			}
		})
	}
}

func TestDemoCmd(t *testing.T) {
	h := newHarness(t, "")

	if err := execute(NewDemoCmd(h.clientFn, h.outputFn)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	out := h.stdout.String()
	for _, want := range []string{
		"✓ Extension version: 1.0.0",
		"✓ Active project: blinky",
		"✓ Found 1 project(s):",
		"  - blinky (builds: debug)",
		"✓ Root path: /home/user/zephyrproject",
		"4. Example: Building project 'blinky'...",
		"✓ Build triggered: Build started for blinky/debug",
		"API client example completed!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in output:\n%s", want, out)
		}
	}
}

func TestDemoCmd_StatusFailureStops(t *testing.T) {
	h := newHarness(t, "")
	h.server.Close()

	err := execute(NewDemoCmd(h.clientFn, h.outputFn))
	if !errors.Is(err, ErrUnreachable) {
		t.Fatalf("expected ErrUnreachable, got %v", err)
	}

	out := h.stdout.String()
	if !strings.Contains(out, "✗ Failed to get status: Connection error") {
		t.Errorf("expected failure line, got:\n%s", out)
	}
	if strings.Contains(out, "2. Listing projects") {
		t.Errorf("demo must stop after status failure:\n%s", out)
	}
}

func TestDemoCmd_AskKey(t *testing.T) {
	h := newHarness(t, "secret")

	cmd := NewDemoCmd(h.clientFn, h.outputFn)
	cmd.SetIn(strings.NewReader("secret\n"))
	if err := execute(cmd, "--ask-key"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(h.stdout.String(), "✓ Extension version: 1.0.0") {
		t.Errorf("unexpected output:\n%s", h.stdout.String())
	}
}

func TestWatchCmd(t *testing.T) {
	h := newHarness(t, "")

	if err := execute(NewWatchCmd(h.clientFn, h.outputFn), "--count", "1"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(h.stdout.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header, separator and one row, got:\n%s", h.stdout.String())
	}
	if !strings.Contains(lines[2], "1.0.0") {
		t.Errorf("unexpected row %q", lines[2])
	}
}

func TestWatchCmd_PollErrorDoesNotStop(t *testing.T) {
	h := newHarness(t, "")
	h.json = true
	h.server.Close()

	if err := execute(NewWatchCmd(h.clientFn, h.outputFn), "--count", "1"); err != nil {
		t.Fatalf("poll failure must not fail watch: %v", err)
	}

	var entry struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(h.stdout.Bytes(), &entry); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if !strings.Contains(entry.Error, "unreachable") {
		t.Errorf("unexpected error %q", entry.Error)
	}
}

func TestWatchCmd_InvalidSchedule(t *testing.T) {
	h := newHarness(t, "")

	err := execute(NewWatchCmd(h.clientFn, h.outputFn), "--schedule", "every now and then")
	if err == nil || !strings.Contains(err.Error(), "invalid schedule") {
		t.Fatalf("expected invalid schedule error, got %v", err)
	}
}

// stubDiscoverer возвращает фиксированный список и запоминает корни.
type stubDiscoverer struct {
	boards []boards.Board
	roots  boards.Roots
}

func (s *stubDiscoverer) FindBoards(roots boards.Roots) ([]boards.Board, error) {
	s.roots = roots
	return s.boards, nil
}

func TestBoardsCmd(t *testing.T) {
	d := &stubDiscoverer{boards: []boards.Board{
		{Name: "nrf52840dk_nrf52840", Arch: "arm", Dir: "/z/boards/arm/nrf52840dk_nrf52840"},
		{Name: "qemu_x86", Arch: "x86", Dir: "/z/boards/x86/qemu_x86"},
	}}

	var out bytes.Buffer
	cmd := NewBoardsCmd(boards.Config{Base: "/z"}, d)
	cmd.SetArgs([]string{"-n", "^nrf", "-f", "{name}:{arch}", "--board-root", "/extra"})
	cmd.SetOut(&out)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "nrf52840dk_nrf52840:arm\n" {
		t.Errorf("unexpected output %q", out.String())
	}
	if len(d.roots.BoardRoots) != 1 || d.roots.BoardRoots[0] != "/extra" {
		t.Errorf("unexpected board roots %v", d.roots.BoardRoots)
	}
	if d.roots.ArchRoots[0] != "/z" {
		t.Errorf("arch roots must stay pinned to base, got %v", d.roots.ArchRoots)
	}
}

func TestBoardsCmd_DefaultBoardRoot(t *testing.T) {
	d := &stubDiscoverer{}
	cmd := NewBoardsCmd(boards.Config{Base: "/z"}, d)
	cmd.SetArgs([]string{})
	cmd.SetOut(io.Discard)

	if err := cmd.Execute(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(d.roots.BoardRoots) != 1 || d.roots.BoardRoots[0] != "/z" {
		t.Errorf("expected ZEPHYR_BASE as the only board root, got %v", d.roots.BoardRoots)
	}
	if !strings.Contains(cmd.Long, "searches no board roots") {
		t.Error("help must describe the default board root")
	}
}

func TestBoardsCmd_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		target error
	}{
		{name: "bad pattern", args: []string{"-n", "("}, target: boards.ErrInvalidPattern},
		{name: "bad format", args: []string{"-f", "{board}"}, target: boards.ErrInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := &stubDiscoverer{}
			cmd := NewBoardsCmd(boards.Config{Base: "/z"}, d)
			cmd.SetArgs(tt.args)
			cmd.SetOut(io.Discard)

			err := cmd.Execute()
			if !errors.Is(err, tt.target) {
				t.Fatalf("expected %v, got %v", tt.target, err)
			}
			if d.roots.ArchRoots != nil {
				t.Error("discovery must not run with invalid options")
			}
		})
	}
}

func TestResolveSettings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "base_url = \"http://file:1\"\napi_key = \"file-key\"\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	env := map[string]string{}
	lookup := func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	}

	s, err := ResolveSettings(Settings{}, path, lookup)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.BaseURL != "http://file:1" || s.APIKey != "file-key" {
		t.Errorf("file values expected, got %+v", s)
	}

	env[EnvAPIURL] = "http://env:2"
	s, _ = ResolveSettings(Settings{}, path, lookup)
	if s.BaseURL != "http://env:2" || s.APIKey != "file-key" {
		t.Errorf("env must override file, got %+v", s)
	}

	s, _ = ResolveSettings(Settings{BaseURL: "http://flag:3"}, path, lookup)
	if s.BaseURL != "http://flag:3" {
		t.Errorf("flags must override env, got %+v", s)
	}

	if _, err := ResolveSettings(Settings{}, filepath.Join(dir, "missing.toml"), lookup); err == nil {
		t.Error("explicit config path that does not exist must fail")
	}

	bad := filepath.Join(dir, "bad.toml")
	os.WriteFile(bad, []byte("base_url = "), 0o644)
	if _, err := ResolveSettings(Settings{}, bad, lookup); err == nil {
		t.Error("invalid TOML must fail")
	}
}

func TestLoadSettings_OptionalMissing(t *testing.T) {
	s, err := LoadSettings(filepath.Join(t.TempDir(), "none.toml"), false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s != (Settings{}) {
		t.Errorf("expected empty settings, got %+v", s)
	}
}

func TestHintFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{name: "unauthorized", err: &APIError{Kind: KindUnauthorized}, expected: "Make sure the API server is enabled and the API key is correct"},
		{name: "unreachable", err: &APIError{Kind: KindUnreachable}, expected: "Make sure the API server is running on http://x:1"},
		{name: "server", err: &APIError{Kind: KindServer}, expected: ""},
		{name: "other", err: errors.New("boom"), expected: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := hintFor(tt.err, "http://x:1"); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}
