package input

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/EmekaIwuagwu/keyforge/internal/config"
)

type stubPrompter struct {
	answer  string
	prompts []string
}

func (p *stubPrompter) Prompt(prompt string) (string, error) {
	p.prompts = append(p.prompts, prompt)
	return p.answer, nil
}

func writeFile(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "secret")
	if err := os.WriteFile(path, []byte(contents), 0o600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	return path
}

func TestReadURI_Value(t *testing.T) {
	p := &stubPrompter{}
	uri, err := ReadURI("//Alice", p)
	if err != nil {
		t.Fatalf("ReadURI failed: %v", err)
	}
	if uri != "//Alice" {
		t.Errorf("got %q, want //Alice", uri)
	}
	if len(p.prompts) != 0 {
		t.Error("value should not prompt")
	}
}

func TestReadURI_File(t *testing.T) {
	path := writeFile(t, "//Bob\n\n")
	uri, err := ReadURI(path, &stubPrompter{})
	if err != nil {
		t.Fatalf("ReadURI failed: %v", err)
	}
	if uri != "//Bob" {
		t.Errorf("got %q, want //Bob", uri)
	}
}

func TestReadURI_Prompt(t *testing.T) {
	p := &stubPrompter{answer: "//Charlie"}
	uri, err := ReadURI("", p)
	if err != nil {
		t.Fatalf("ReadURI failed: %v", err)
	}
	if uri != "//Charlie" {
		t.Errorf("got %q, want //Charlie", uri)
	}
	if len(p.prompts) != 1 || p.prompts[0] != "URI: " {
		t.Errorf("unexpected prompts %v", p.prompts)
	}
}

func TestResolvePassword(t *testing.T) {
	file := writeFile(t, "from-file \n")

	tests := []struct {
		name     string
		cfg      config.PasswordConfig
		required bool
		want     string
		wantErr  error
	}{
		{"interactive", config.PasswordConfig{Interactive: true}, false, "prompted", nil},
		{"value", config.PasswordConfig{Value: "pw", Set: true}, true, "pw", nil},
		{"empty value", config.PasswordConfig{Set: true}, true, "", nil},
		{"file", config.PasswordConfig{Filename: file}, false, "from-file", nil},
		{"optional", config.PasswordConfig{}, false, "", nil},
		{"required", config.PasswordConfig{}, true, "", ErrMissingPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolvePassword(tt.cfg, tt.required, &stubPrompter{answer: "prompted"})
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("error: got %v, want %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("password: got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolvePassword_MissingFile(t *testing.T) {
	_, err := ResolvePassword(config.PasswordConfig{Filename: "/nonexistent/pw"}, false, &stubPrompter{})
	if err == nil {
		t.Error("missing password file should fail")
	}
}

func TestTerminalPrompter_FallsBackToTTY(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	ttyErr := errors.New("no controlling terminal")
	opened := false
	p := &TerminalPrompter{
		In:  r,
		Out: io.Discard,
		OpenTTY: func() (*os.File, error) {
			opened = true
			return nil, ttyErr
		},
	}

	_, err = p.Prompt("URI: ")
	if !opened {
		t.Error("a piped stdin should fall back to the controlling terminal")
	}
	if !errors.Is(err, ttyErr) {
		t.Errorf("expected tty error, got %v", err)
	}
}

func TestTerminalPrompter_NoTTY(t *testing.T) {
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("failed to create pipe: %v", err)
	}
	defer r.Close()
	defer w.Close()

	p := &TerminalPrompter{In: r, Out: io.Discard}
	if _, err := p.Prompt("URI: "); err == nil {
		t.Error("prompt without any terminal should fail")
	}
}
