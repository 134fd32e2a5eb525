package input

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/EmekaIwuagwu/keyforge/internal/config"
	"golang.org/x/term"
)

// ErrMissingPassword is returned when a password is required but no source provides one
var ErrMissingPassword = errors.New("password required")

// Prompter reads a line of hidden input after showing prompt
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// TerminalPrompter reads from a terminal with echo disabled. When In is not
// a terminal, as with a piped message, the controlling terminal is used.
type TerminalPrompter struct {
	In  *os.File
	Out io.Writer

	// OpenTTY opens the controlling terminal
	OpenTTY func() (*os.File, error)
}

// NewTerminalPrompter prompts on stderr and reads from stdin
func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		In:      os.Stdin,
		Out:     os.Stderr,
		OpenTTY: openTTY,
	}
}

func openTTY() (*os.File, error) {
	return os.OpenFile("/dev/tty", os.O_RDWR, 0)
}

// Prompt implements Prompter
func (p *TerminalPrompter) Prompt(prompt string) (string, error) {
	fd := int(p.In.Fd())
	if !term.IsTerminal(fd) {
		if p.OpenTTY == nil {
			return "", errors.New("stdin is not a terminal")
		}
		tty, err := p.OpenTTY()
		if err != nil {
			return "", fmt.Errorf("stdin is not a terminal and no tty is available: %w", err)
		}
		defer tty.Close()
		fd = int(tty.Fd())
	}

	fmt.Fprint(p.Out, prompt)
	defer fmt.Fprintln(p.Out)

	raw, err := term.ReadPassword(fd)
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	value := string(raw)
	clear(raw)
	return value, nil
}

// ReadURI resolves the key material argument. A value naming an existing
// file is replaced by the file contents, an empty value is prompted for.
func ReadURI(value string, prompter Prompter) (string, error) {
	if value == "" {
		uri, err := prompter.Prompt("URI: ")
		if err != nil {
			return "", err
		}
		return uri, nil
	}

	if info, err := os.Stat(value); err == nil && !info.IsDir() {
		return readTrimmed(value)
	}
	return value, nil
}

// ResolvePassword picks the key password from, in order, an interactive
// prompt, an explicit value and a password file
func ResolvePassword(cfg config.PasswordConfig, required bool, prompter Prompter) (string, error) {
	switch {
	case cfg.Interactive:
		return prompter.Prompt("Key password: ")
	case cfg.Set:
		return cfg.Value, nil
	case cfg.Filename != "":
		return readTrimmed(cfg.Filename)
	case required:
		return "", ErrMissingPassword
	default:
		return "", nil
	}
}

func readTrimmed(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	value := strings.TrimRight(string(data), " \t\r\n")
	clear(data)
	return value, nil
}
