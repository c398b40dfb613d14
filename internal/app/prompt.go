package app

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/amaumene/jellyfav/internal/config"
	"github.com/amaumene/jellyfav/internal/domain"
)

type Credentials struct {
	Username string
	Password string
}

type Prompter interface {
	Username() (string, error)
	Password() (string, error)
}

// TerminalPrompter asks on the terminal and reads the password without echo
// when stdin is a TTY.
type TerminalPrompter struct {
	in  *bufio.Reader
	out io.Writer
	fd  int
}

func NewTerminalPrompter() *TerminalPrompter {
	return &TerminalPrompter{
		in:  bufio.NewReader(os.Stdin),
		out: os.Stderr,
		fd:  int(os.Stdin.Fd()),
	}
}

func (p *TerminalPrompter) Username() (string, error) {
	fmt.Fprint(p.out, "Jellyfin username: ")
	return p.readLine()
}

func (p *TerminalPrompter) Password() (string, error) {
	fmt.Fprint(p.out, "Jellyfin password: ")
	if !term.IsTerminal(p.fd) {
		return p.readLine()
	}

	secret, err := term.ReadPassword(p.fd)
	fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return string(secret), nil
}

func (p *TerminalPrompter) readLine() (string, error) {
	line, err := p.in.ReadString('\n')
	if err != nil && (err != io.EOF || line == "") {
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// resolveCredentials uses configured values and prompts only for what is
// missing.
func resolveCredentials(cfg *config.Config, prompter Prompter) (Credentials, error) {
	creds := Credentials{Username: cfg.Username, Password: cfg.Password}
	if cfg.HasCredentials() {
		return creds, nil
	}

	if creds.Username == "" {
		if prompter == nil {
			return Credentials{}, fmt.Errorf("%w: username", domain.ErrMissingCredentials)
		}
		username, err := prompter.Username()
		if err != nil {
			return Credentials{}, err
		}
		creds.Username = strings.TrimSpace(username)
	}
	if creds.Username == "" {
		return Credentials{}, fmt.Errorf("%w: username", domain.ErrMissingCredentials)
	}

	if creds.Password == "" && prompter != nil {
		password, err := prompter.Password()
		if err != nil {
			return Credentials{}, err
		}
		creds.Password = password
	}

	return creds, nil
}
