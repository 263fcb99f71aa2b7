package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/oraad/ogero-sensors/internal/application"
)

var errPromptClosed = errors.New("input closed before a value was entered")

// prompter reads answers line by line; prompts go to stderr so stdout stays
// parseable.
type prompter struct {
	in  *bufio.Reader
	out io.Writer
	// tty is set when input is an interactive terminal.
	tty *os.File
}

func newPrompter(cmd *cobra.Command) *prompter {
	p := &prompter{in: bufio.NewReader(cmd.InOrStdin()), out: cmd.ErrOrStderr()}
	if file, ok := cmd.InOrStdin().(*os.File); ok && term.IsTerminal(int(file.Fd())) {
		p.tty = file
	}
	return p
}

func (p *prompter) ask(label string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s: ", label)
	line, err := p.in.ReadString('\n')
	line = strings.TrimSpace(line)
	if err != nil && line == "" {
		if errors.Is(err, io.EOF) {
			return "", fmt.Errorf("%s: %w", strings.ToLower(label), errPromptClosed)
		}
		return "", err
	}
	return line, nil
}

// askSecret reads without echo on a terminal and falls back to ask.
func (p *prompter) askSecret(label string) (string, error) {
	if p.tty == nil {
		return p.ask(label)
	}

	_, _ = fmt.Fprintf(p.out, "%s: ", label)
	secret, err := term.ReadPassword(int(p.tty.Fd()))
	_, _ = fmt.Fprintln(p.out)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", strings.ToLower(label), err)
	}
	return strings.TrimSpace(string(secret)), nil
}

func (p *prompter) valueOr(preset, label string) (string, error) {
	if strings.TrimSpace(preset) != "" {
		return preset, nil
	}
	return p.ask(label)
}

func (p *prompter) secretOr(preset, label string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	return p.askSecret(label)
}

// chooseAccount picks an upstream account: the preset serial when given, the
// only option when there is one, otherwise a numbered choice.
func (p *prompter) chooseAccount(options []application.SelectOption, preset, preferred string) (string, error) {
	if preset != "" {
		return preset, nil
	}
	if len(options) == 0 {
		return "", errors.New("no account found for these credentials")
	}
	if len(options) == 1 {
		_, _ = fmt.Fprintf(p.out, "Using account %s\n", options[0].Label)
		return options[0].Value, nil
	}

	defaultChoice := 0
	for i, option := range options {
		marker := ""
		if option.Value == preferred {
			defaultChoice = i + 1
			marker = " (current)"
		}
		_, _ = fmt.Fprintf(p.out, "  %d) %s%s\n", i+1, option.Label, marker)
	}

	label := "Account number"
	if defaultChoice > 0 {
		label = fmt.Sprintf("Account number [%d]", defaultChoice)
	}
	answer, err := p.ask(label)
	if err != nil {
		return "", err
	}
	if answer == "" && defaultChoice > 0 {
		return options[defaultChoice-1].Value, nil
	}

	n, err := strconv.Atoi(answer)
	if err != nil || n < 1 || n > len(options) {
		return "", fmt.Errorf("account number must be between 1 and %d", len(options))
	}
	return options[n-1].Value, nil
}

var flowErrorMessages = map[string]string{
	application.ErrorAuth:                     "invalid username or password",
	application.ErrorConnection:               "cannot connect to the Ogero portal",
	application.ErrorUnknown:                  "unexpected error, see the log for details",
	application.ErrorAccountAlreadyConfigured: "this account is already configured",
}

func flowError(result application.FlowResult) error {
	if result.Type != application.FlowResultForm || len(result.Errors) == 0 {
		return nil
	}

	fields := make([]string, 0, len(result.Errors))
	for field := range result.Errors {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	messages := make([]string, 0, len(fields))
	for _, field := range fields {
		code := result.Errors[field]
		message, ok := flowErrorMessages[code]
		if !ok {
			message = code
		}
		messages = append(messages, message)
	}

	return errors.New(strings.Join(messages, "; "))
}
