package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/custodia-labs/ncosearch-cli/internal/core/ports/driven"
)

// errNotInteractive is returned when a confirmation is needed but stdin is
// not a terminal.
var errNotInteractive = errors.New("refusing to delete without confirmation: stdin is not a terminal (use --yes)")

// Overridden in tests.
var (
	confirmInput  io.Reader = os.Stdin
	isInteractive           = func() bool { return term.IsTerminal(int(os.Stdin.Fd())) }
)

// promptConfirmer asks on the terminal and accepts only y or yes.
type promptConfirmer struct {
	in  io.Reader
	out io.Writer
}

// Confirm implements driven.Confirmer.
func (p promptConfirmer) Confirm(ctx context.Context, prompt string) (bool, error) {
	if !isInteractive() {
		return false, errNotInteractive
	}

	fmt.Fprintf(p.out, "%s [y/N]: ", prompt)

	answer := make(chan string, 1)
	go func() {
		line, _ := bufio.NewReader(p.in).ReadString('\n')
		answer <- line
	}()

	select {
	case <-ctx.Done():
		fmt.Fprintln(p.out)
		return false, ctx.Err()
	case line := <-answer:
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true, nil
		default:
			return false, nil
		}
	}
}

// confirmerFor returns the confirmer for a delete. --yes approves up front.
func confirmerFor(assumeYes bool, out io.Writer) driven.Confirmer {
	if assumeYes {
		return driven.ConfirmFunc(func(context.Context, string) (bool, error) { return true, nil })
	}
	return promptConfirmer{in: confirmInput, out: out}
}
