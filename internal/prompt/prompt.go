// Package prompt asks the user before an existing output file is replaced.
package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"playlist-archiver/internal/errs"
)

// ConfirmOverwrite asks whether the file called name may be overwritten and
// keeps asking until the answer is y or n. End of input counts as n.
func ConfirmOverwrite(in io.Reader, out io.Writer, name string) (bool, error) {
	sc := bufio.NewScanner(in)
	for {
		if _, err := fmt.Fprintf(out, "File with name %s already exists, overwrite the file? (y/n) ", name); err != nil {
			return false, err
		}
		if !sc.Scan() {
			if err := sc.Err(); err != nil {
				return false, err
			}
			fmt.Fprintln(out)
			return false, nil
		}
		switch strings.ToLower(strings.TrimSpace(sc.Text())) {
		case "y":
			return true, nil
		case "n":
			return false, nil
		}
	}
}

// IsTerminal reports whether r is a terminal the user can answer on.
func IsTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Guard decides whether an output path may be written.
type Guard struct {
	In  io.Reader
	Out io.Writer
	// Yes skips the question.
	Yes bool
	// TTY is whether In can be prompted.
	TTY bool
}

// NewGuard returns a Guard reading answers from in.
func NewGuard(in io.Reader, out io.Writer, yes bool) Guard {
	return Guard{In: in, Out: out, Yes: yes, TTY: IsTerminal(in)}
}

// Check returns nil when path is absent or may be replaced. It returns
// errs.ErrDeclined when the user says no and errs.ErrNotInteractive when it
// cannot ask.
func (g Guard) Check(path string) error {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("%s: %w", path, err)
	}
	if g.Yes {
		return nil
	}
	if !g.TTY {
		return fmt.Errorf("%s: %w", path, errs.ErrNotInteractive)
	}
	ok, err := ConfirmOverwrite(g.In, g.Out, path)
	if err != nil {
		return err
	}
	if !ok {
		return errs.ErrDeclined
	}
	return nil
}
