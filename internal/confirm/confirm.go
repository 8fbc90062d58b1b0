package confirm

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Confirmer asks the user whether to proceed with deletion. In and Out are
// injectable so tests can supply canned responses instead of a terminal.
type Confirmer struct {
	In  io.Reader
	Out io.Writer
}

// New creates a Confirmer reading from in and prompting on out.
func New(in io.Reader, out io.Writer) *Confirmer {
	return &Confirmer{In: in, Out: out}
}

// Confirm prompts for a yes/no answer and returns true only for "y" or
// "Y". Anything else, including empty input or a closed input stream,
// declines.
func (c *Confirmer) Confirm(count int, sizeText string) bool {
	if sizeText != "" {
		fmt.Fprintf(c.Out, "Delete %d matched folder(s) (%s)? [y/N] ", count, sizeText)
	} else {
		fmt.Fprintf(c.Out, "Delete %d matched folder(s)? [y/N] ", count)
	}

	scanner := bufio.NewScanner(c.In)
	if !scanner.Scan() {
		return false
	}

	answer := strings.TrimSpace(scanner.Text())
	return strings.EqualFold(answer, "y")
}
