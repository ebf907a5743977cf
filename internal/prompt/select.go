// Package prompt provides line-based interactive prompts for CLI commands.
//
// It is the plain fallback when the full-screen fuzzy picker is
// disabled: numbered options on stdout, one line of input on stdin.
package prompt

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/thoreinstein/shtick/internal/errors"
)

// Sentinel errors for selection prompts.
var (
	ErrNothingToSelect    = errors.New("nothing to select from")
	ErrInvalidSelection   = errors.New("invalid selection")
	ErrSelectionCancelled = errors.New("selection cancelled")
)

// Selector handles numbered selection prompts.
type Selector struct {
	reader io.Reader
	writer io.Writer
}

// NewSelector creates a Selector using stdin and stdout.
func NewSelector() *Selector {
	return &Selector{
		reader: os.Stdin,
		writer: os.Stdout,
	}
}

// NewSelectorWithIO creates a Selector with custom reader and writer for testing.
func NewSelectorWithIO(r io.Reader, w io.Writer) *Selector {
	return &Selector{
		reader: r,
		writer: w,
	}
}

// Select prompts the user to choose one of options, shown under the
// given header line, and returns the chosen index.
//
// Returns:
//   - ErrNothingToSelect if options is empty
//   - 0 without prompting if only one option exists
//   - the index of the numbered answer; empty input defaults to 0
//   - ErrInvalidSelection if the answer is out of range or not a number
//   - ErrSelectionCancelled if input is EOF (e.g., Ctrl+D)
func (s *Selector) Select(header string, options []string) (int, error) {
	if len(options) == 0 {
		return 0, ErrNothingToSelect
	}

	// Auto-select if only one option
	if len(options) == 1 {
		return 0, nil
	}

	fmt.Fprintln(s.writer, header)
	for i, option := range options {
		fmt.Fprintf(s.writer, "  [%d] %s\n", i+1, option)
	}
	fmt.Fprintf(s.writer, "Select [1]: ")

	reader := bufio.NewReader(s.reader)
	input, err := reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) {
			return 0, ErrSelectionCancelled
		}
		return 0, errors.Wrap(err, "reading selection")
	}

	input = strings.TrimSpace(input)

	// Default to first option if empty
	if input == "" {
		return 0, nil
	}

	selection, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidSelection, "%q is not a number", input)
	}

	// Validate range (1-indexed)
	if selection < 1 || selection > len(options) {
		return 0, errors.Wrapf(ErrInvalidSelection, "%d is out of range [1-%d]", selection, len(options))
	}

	return selection - 1, nil
}
