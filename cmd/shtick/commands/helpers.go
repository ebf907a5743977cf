package commands

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/thoreinstein/shtick/internal/logging"
	"github.com/thoreinstein/shtick/internal/manager"
	"github.com/thoreinstein/shtick/internal/shell"
)

// ANSI color codes for terminal output.
const (
	colorReset  = "\033[0m"
	colorBold   = "\033[1m"
	colorCyan   = "\033[36m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorGray   = "\033[90m"
)

// truncate shortens a string to maxLen runes, adding "..." if truncated.
func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// promptsEnabled reports whether interactive prompts may be shown:
// the user has not disabled them and stdin is a terminal.
func promptsEnabled(m *manager.Manager) bool {
	return m.Settings().Behavior.InteractiveMode && term.IsTerminal(int(os.Stdin.Fd()))
}

// confirm asks a yes/no question and returns the answer. EOF or a
// read failure counts as "no".
func confirm(r io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N]: ", question)

	reader := bufio.NewReader(r)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// printWarnings renders conflict warnings in yellow.
func printWarnings(w io.Writer, warnings []string) {
	for _, warning := range warnings {
		fmt.Fprintf(w, "%sWarning: %s%s\n", colorYellow, warning, colorReset)
	}
}

// offerSource prints the eval hint after a mutation when the current
// shell has a generated loader and auto_source_prompt is on. Quiet in
// pipes so scripted use stays clean.
func offerSource(w io.Writer, m *manager.Manager) {
	s := m.Settings()
	if !s.Behavior.AutoSourcePrompt || !s.Behavior.InteractiveMode || !logging.IsTTY(os.Stdout) {
		return
	}
	sh, err := shell.Detect()
	if err != nil {
		return
	}
	if _, err := os.Stat(m.Dir().LoaderFile(sh.String())); err != nil {
		return
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "To load changes in this shell:")
	if sh == shell.Fish {
		fmt.Fprintln(w, "  eval (shtick source)")
	} else {
		fmt.Fprintln(w, "  eval \"$(shtick source)\"")
	}
}
