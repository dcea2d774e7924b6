package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/bastiangx/unscramble/internal/utils"
	"github.com/bastiangx/unscramble/pkg/solver"
	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

// display renders results on stdout. Colors are only used on a terminal so
// piped output stays plain.
type display struct {
	out     io.Writer
	perLine int
	color   bool

	wordStyle    lipgloss.Style
	summaryStyle lipgloss.Style
}

func newDisplay(out io.Writer, perLine int) *display {
	return &display{
		out:          out,
		perLine:      perLine,
		color:        isTerminal(out),
		wordStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("75")),
		summaryStyle: lipgloss.NewStyle().Faint(true),
	}
}

func isTerminal(v any) bool {
	f, ok := v.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// words prints ranked words in rows. Styling is applied per word so the
// column gap stays plain spaces.
func (d *display) words(words []string) {
	if len(words) == 0 {
		return
	}
	if d.color {
		styled := make([]string, len(words))
		for i, w := range words {
			styled[i] = d.wordStyle.Render(w)
		}
		words = styled
	}
	fmt.Fprintln(d.out, solver.Format(words, d.perLine))
}

func (d *display) result(res *solver.Result) {
	d.words(res.Words)
	d.summary(fmt.Sprintf("Found %s %s in %ds",
		utils.FormatWithCommas(res.Count), utils.Plural(res.Count, "word", "words"), res.ElapsedSeconds()))
}

func (d *display) lookup(prefix string, words []string) {
	d.words(words)
	d.summary(fmt.Sprintf("%s %s starting with %q",
		utils.FormatWithCommas(len(words)), utils.Plural(len(words), "entry", "entries"), prefix))
}

func (d *display) summary(line string) {
	if d.color {
		line = d.summaryStyle.Render(line)
	}
	fmt.Fprintln(d.out, line)
}

func (d *display) prompt() {
	fmt.Fprint(d.out, "> ")
}

// formatElapsed rounds load times for humans.
func formatElapsed(d time.Duration) string {
	if d < time.Second {
		return d.Round(time.Millisecond).String()
	}
	return d.Round(10 * time.Millisecond).String()
}
