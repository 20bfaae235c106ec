package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"charm.land/lipgloss/v2"

	"github.com/conorfennell/ankisocial/internal/achievement"
)

const dateLayout = "2006-01-02"

var (
	accent  = lipgloss.Color("#8B5CF6")
	success = lipgloss.Color("#22C55E")
	dim     = lipgloss.Color("#94A3B8")

	headingStyle  = lipgloss.NewStyle().Bold(true).Foreground(accent)
	unlockedStyle = lipgloss.NewStyle().Bold(true).Foreground(success)
	hintStyle     = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// Write renders the full report.
func Write(w io.Writer, st Stats, sum achievement.Summary) error {
	var b strings.Builder

	section(&b, "Totals")
	writeTotals(&b, st)

	section(&b, "Reviews")
	for _, d := range st.Daily {
		fmt.Fprintf(&b, "On %s, you did %d reviews\n", d.From.Format(dateLayout), d.Count)
	}

	section(&b, "Scores")
	for _, s := range sum.Standings {
		fmt.Fprintf(&b, "%s: %d\n", s.Name, s.Value)
		if s.Diagram != "" {
			fmt.Fprintln(&b, hintStyle.Render(s.Diagram))
		}
	}

	section(&b, "Creations")
	for _, c := range st.Creations {
		fmt.Fprintf(&b, "Between %s and %s, you created %d cards\n",
			c.From.Format(dateLayout), c.To.Format(dateLayout), c.Count)
	}

	section(&b, "New achievements")
	unlocked := sum.Unlocked.Sorted()
	if len(unlocked) == 0 {
		fmt.Fprintln(&b, hintStyle.Render("Nothing new since the last run."))
	}
	for _, a := range unlocked {
		fmt.Fprintln(&b, unlockedStyle.Render(a))
	}

	section(&b, "Upcoming achievements")
	for _, u := range sum.Upcoming {
		fmt.Fprintln(&b, u)
	}

	// Fprint downsamples the styles to what w supports, stripping them
	// entirely for files, pipes and NO_COLOR.
	_, err := lipgloss.Fprint(w, b.String())
	return err
}

func section(b *strings.Builder, name string) {
	fmt.Fprintf(b, "\n%s\n%s\n\n", headingStyle.Render(name), strings.Repeat("=", len(name)))
}

func writeTotals(b *strings.Builder, st Stats) {
	fmt.Fprintf(b, "You have %d cards.\n", st.Cards)
	if st.FirstReview.IsZero() {
		fmt.Fprintln(b, "You have not reviewed any cards yet.")
		return
	}
	fmt.Fprintf(b, "You did %d reviews since %s (that's %.2f reviews per day).\n",
		st.Reviews, st.FirstReview.Format(dateLayout), st.ReviewsPerDay)
	fmt.Fprintf(b, "You spent %s reviewing cards.\n", spent(st.Spent))
	fmt.Fprintf(b, "(That's %.2f minutes per day.)\n", st.MinutesPerDay)
}

// spent picks the coarsest unit that still reads as more than one.
func spent(d time.Duration) string {
	minutes := int64(d / time.Minute)
	hours := minutes / 60
	days := hours / 24
	switch {
	case days > 1:
		return fmt.Sprintf("%d days", days)
	case hours > 1:
		return fmt.Sprintf("%d hours", hours)
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
