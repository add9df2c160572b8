package cli

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/programmor/pbhook/internal/provision"
)

var (
	createdColor = color.New(color.FgGreen)
	existsColor  = color.New(color.FgYellow)
	failedColor  = color.New(color.FgRed)
	faintColor   = color.New(color.Faint)
)

// printNotice returns a notifier printing one colored line per link result.
func printNotice(w io.Writer) func(provision.Result) {
	return func(r provision.Result) {
		c := existsColor
		switch r.Outcome {
		case provision.Created:
			c = createdColor
		case provision.Failed:
			c = failedColor
		}
		c.Fprintln(w, r.Notice())
	}
}

// printSummary prints the outcome tally for a link run.
func printSummary(w io.Writer, results []provision.Result) {
	created, existing, failed := provision.Counts(results)
	faintColor.Fprintf(w, "  %d created, %d already present, %d failed\n", created, existing, failed)
}

// stateLabel renders a link state as a short status icon like the doctor uses.
func stateLabel(s provision.State) string {
	switch s {
	case provision.StateLinked:
		return createdColor.Sprint("OK")
	case provision.StateMissing:
		return existsColor.Sprint("--")
	default:
		return failedColor.Sprint("!!")
	}
}

func fprintStatus(w io.Writer, st provision.LinkStatus) {
	fmt.Fprintf(w, "  [%s] %-24s %s", stateLabel(st.State), st.Name, st.State)
	if st.State == provision.StateMismatch {
		fmt.Fprintf(w, " (-> %s)", st.Target)
	}
	fmt.Fprintln(w)
}
