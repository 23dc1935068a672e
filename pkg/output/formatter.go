package output

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ritzau/graphsketch/pkg/model"
)

// PrintReport prints a colored summary of a snapshot to w
func PrintReport(w io.Writer, title string, snap *model.Snapshot) {
	// Color definitions
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	cyan := color.New(color.FgCyan)
	magenta := color.New(color.FgMagenta)

	// Header
	bold.Fprintf(w, "graphsketch - %s\n", title)
	bold.Fprintln(w, "====================")
	fmt.Fprintf(w, "Mode: %s\n", snap.Mode)

	summaryColor := green
	if snap.Status.Components > 1 {
		summaryColor = yellow
	}
	summaryColor.Fprintln(w, snap.Status.String())
	fmt.Fprintln(w)

	if len(snap.Vertices) > 0 {
		bold.Fprintln(w, "VERTICES:")
		for _, v := range snap.Vertices {
			line := fmt.Sprintf("  #%d at (%g, %g) r=%g degree=%d", v.ID, v.X, v.Y, v.Radius, v.Degree)
			switch {
			case v.Selected:
				magenta.Fprintf(w, "%s [selected]\n", line)
			case v.Degree == 0:
				yellow.Fprintf(w, "%s [isolated]\n", line)
			default:
				fmt.Fprintln(w, line)
			}
		}
		fmt.Fprintln(w)
	}

	if len(snap.Edges) > 0 {
		bold.Fprintln(w, "EDGES:")
		for _, e := range snap.Edges {
			line := fmt.Sprintf("  e%d: #%d - #%d", e.Number, e.From, e.To)
			switch {
			case e.Loop:
				cyan.Fprintf(w, "%s [loop]\n", line)
			case e.Parallel > 1:
				cyan.Fprintf(w, "%s [parallel x%d]\n", line, e.Parallel)
			default:
				fmt.Fprintln(w, line)
			}
		}
		fmt.Fprintln(w)
	}

	if snap.Status.Components <= 1 {
		green.Fprintln(w, "✓ Graph is connected")
	} else {
		yellow.Fprintf(w, "Graph has %d components\n", snap.Status.Components)
	}
}
