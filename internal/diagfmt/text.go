package diagfmt

import (
	"bufio"
	"fmt"
	"io"

	"github.com/fatih/color"

	"scopelint/internal/diag"
)

var (
	invalidAttrs = []color.Attribute{color.FgRed, color.Bold}
	labelAttrs   = []color.Attribute{color.FgYellow}
	pathAttrs    = []color.Attribute{color.FgCyan}
	lineAttrs    = []color.Attribute{color.Faint}
)

// paint colours s regardless of color.NoColor; the caller decided already.
func paint(attrs []color.Attribute, s string) string {
	c := color.New(attrs...)
	c.EnableColor()
	return c.Sprint(s)
}

// Text writes one line per surfaced finding in report order. Without colour
// the output is byte-identical to Report.WriteTo.
func Text(w io.Writer, report *diag.Report, opts TextOpts) error {
	bw := bufio.NewWriter(w)
	for _, it := range report.Unsuppressed() {
		if _, err := fmt.Fprintln(bw, textLine(it, opts.Color)); err != nil {
			return err
		}
	}
	if opts.Summary {
		st := report.Stats()
		if _, err := fmt.Fprintf(bw, "%d files checked, %d findings (%d suppressed)\n", st.Files, st.Surfaced, st.Suppressed); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func textLine(it diag.Item, colored bool) string {
	if !colored {
		return it.String()
	}
	f := it.Finding
	head := paint(invalidAttrs, "Invalid") + " " + paint(labelAttrs, f.Rule.Label()) + " in " + paint(pathAttrs, it.Path)
	if f.Rule.FileLevel() || it.Line == 0 {
		return head + ": " + f.Message
	}
	return head + " " + paint(lineAttrs, fmt.Sprintf("on line %d", it.Line)) + ": " + f.Message
}
