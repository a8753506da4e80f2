package diagfmt

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// ForgeDiff copies "forge fmt --check" output to w, painting removed lines
// red and added lines green.
func ForgeDiff(w io.Writer, out []byte, colored bool) error {
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	if colored {
		red.EnableColor()
		green.EnableColor()
	} else {
		red.DisableColor()
		green.DisableColor()
	}

	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "Diff in ") {
			if gutter, body, ok := strings.Cut(line, "|-"); ok {
				line = gutter + red.Sprint("|-"+body)
			} else if gutter, body, ok := strings.Cut(line, "|+"); ok {
				line = gutter + green.Sprint("|+"+body)
			}
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return sc.Err()
}
