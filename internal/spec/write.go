package spec

import (
	"bufio"
	"fmt"
	"io"
)

// Write renders contracts as trees, one block per contract:
//
//	Contract Specification: Counter
//	├── constructor
//	└── increment
//	    └── Increments number by one
func Write(w io.Writer, contracts []Contract) error {
	bw := bufio.NewWriter(w)
	for i, c := range contracts {
		if i > 0 {
			fmt.Fprintln(bw)
		}
		fmt.Fprintf(bw, "Contract Specification: %s\n", c.Name)
		for j, m := range c.Methods {
			lastMethod := j == len(c.Methods)-1
			fmt.Fprintf(bw, "%s%s\n", branch(lastMethod), m.Name)
			indent := "│   "
			if lastMethod {
				indent = "    "
			}
			for k, r := range m.Requirements {
				fmt.Fprintf(bw, "%s%s%s\n", indent, branch(k == len(m.Requirements)-1), r)
			}
		}
	}
	return bw.Flush()
}

func branch(last bool) string {
	if last {
		return "└── "
	}
	return "├── "
}
