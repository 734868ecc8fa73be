package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/bastiangx/wordchain/pkg/chain"
)

// DefaultSeparator joins words within a printed chain.
const DefaultSeparator = "->"

// WriteResult prints res as
//
//	Longest chain length: <n>
//	w0->w1->...->wn
//
// with one line per chain in enumeration order.
func WriteResult(w io.Writer, res *chain.Result, sep string) error {
	if sep == "" {
		sep = DefaultSeparator
	}
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "Longest chain length: %d\n", res.MaxLen)
	for _, c := range res.Chains {
		bw.WriteString(strings.Join(c, sep))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}
