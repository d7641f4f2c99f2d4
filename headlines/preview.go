package headlines

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/theimaginaryfoundation/headline-vader/headlines/fileutils"
)

// DefaultPreviewRows matches a dataframe head().
const DefaultPreviewRows = 5

const previewCellMaxChars = 40

// WritePreview prints the first n rows of t as an aligned table with a leading
// zero-based row number column. Long cells are truncated. n <= 0 prints nothing.
func WritePreview(w io.Writer, t Table, n int) error {
	if n <= 0 {
		return nil
	}
	if n > len(t.Rows) {
		n = len(t.Rows)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\t"+strings.Join(previewCells(t.Header), "\t"))
	for i := 0; i < n; i++ {
		fmt.Fprintf(tw, "%d\t%s\n", i, strings.Join(previewCells(t.Rows[i]), "\t"))
	}
	fmt.Fprintf(tw, "[%d rows x %d columns]\n", len(t.Rows), len(t.Header))
	return tw.Flush()
}

func previewCells(in []string) []string {
	out := make([]string, len(in))
	for i, c := range in {
		c = fileutils.SanitizeNewlines(c)
		c = strings.ReplaceAll(c, "\t", " ")
		out[i] = fileutils.Truncate(c, previewCellMaxChars)
	}
	return out
}
