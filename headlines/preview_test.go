package headlines

import (
	"bytes"
	"strings"
	"testing"
)

func TestWritePreview(t *testing.T) {
	t.Parallel()

	tbl := Table{
		Header: []string{"headline", "comp_score"},
		Rows: [][]string{
			{"short", "neu"},
			{strings.Repeat("long ", 20), "pos"},
			{"line one\nline two", "neg"},
		},
	}

	var buf bytes.Buffer
	if err := WritePreview(&buf, tbl, 2); err != nil {
		t.Fatalf("WritePreview: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.HasPrefix(lines[1], "0 ") || !strings.HasPrefix(lines[2], "1 ") {
		t.Fatalf("missing row numbers:\n%s", buf.String())
	}
	if !strings.Contains(lines[2], "…") {
		t.Fatalf("long cell not truncated: %q", lines[2])
	}
	if lines[3] != "[3 rows x 2 columns]" {
		t.Fatalf("footer=%q", lines[3])
	}
	// Columns line up.
	if strings.Index(lines[0], "comp_score") != strings.Index(lines[1], "neu") {
		t.Fatalf("columns not aligned:\n%s", buf.String())
	}

	buf.Reset()
	if err := WritePreview(&buf, tbl, 10); err != nil {
		t.Fatalf("WritePreview: %v", err)
	}
	if !strings.Contains(buf.String(), `line one\nline two`) {
		t.Fatalf("newline not escaped:\n%s", buf.String())
	}

	buf.Reset()
	if err := WritePreview(&buf, tbl, 0); err != nil || buf.Len() != 0 {
		t.Fatalf("n=0 wrote %q err=%v", buf.String(), err)
	}
}
