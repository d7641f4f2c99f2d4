package headlines

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestReadTable_PreservesOrderAndColumns(t *testing.T) {
	t.Parallel()

	in := "id,headline,source\n1,First one,a\n2,\"Second, with comma\",b\n3,,c\n"
	tbl, err := ReadTable(strings.NewReader(in))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if got := strings.Join(tbl.Header, "|"); got != "id|headline|source" {
		t.Fatalf("header=%q", got)
	}
	if len(tbl.Rows) != 3 {
		t.Fatalf("rows=%d", len(tbl.Rows))
	}
	heads, ok := tbl.Column(HeadlineColumn)
	if !ok {
		t.Fatalf("headline column missing")
	}
	want := []string{"First one", "Second, with comma", ""}
	for i := range want {
		if heads[i] != want[i] {
			t.Fatalf("headline[%d]=%q, want %q", i, heads[i], want[i])
		}
	}
}

func TestReadTable_StripsBOM(t *testing.T) {
	t.Parallel()

	tbl, err := ReadTable(strings.NewReader("\ufeffheadline\nhi\n"))
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if tbl.ColumnIndex(HeadlineColumn) != 0 {
		t.Fatalf("header=%q", tbl.Header)
	}
}

func TestReadTable_InputErrors(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"missing headline column", "title,source\nx,y\n"},
		{"case sensitive column", "Headline\nx\n"},
		{"ragged row", "headline,source\nx,y\nz\n"},
		{"bad quote", "headline\n\"unterminated\n"},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := ReadTable(strings.NewReader(tc.in))
			if !errors.Is(err, ErrInput) {
				t.Fatalf("err=%v, want ErrInput", err)
			}
		})
	}
}

func TestLoadTable_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.csv"))
	if !errors.Is(err, ErrInput) {
		t.Fatalf("err=%v, want ErrInput", err)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("err=%v, want wrapped ErrNotExist", err)
	}
}

func TestSetColumn_AppendsOrOverwrites(t *testing.T) {
	t.Parallel()

	tbl := Table{
		Header: []string{"headline", "compound"},
		Rows:   [][]string{{"a", "old"}, {"b", "old"}},
	}
	if err := tbl.SetColumn("compound", []string{"1", "2"}); err != nil {
		t.Fatalf("SetColumn overwrite: %v", err)
	}
	if err := tbl.SetColumn("comp_score", []string{"pos", "neg"}); err != nil {
		t.Fatalf("SetColumn append: %v", err)
	}
	if got := strings.Join(tbl.Header, ","); got != "headline,compound,comp_score" {
		t.Fatalf("header=%q", got)
	}
	if tbl.Rows[1][1] != "2" || tbl.Rows[1][2] != "neg" {
		t.Fatalf("row1=%v", tbl.Rows[1])
	}
	if err := tbl.SetColumn("x", []string{"only one"}); err == nil {
		t.Fatalf("expected length mismatch error")
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	t.Parallel()

	tbl := Table{
		Header: []string{"headline", "scores"},
		Rows: [][]string{
			{"Quotes \"inside\"", `{"neg":0,"neu":1,"pos":0,"compound":0}`},
			{"Line\nbreak", "{}"},
		},
	}
	var buf bytes.Buffer
	if err := tbl.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV: %v", err)
	}
	back, err := ReadTable(&buf)
	if err != nil {
		t.Fatalf("ReadTable: %v", err)
	}
	if len(back.Rows) != 2 || back.Rows[0][0] != tbl.Rows[0][0] || back.Rows[1][0] != tbl.Rows[1][0] || back.Rows[0][1] != tbl.Rows[0][1] {
		t.Fatalf("round trip mismatch: %q", back.Rows)
	}
}

func TestWriteTable_Unwritable(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	err := WriteTable(filepath.Join(blocker, "out.csv"), Table{Header: []string{"headline"}})
	if !errors.Is(err, ErrOutput) {
		t.Fatalf("err=%v, want ErrOutput", err)
	}
}
