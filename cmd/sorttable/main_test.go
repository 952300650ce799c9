package main

import (
	"bytes"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/aerissecure/sorttable"
)

const page = `<html><body>
<table class="sortable" id="prices">
<tr><th>Item</th><th>Price</th></tr>
<tr><td>kettle</td><td>1.200,00 €</td></tr>
<tr><td>mug</td><td>4,50 €</td></tr>
<tr><td>teapot</td><td>35,00 €</td></tr>
</table>
</body></html>`

func loadPage(t *testing.T) source {
	t.Helper()
	path := filepath.Join(t.TempDir(), "prices.html")
	if err := os.WriteFile(path, []byte(page), 0644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}
	src, err := load(path, 0, sorttable.DefaultOptions())
	if err != nil {
		t.Fatalf("failed to load fixture: %v", err)
	}
	return src
}

func firstColumn(src source) string {
	var out []string
	for _, row := range src.Rows() {
		out = append(out, row[0])
	}
	return strings.Join(out, ",")
}

func TestParseClicks(t *testing.T) {
	tests := []struct {
		in      string
		want    []int
		wantErr bool
	}{
		{"", nil, false},
		{"1", []int{1}, false},
		{"1, 1,0", []int{1, 1, 0}, false},
		{"1,,2", []int{1, 2}, false},
		{"a", nil, true},
	}
	for _, tt := range tests {
		got, err := parseClicks(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseClicks(%q) error = %v", tt.in, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("parseClicks(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestClip(t *testing.T) {
	got := clip([]string{"short", "a much longer cell", "日本語テキスト"}, 6)
	if got[0] != "short" {
		t.Errorf("short cell changed to %q", got[0])
	}
	if got[1] != "a muc…" {
		t.Errorf("long cell = %q", got[1])
	}
	if got[2] != "日本…" {
		t.Errorf("wide cell = %q", got[2])
	}
	if same := clip([]string{"untouched"}, 0); same[0] != "untouched" {
		t.Errorf("zero width clipped to %q", same[0])
	}
}

func TestRunActivations(t *testing.T) {
	src := loadPage(t)
	last, did, err := run(src, []int{1, 1}, -1, false)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if !did || !last.reversed || last.typ != sorttable.TypeNumericComma {
		t.Errorf("unexpected outcome %+v", last)
	}
	if got := firstColumn(src); got != "kettle,teapot,mug" {
		t.Errorf("order = %s", got)
	}
	if got := summary(last); got != "column 1: reversed 3 rows descending as numeric_comma" {
		t.Errorf("summary = %q", got)
	}
}

func TestRunExplicitSort(t *testing.T) {
	src := loadPage(t)
	last, _, err := run(src, nil, 0, true)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	if last.direction != sorttable.Descending {
		t.Errorf("direction = %s", last.direction)
	}
	if got := firstColumn(src); got != "teapot,mug,kettle" {
		t.Errorf("order = %s", got)
	}

	if _, _, err := run(src, []int{7}, -1, false); err == nil {
		t.Error("expected an error for a missing column")
	}
}

func TestWriteFormats(t *testing.T) {
	src := loadPage(t)
	if _, _, err := run(src, []int{1}, -1, false); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	var text bytes.Buffer
	if err := write(&text, src, "text", 0); err != nil {
		t.Fatalf("text output failed: %v", err)
	}
	out := text.String()
	mug, teapot, kettle := strings.Index(out, "mug"), strings.Index(out, "teapot"), strings.Index(out, "kettle")
	if mug < 0 || !(mug < teapot && teapot < kettle) {
		t.Errorf("text rows out of order:\n%s", out)
	}

	var page bytes.Buffer
	if err := write(&page, src, "html", 0); err != nil {
		t.Fatalf("html output failed: %v", err)
	}
	if !strings.Contains(page.String(), "sorttable_sorted") {
		t.Errorf("html output has no sort indicator:\n%s", page.String())
	}
}

func TestResolveFormat(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if got := resolveFormat("auto", f); got != "html" {
		t.Errorf("auto on a file = %s, want html", got)
	}
	if got := resolveFormat("text", f); got != "text" {
		t.Errorf("explicit format overridden: %s", got)
	}
}

func TestWriteFile(t *testing.T) {
	src := loadPage(t)
	if _, _, err := run(src, []int{0}, -1, false); err != nil {
		t.Fatalf("run failed: %v", err)
	}

	path := filepath.Join(t.TempDir(), "sorted.html")
	if err := writeFile(path, src, "auto", 0); err != nil {
		t.Fatalf("writeFile failed: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	out := string(data)
	if !strings.Contains(out, "sorttable_sorted") || strings.Index(out, "kettle") > strings.Index(out, "mug") {
		t.Errorf("file does not hold the sorted page:\n%s", out)
	}

	missing := filepath.Join(t.TempDir(), "no-such-dir", "out.html")
	if err := writeFile(missing, src, "html", 0); err == nil {
		t.Error("expected an error for an uncreatable path")
	}
}
