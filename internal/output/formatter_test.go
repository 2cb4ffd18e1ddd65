package output

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"

	"github.com/jeduden/arastat/internal/metrics"
)

func TestNew(t *testing.T) {
	for _, name := range Formats {
		f, err := New(strings.ToUpper(name), Options{})
		if err != nil {
			t.Fatalf("New(%s): %v", name, err)
		}
		if f == nil {
			t.Fatalf("New(%s) returned nil", name)
		}
	}
	if _, err := New("xml", Options{}); err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("New(xml) error = %v, want unknown format", err)
	}
}

func TestFormatters_ImplementFormatter(t *testing.T) {
	var _ Formatter = &TextFormatter{}
	var _ Formatter = &JSONFormatter{}
	var _ Formatter = &CSVFormatter{}
	var _ Formatter = &HTMLFormatter{}
}

func TestTextFormatter_Blocks(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, sampleTable(t)); err != nil {
		t.Fatalf("Format: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"== a.txt ==",
		"Words:                    250",
		"Speech Speed:             00:03:20",
		"Yule's Characteristic K:  102.0408",
		"dialect:                  msa",
		"Yule's Characteristic K:  -",
		"dialect:                  -",
		"== c.txt ==",
		"error:  analyzing c.txt: boom",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestTextFormatter_Wide(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{Wide: true}).Format(&buf, sampleTable(t)); err != nil {
		t.Fatalf("Format: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected header + 3 rows, got %d:\n%s", len(lines), buf.String())
	}
	if fields := strings.Fields(lines[0]); strings.Join(fields, " ") != "WORDS SPEECH-SPEED YULES-K DIALECT SOURCE" {
		t.Fatalf("header = %q", lines[0])
	}
	if fields := strings.Fields(lines[1]); strings.Join(fields, " ") != "250 00:03:20 102.0408 msa a.txt" {
		t.Fatalf("row = %q", lines[1])
	}
	if fields := strings.Fields(lines[3]); strings.Join(fields, " ") != "- - - - c.txt" {
		t.Fatalf("failed row = %q", lines[3])
	}
}

func TestTextFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&TextFormatter{}).Format(&buf, metrics.Table{}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestJSONFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, sampleTable(t)); err != nil {
		t.Fatalf("Format: %v", err)
	}

	var result []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %s", err, buf.String())
	}
	if len(result) != 3 {
		t.Fatalf("expected 3 items, got %d", len(result))
	}

	first := result[0]
	if first["source"] != "a.txt" {
		t.Errorf("source = %v", first["source"])
	}
	values := first["metrics"].(map[string]any)
	if values["words"] != float64(250) {
		t.Errorf("words = %v, want 250", values["words"])
	}
	if values["speech-speed"] != "00:03:20" {
		t.Errorf("speech-speed = %v, want 00:03:20", values["speech-speed"])
	}
	if values["yules-k"] != 102.0408 {
		t.Errorf("yules-k = %v, want 102.0408", values["yules-k"])
	}
	if first["annotations"].(map[string]any)["dialect"] != "msa" {
		t.Errorf("annotations = %v", first["annotations"])
	}

	second := result[1]
	if second["source"] != "<b>.txt" {
		t.Errorf("source should not be HTML-escaped, got %v", second["source"])
	}
	if v, ok := second["metrics"].(map[string]any)["yules-k"]; !ok || v != nil {
		t.Errorf("unavailable yules-k = %v (present %v), want null", v, ok)
	}
	if _, ok := second["annotations"]; ok {
		t.Error("annotations should be omitted when empty")
	}

	if result[2]["error"] != "analyzing c.txt: boom" {
		t.Errorf("error = %v", result[2]["error"])
	}
}

func TestJSONFormatter_Empty(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONFormatter{}).Format(&buf, metrics.Table{}); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "[]" {
		t.Fatalf("got %q, want []", buf.String())
	}
}

func TestCSVFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVFormatter{}).Format(&buf, sampleTable(t)); err != nil {
		t.Fatalf("Format: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if len(records) != 4 {
		t.Fatalf("expected 4 records, got %d", len(records))
	}
	wantHeader := "Source|Words|Speech Speed|Yule's Characteristic K|dialect|Error"
	if got := strings.Join(records[0], "|"); got != wantHeader {
		t.Errorf("header = %q, want %q", got, wantHeader)
	}
	if got := strings.Join(records[1], "|"); got != "a.txt|250|00:03:20|102.0408|msa|" {
		t.Errorf("row 1 = %q", got)
	}
	if got := strings.Join(records[2], "|"); got != "<b>.txt|0|00:00:00|||" {
		t.Errorf("row 2 = %q", got)
	}
	if got := strings.Join(records[3], "|"); got != "c.txt|||||analyzing c.txt: boom" {
		t.Errorf("row 3 = %q", got)
	}
}

func TestHTMLFormatter(t *testing.T) {
	var buf bytes.Buffer
	if err := (&HTMLFormatter{}).Format(&buf, sampleTable(t)); err != nil {
		t.Fatalf("Format: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		`<html lang="ar" dir="rtl">`,
		"<th>Yule&#39;s Characteristic K</th>",
		"<th>dialect</th>",
		"<td>a.txt</td><td>250</td><td>00:03:20</td><td>102.0408</td><td>msa</td>",
		"<td>&lt;b&gt;.txt</td>",
		`<td colspan="4">analyzing c.txt: boom</td>`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "<b>.txt") {
		t.Error("source was not escaped")
	}
}

func TestFormatters_TextColumn(t *testing.T) {
	table := sampleTable(t)

	var buf bytes.Buffer
	if err := (&JSONFormatter{Text: true}).Format(&buf, table); err != nil {
		t.Fatalf("Format json: %v", err)
	}
	var result []map[string]any
	if err := json.Unmarshal(buf.Bytes(), &result); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if result[0]["text"] != "ذهب الولد\nإلى  المدرسة" {
		t.Errorf("json text = %q", result[0]["text"])
	}
	if v, ok := result[2]["text"]; !ok || v != "" {
		t.Errorf("json text of failed row = %v (present %v), want empty string", v, ok)
	}

	buf.Reset()
	if err := (&JSONFormatter{}).Format(&buf, table); err != nil {
		t.Fatalf("Format json: %v", err)
	}
	if strings.Contains(buf.String(), `"text"`) {
		t.Error("text should be omitted by default")
	}

	buf.Reset()
	if err := (&CSVFormatter{Text: true}).Format(&buf, table); err != nil {
		t.Fatalf("Format csv: %v", err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("output is not valid CSV: %v", err)
	}
	if records[0][1] != "Text" || records[1][1] != "ذهب الولد\nإلى  المدرسة" {
		t.Errorf("csv text column = %q / %q", records[0][1], records[1][1])
	}

	buf.Reset()
	if err := (&HTMLFormatter{Text: true}).Format(&buf, table); err != nil {
		t.Fatalf("Format html: %v", err)
	}
	out := buf.String()
	for _, want := range []string{
		"<tr><th>Source</th><th>Text</th><th>Words</th>",
		"<td>a.txt</td><td>ذهب الولد إلى المدرسة</td><td>250</td>",
		"<td>&lt;b&gt;.txt</td><td>&lt;i&gt;</td>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("html missing %q:\n%s", want, out)
		}
	}
}

func TestPreview(t *testing.T) {
	if got := preview("  a\n\tb  "); got != "a b" {
		t.Fatalf("preview = %q, want %q", got, "a b")
	}
	long := strings.Repeat("ب", previewRunes+5)
	got := []rune(preview(long))
	if len(got) != previewRunes || got[len(got)-1] != '…' {
		t.Fatalf("preview of long text = %d runes ending %q", len(got), got[len(got)-1])
	}
}
