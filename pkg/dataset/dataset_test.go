package dataset

import (
	"context"
	"strings"
	"testing"

	"github.com/coordviz/parcoords/pkg/errors"
)

func TestDecodePreservesKeyOrder(t *testing.T) {
	const input = `[{"zeta":1,"alpha":2,"mid":3}]`

	records, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("got %d records, want 1", len(records))
	}

	want := []string{"zeta", "alpha", "mid"}
	got := records[0].Keys()
	if len(got) != len(want) {
		t.Fatalf("Keys() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestDecodeValueTags(t *testing.T) {
	const input = `[{"num":3.5,"text":"hello","gone":null,"flag":true}]`

	records, err := Decode(strings.NewReader(input))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	rec := records[0]

	if rec.Get("num").Kind() != KindNumber {
		t.Errorf("num kind = %v, want KindNumber", rec.Get("num").Kind())
	}
	if f, ok := rec.Get("num").Float(); !ok || f != 3.5 {
		t.Errorf("num Float() = %v, %v; want 3.5, true", f, ok)
	}
	if rec.Get("text").Kind() != KindText {
		t.Errorf("text kind = %v, want KindText", rec.Get("text").Kind())
	}
	if !rec.Get("gone").IsMissing() {
		t.Error("null field should be missing")
	}
	if rec.Get("flag").String() != "true" {
		t.Errorf("bool field = %q, want %q", rec.Get("flag").String(), "true")
	}

	// Absent columns read as missing
	if !rec.Get("never").IsMissing() {
		t.Error("absent field should be missing")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"not an array", `{"a":1}`},
		{"nested object", `[{"a":{"b":1}}]`},
		{"nested array", `[{"a":[1,2]}]`},
		{"malformed", `[{"a":1`},
		{"garbage", `hello world`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, errors.ErrCodeParse) {
				t.Errorf("code = %v, want PARSE_ERROR", errors.GetCode(err))
			}
		})
	}
}

func TestDecodeEmptyArray(t *testing.T) {
	records, err := Decode(strings.NewReader(`[]`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if len(records) != 0 {
		t.Errorf("got %d records, want 0", len(records))
	}
}

func TestDecodeDuplicateKeys(t *testing.T) {
	records, err := Decode(strings.NewReader(`[{"a":1,"a":2}]`))
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	rec := records[0]
	if rec.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", rec.Len())
	}
	if f, _ := rec.Get("a").Float(); f != 1 {
		t.Errorf("duplicate key: first occurrence should win, got %v", f)
	}
}

func TestValueFloat(t *testing.T) {
	tests := []struct {
		name string
		v    Value
		want float64
		ok   bool
	}{
		{"number", Number(42), 42, true},
		{"negative", Number(-1.5), -1.5, true},
		{"numeric text", Text("3.25"), 3.25, true},
		{"scientific text", Text("1e3"), 1000, true},
		{"plain text", Text("hello"), 0, false},
		{"empty text", Text(""), 0, false},
		{"infinite text", Text("Inf"), 0, false},
		{"nan text", Text("NaN"), 0, false},
		{"missing", Missing(), 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.v.Float()
			if ok != tt.ok || got != tt.want {
				t.Errorf("Float() = %v, %v; want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestValueString(t *testing.T) {
	if s := Number(2.5).String(); s != "2.5" {
		t.Errorf("Number(2.5).String() = %q, want %q", s, "2.5")
	}
	if s := Number(3).String(); s != "3" {
		t.Errorf("Number(3).String() = %q, want %q", s, "3")
	}
	if s := Text("F").String(); s != "F" {
		t.Errorf("Text(F).String() = %q, want %q", s, "F")
	}
	if s := Missing().String(); s != "" {
		t.Errorf("Missing().String() = %q, want empty", s)
	}
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/students.json"
	if err := writeFile(path, `[{"a":1,"b":"x"},{"a":2,"b":"y"}]`); err != nil {
		t.Fatal(err)
	}

	ds, err := Load(context.Background(), "students", FileSource{Path: path})
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if ds.ID != "students" {
		t.Errorf("ID = %q, want %q", ds.ID, "students")
	}
	if len(ds.Records) != 2 {
		t.Errorf("got %d records, want 2", len(ds.Records))
	}
	if len(ds.SourceHash) != 64 {
		t.Errorf("SourceHash length = %d, want 64", len(ds.SourceHash))
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(context.Background(), "gone", FileSource{Path: "/nonexistent/path.json"})
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, errors.ErrCodeFileNotFound) {
		t.Errorf("code = %v, want FILE_NOT_FOUND", errors.GetCode(err))
	}
}
