package query

import (
	"bytes"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/searchkit/phraseproc/internal/tokenizer"
)

func TestParseStrategy(t *testing.T) {
	for _, name := range []string{"standard", "nextword"} {
		s, err := ParseStrategy(name)
		if err != nil {
			t.Errorf("ParseStrategy(%q) returned error: %v", name, err)
		}
		if string(s) != name {
			t.Errorf("ParseStrategy(%q) = %q", name, s)
		}
	}
	if _, err := ParseStrategy("fuzzy"); err == nil {
		t.Error("ParseStrategy accepted an unknown strategy")
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "queries.txt")
	content := "<Q ID=1>Moon Landing!</Q>\n<Q ID=2>the cat sat</Q>\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	queries, err := ReadFile(path, tokenizer.Tokenizer{})
	if err != nil {
		t.Fatalf("ReadFile returned error: %v", err)
	}
	want := []Query{
		{ID: 1, Terms: []string{"moon", "landing"}},
		{ID: 2, Terms: []string{"the", "cat", "sat"}},
	}
	if !reflect.DeepEqual(queries, want) {
		t.Errorf("ReadFile = %+v, want %+v", queries, want)
	}
}

type fixedIndex struct {
	docs []int
}

func (f fixedIndex) FindPhrase(terms []string) []int {
	return f.docs
}

func TestEvaluateIsPure(t *testing.T) {
	q := Query{ID: 4, Terms: []string{"a", "b"}}
	ix := fixedIndex{docs: []int{2, 9}}
	first := Evaluate(q, ix)
	second := Evaluate(q, ix)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated evaluation differs: %+v vs %+v", first, second)
	}
	if first.QueryID != 4 || !reflect.DeepEqual(first.DocIDs, []int{2, 9}) {
		t.Errorf("Evaluate = %+v", first)
	}
}

func TestWriteResults(t *testing.T) {
	results := []Result{
		{QueryID: 1, DocIDs: []int{3, 7, 21}},
		{QueryID: 2, DocIDs: nil},
		{QueryID: 3, DocIDs: []int{0}},
	}
	var buf bytes.Buffer
	if err := WriteResults(&buf, results); err != nil {
		t.Fatalf("WriteResults returned error: %v", err)
	}
	want := "Q1,P3,P7,P21\nQ2,\nQ3,P0\n"
	if got := buf.String(); got != want {
		t.Errorf("WriteResults = %q, want %q", got, want)
	}
}

func TestWriteResultsDeterministic(t *testing.T) {
	results := []Result{
		{QueryID: 10, DocIDs: []int{1, 2}},
		{QueryID: 11, DocIDs: []int{5}},
	}
	var a, b bytes.Buffer
	if err := WriteResults(&a, results); err != nil {
		t.Fatal(err)
	}
	if err := WriteResults(&b, results); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(a.Bytes(), b.Bytes()) {
		t.Error("two serializations of the same results differ")
	}
}
