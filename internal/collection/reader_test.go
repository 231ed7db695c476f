package collection

import (
	"reflect"
	"strings"
	"testing"

	"github.com/searchkit/phraseproc/internal/tokenizer"
	apperrors "github.com/searchkit/phraseproc/pkg/errors"
)

func newTestReader() *Reader {
	return NewReader("P", tokenizer.Tokenizer{})
}

func TestReadAll(t *testing.T) {
	input := `<P ID=1>the cat sat</P>
<P ID=2>the dog sat</P>
`
	docs, err := newTestReader().ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	want := []Document{
		{ID: 1, Terms: []string{"the", "cat", "sat"}},
		{ID: 2, Terms: []string{"the", "dog", "sat"}},
	}
	if !reflect.DeepEqual(docs, want) {
		t.Errorf("ReadAll = %+v, want %+v", docs, want)
	}
}

func TestReadAllMultilineRecord(t *testing.T) {
	input := "<P ID=7>the cat\nsat on\nthe mat</P>\n"
	docs, err := newTestReader().ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("got %d documents, want 1", len(docs))
	}
	want := []string{"the", "cat", "sat", "on", "the", "mat"}
	if !reflect.DeepEqual(docs[0].Terms, want) {
		t.Errorf("terms = %v, want %v", docs[0].Terms, want)
	}
}

func TestReadAllEmpty(t *testing.T) {
	docs, err := newTestReader().ReadAll(strings.NewReader(""))
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if len(docs) != 0 {
		t.Errorf("got %d documents from empty input, want 0", len(docs))
	}
}

func TestReadAllDocumentIDsFromAttribute(t *testing.T) {
	input := "<P ID=42>alpha</P>\n<P ID=7>beta</P>\n"
	docs, err := newTestReader().ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	if docs[0].ID != 42 || docs[1].ID != 7 {
		t.Errorf("ids = %d, %d, want 42, 7", docs[0].ID, docs[1].ID)
	}
}

func TestReadAllMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"missing open tag", "the cat sat</P>\n"},
		{"missing close tag", "<P ID=1>the cat sat\n"},
		{"missing id attribute", "<P NAME=1>the cat</P>\n"},
		{"non-numeric id", "<P ID=one>the cat</P>\n"},
		{"negative id", "<P ID=-3>the cat</P>\n"},
		{"duplicate id", "<P ID=1>a</P>\n<P ID=1>b</P>\n"},
		{"wrong tag", "<Q ID=1>the cat</Q>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestReader().ReadAll(strings.NewReader(tt.input))
			if err == nil {
				t.Fatalf("ReadAll(%q) succeeded, want malformed-record error", tt.input)
			}
			if !apperrors.Is(err, apperrors.ErrMalformedRecord) {
				t.Errorf("error = %v, want ErrMalformedRecord", err)
			}
		})
	}
}

func TestReadAllQueryTag(t *testing.T) {
	input := "<Q ID=3>moon landing</Q>\n"
	docs, err := NewReader("Q", tokenizer.Tokenizer{}).ReadAll(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadAll returned error: %v", err)
	}
	want := []Document{{ID: 3, Terms: []string{"moon", "landing"}}}
	if !reflect.DeepEqual(docs, want) {
		t.Errorf("ReadAll = %+v, want %+v", docs, want)
	}
}

func TestReadFileMissing(t *testing.T) {
	_, err := newTestReader().ReadFile("testdata/does-not-exist.txt")
	if err == nil {
		t.Fatal("ReadFile succeeded on a missing file")
	}
	if !apperrors.Is(err, apperrors.ErrIO) {
		t.Errorf("error = %v, want ErrIO", err)
	}
}
