// Package collection parses delimited record files into tokenized documents.
// Collection files carry one document per <P ID=n> ... </P> record; query
// files use the same layout with tag Q. Records may span multiple lines.
package collection

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/searchkit/phraseproc/internal/tokenizer"
	apperrors "github.com/searchkit/phraseproc/pkg/errors"
)

// maxRecordLine bounds a single input line; documents larger than this must
// be split across lines by the producer.
const maxRecordLine = 16 * 1024 * 1024

// Document is one record of a collection: its identifier from the ID=
// attribute and its normalized term sequence. Immutable after load.
type Document struct {
	ID    int
	Terms []string
}

// Reader parses records with a fixed tag, normalizing body text through a
// shared Tokenizer.
type Reader struct {
	tag string
	tok tokenizer.Tokenizer
}

// NewReader returns a Reader for records delimited by <tag ID=n> ... </tag>.
func NewReader(tag string, tok tokenizer.Tokenizer) *Reader {
	return &Reader{tag: tag, tok: tok}
}

// ReadFile opens and parses a whole record file.
func (r *Reader) ReadFile(path string) ([]Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO,
			"opening record file %s: %v", path, err)
	}
	defer f.Close()
	docs, err := r.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return docs, nil
}

// ReadAll parses every record from src in order. Any malformed record makes
// the whole read fail; there are no partial collections.
func (r *Reader) ReadAll(src io.Reader) ([]Document, error) {
	var (
		docs    []Document
		seen    = make(map[int]struct{})
		pending []string
	)
	openTag := "<" + r.tag + " "
	closeTag := "</" + r.tag + ">"

	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 64*1024), maxRecordLine)
	for scanner.Scan() {
		line := scanner.Text()
		pending = append(pending, line)
		if !strings.Contains(line, closeTag) {
			continue
		}
		raw := strings.TrimSpace(strings.Join(pending, " "))
		pending = pending[:0]

		doc, err := r.parseRecord(raw, openTag, closeTag)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[doc.ID]; dup {
			return nil, apperrors.Newf(apperrors.ErrMalformedRecord, apperrors.ExitFormat,
				"duplicate record id %d", doc.ID)
		}
		seen[doc.ID] = struct{}{}
		docs = append(docs, doc)
	}
	if err := scanner.Err(); err != nil {
		return nil, apperrors.Newf(apperrors.ErrIO, apperrors.ExitIO,
			"scanning records: %v", err)
	}
	if len(pending) > 0 && strings.TrimSpace(strings.Join(pending, " ")) != "" {
		return nil, apperrors.Newf(apperrors.ErrMalformedRecord, apperrors.ExitFormat,
			"trailing text without closing %s", closeTag)
	}
	return docs, nil
}

// parseRecord validates one <tag ID=n>body</tag> record and tokenizes its
// body.
func (r *Reader) parseRecord(raw, openTag, closeTag string) (Document, error) {
	if !strings.HasPrefix(raw, openTag) || !strings.HasSuffix(raw, closeTag) {
		return Document{}, apperrors.Newf(apperrors.ErrMalformedRecord, apperrors.ExitFormat,
			"record %q is not delimited by %s...%s", truncate(raw), openTag, closeTag)
	}
	body := raw[len(openTag) : len(raw)-len(closeTag)]
	gt := strings.IndexByte(body, '>')
	if gt < 0 || !strings.HasPrefix(body, "ID=") {
		return Document{}, apperrors.Newf(apperrors.ErrMalformedRecord, apperrors.ExitFormat,
			"record %q is missing the ID attribute", truncate(raw))
	}
	id, err := strconv.Atoi(body[len("ID="):gt])
	if err != nil || id < 0 {
		return Document{}, apperrors.Newf(apperrors.ErrMalformedRecord, apperrors.ExitFormat,
			"record %q has a bad ID attribute", truncate(raw))
	}
	return Document{
		ID:    id,
		Terms: r.tok.Terms(body[gt+1:]),
	}, nil
}

func truncate(s string) string {
	if len(s) > 60 {
		return s[:57] + "..."
	}
	return s
}
