package errors

import (
	"fmt"
	"testing"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitOK},
		{"format sentinel", ErrMalformedRecord, ExitFormat},
		{"io sentinel", ErrIO, ExitIO},
		{"unknown", fmt.Errorf("boom"), ExitInternal},
		{"run error", Newf(ErrIO, ExitIO, "writing %s", "results.txt"), ExitIO},
		{"wrapped sentinel", fmt.Errorf("reading: %w", ErrMalformedRecord), ExitFormat},
		{"wrapped run error", fmt.Errorf("outer: %w", New(ErrMalformedRecord, ExitFormat, "bad record")), ExitFormat},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExitCode(tt.err); got != tt.want {
				t.Errorf("ExitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestRunErrorUnwrap(t *testing.T) {
	err := Newf(ErrMalformedRecord, ExitFormat, "record %d", 7)
	if !Is(err, ErrMalformedRecord) {
		t.Error("RunError does not unwrap to its sentinel")
	}
	var runErr *RunError
	if !As(err, &runErr) {
		t.Fatal("As failed to extract RunError")
	}
	if runErr.Message != "record 7" {
		t.Errorf("message = %q", runErr.Message)
	}
}
