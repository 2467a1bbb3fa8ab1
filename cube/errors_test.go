package cube

import (
	"errors"
	"strings"
	"testing"
)

func TestErrorMessages(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"corrupt", &HypergraphCorruptError{NodeID: "N1", Detail: `duplicate derivation signature "0 1 1" at seeding`}, "N1"},
		{"mismatch", &CostMismatchError{NodeID: "N2", Expected: 1.0, Actual: 2.0}, "N2"},
		{"sink", &SinkFailureError{Err: errors.New("disk full")}, "disk full"},
		{"overflow", &OverflowDerivationStateError{NodeID: "N3", Detail: "boom"}, "N3"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if !strings.Contains(c.err.Error(), c.want) {
				t.Errorf("Error() = %q, want it to contain %q", c.err.Error(), c.want)
			}
		})
	}
}

func TestSinkFailureUnwrap(t *testing.T) {
	inner := errors.New("boom")
	wrapped := &SinkFailureError{Err: inner}
	if !errors.Is(wrapped, inner) {
		t.Errorf("errors.Is(wrapped, inner) = false, want true")
	}
}
