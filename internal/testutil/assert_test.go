package testutil

import (
	"errors"
	"fmt"
	"testing"
)

var errSentinel = errors.New("sentinel")

func TestAssertions_Pass(t *testing.T) {
	var nilPosition *struct{ files int }

	AssertEqual(t, []int{1, 2}, []int{1, 2})
	AssertSameMoves(t, []string{"e2e4", "b1c3", "a2a3"}, []string{"a2a3", "e2e4", "b1c3"})
	AssertSameMoves(t, nil, []string{})
	AssertNoError(t, nil)
	AssertError(t, errSentinel)
	AssertErrorIs(t, fmt.Errorf("load: %w", errSentinel), errSentinel)
	AssertContains(t, "bestmove e2e4", "e2e4")
	AssertNotContains(t, "bestmove e2e4", "ponder")
	AssertTrue(t, true)
	AssertFalse(t, false)
	AssertNil(t, nil)
	AssertNil(t, nilPosition)
	AssertNotNil(t, "uciok")
	AssertNotNil(t, []int{})
}

func TestIsNil(t *testing.T) {
	var ch chan int
	var fn func()
	var m map[string]int
	tests := []struct {
		name string
		v    interface{}
		want bool
	}{
		{"untyped nil", nil, true},
		{"nil chan", ch, true},
		{"nil func", fn, true},
		{"nil map", m, true},
		{"zero int", 0, false},
		{"empty string", "", false},
		{"empty slice", []int{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isNil(tt.v); got != tt.want {
				t.Errorf("isNil(%#v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestFormatMessage(t *testing.T) {
	tests := []struct {
		name string
		args []interface{}
		want string
	}{
		{"no args", nil, ""},
		{"single string", []interface{}{"depth 3"}, "depth 3"},
		{"single int", []interface{}{42}, "42"},
		{"format string", []interface{}{"move %s", "e2e4"}, "move e2e4"},
		{"format several", []interface{}{"%s at depth %d", "a1a8", 2}, "a1a8 at depth 2"},
		{"non-string first", []interface{}{7, "ignored"}, "7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatMessage(tt.args...)
			if got != tt.want {
				t.Errorf("formatMessage(%v) = %q, want %q", tt.args, got, tt.want)
			}
		})
	}
}
