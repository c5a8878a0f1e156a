package normalize

import (
	"context"
	"errors"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestCleanStripsMarkers(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Final Answer: Your order is on the way.", want: "Your order is on the way."},
		{in: "Tool output:\n\n\nOrder 1234567\n\n  Status: Pending  ", want: "Order 1234567\n  Status: Pending"},
		{in: "Final Answer: Your orders:\n- 1234567\n  - Burger x1   \n\n\n  - Fries x2", want: "Your orders:\n- 1234567\n  - Burger x1\n  - Fries x2"},
		{in: "Tool outTool output:put: nested", want: "nested"},
		{in: "Final Answer: Tool output: both", want: "both"},
		{in: "", want: ""},
	}
	for _, tc := range tests {
		if got := Clean(tc.in); got != tc.want {
			t.Fatalf("Clean(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	t.Parallel()

	inputs := []string{
		"Final Answer:\n\nTool output: a\r\n\r\nb",
		"Tool outFinal Answer:put: x",
		"  plain text  ",
		"Tool output:\n  - nested\n\n    - deeper  ",
	}
	for _, in := range inputs {
		once := Clean(in)
		if twice := Clean(once); twice != once {
			t.Fatalf("Clean not idempotent for %q: %q vs %q", in, once, twice)
		}
		for _, m := range Markers {
			if strings.Contains(once, m) {
				t.Fatalf("Clean(%q) still contains %q", in, m)
			}
		}
	}
}

func TestTruncate(t *testing.T) {
	t.Parallel()

	if got := Truncate("short", 10); got != "short" {
		t.Fatalf("short input changed: %q", got)
	}

	got := Truncate("the quick brown fox jumps", 15)
	if got != "the quick..." {
		t.Fatalf("unexpected truncation: %q", got)
	}

	got = Truncate("**bold** ของไทย ภาษาไทยยาวมาก", 12)
	if !utf8.ValidString(got) || utf8.RuneCountInString(got) > 12 || !strings.HasSuffix(got, "...") {
		t.Fatalf("unexpected multibyte truncation: %q", got)
	}

	got = Truncate("abcdefghijklmnop", 8)
	if got != "abcde..." {
		t.Fatalf("unexpected hard cut: %q", got)
	}

	got = Truncate("see **details** here", 12)
	if got != "see..." {
		t.Fatalf("dangling markdown should be trimmed: %q", got)
	}
}

func TestTruncateTinyLimits(t *testing.T) {
	t.Parallel()

	tests := []struct {
		max  int
		want string
	}{
		{max: 3, want: "hel"},
		{max: 2, want: "he"},
		{max: 0, want: ""},
		{max: -1, want: ""},
	}
	for _, tc := range tests {
		if got := Truncate("hello world", tc.max); got != tc.want {
			t.Fatalf("Truncate(max=%d) = %q, want %q", tc.max, got, tc.want)
		}
	}
}

type fakeSummarizer struct {
	out   string
	err   error
	calls int
}

func (f *fakeSummarizer) Summarize(context.Context, string, string) (string, error) {
	f.calls++
	return f.out, f.err
}

const denseOutput = "Order ID: 1234567\nOrder Status: Pending\nVendor Status: Accepted\nDelivery Status: Preparing\nTotal: $12.00"

func TestNormalizeSummarizesDenseToolOutput(t *testing.T) {
	t.Parallel()

	s := &fakeSummarizer{out: "Final Answer: Your order 1234567 is being prepared."}
	n := New(Config{MaxChars: 500, Summarize: true, SummarizeMinLines: 4, SummarizeMinChars: 300}, s)

	got, err := n.Normalize(context.Background(), denseOutput, true, "where is my order")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if got != "Your order 1234567 is being prepared." || s.calls != 1 {
		t.Fatalf("unexpected result %q after %d calls", got, s.calls)
	}
}

func TestNormalizeSkipsSummaryWhenNoToolOrSparse(t *testing.T) {
	t.Parallel()

	s := &fakeSummarizer{out: "summary"}
	n := New(Config{MaxChars: 500, Summarize: true, SummarizeMinLines: 4, SummarizeMinChars: 300}, s)

	if got, _ := n.Normalize(context.Background(), denseOutput, false, "q"); got != denseOutput {
		t.Fatalf("non-tool output should not be summarized: %q", got)
	}
	if got, _ := n.Normalize(context.Background(), "Order 1234567 has been canceled successfully.", true, "q"); got != "Order 1234567 has been canceled successfully." {
		t.Fatalf("sparse output should not be summarized: %q", got)
	}
	if s.calls != 0 {
		t.Fatalf("summarizer should not be called, got %d", s.calls)
	}
}

func TestNormalizeFallsBackWhenSummaryFails(t *testing.T) {
	t.Parallel()

	n := New(Config{MaxChars: 40, Summarize: true, SummarizeMinLines: 2, SummarizeMinChars: 300}, &fakeSummarizer{err: errors.New("rate limited")})
	got, err := n.Normalize(context.Background(), denseOutput, true, "q")
	if err != nil {
		t.Fatalf("Normalize returned error: %v", err)
	}
	if !strings.HasSuffix(got, "...") || utf8.RuneCountInString(got) > 40 {
		t.Fatalf("expected truncated fallback, got %q", got)
	}
}

func TestNormalizeDirectNeverTruncates(t *testing.T) {
	t.Parallel()

	long := strings.Repeat("- capability line\n", 60)
	n := New(Config{MaxChars: 50}, nil)
	got := n.NormalizeDirect("Final Answer: " + long)
	if strings.HasSuffix(got, "...") || strings.Count(got, "\n") != 59 {
		t.Fatalf("terminal output must be kept whole, got %d lines", strings.Count(got, "\n")+1)
	}
}
