package landmarks

import "testing"

func TestRange_GetText(t *testing.T) {
	source := "hello world"

	cases := []struct {
		name  string
		r     Range
		want  string
	}{
		{"ordinary", NewRange(0, 5), "hello"},
		{"middle", NewRange(6, 11), "world"},
		{"empty", NewRange(3, 3), ""},
		{"incomplete end clamps to source length", Range{Start: 6, End: NPOS}, "world"},
		{"start past source yields empty", Range{Start: NPOS, End: NPOS}, ""},
	}
	for _, c := range cases {
		if got := c.r.GetText(source); got != c.want {
			t.Errorf("%s: GetText = %q, want %q", c.name, got, c.want)
		}
	}
}

func TestRange_IsCompleteAndIsEmpty(t *testing.T) {
	complete := NewRange(0, 0)
	if !complete.IsComplete() {
		t.Errorf("NewRange(0, 0) should be complete")
	}
	if !complete.IsEmpty() {
		t.Errorf("NewRange(0, 0) should be empty")
	}

	incomplete := Range{Start: 3, End: NPOS}
	if incomplete.IsComplete() {
		t.Errorf("a range ending at NPOS should not be complete")
	}

	unresolved := Range{Start: NPOS, End: NPOS}
	if !unresolved.IsEmpty() {
		t.Errorf("a range that never started should be empty")
	}
}

func TestRange_GetDecodedText_StripsCDataFences(t *testing.T) {
	source := "before <![CDATA[ raw & unencoded ]]> after"
	r := NewRange(7, 36)

	decode := func(s string) string { return s }
	got := r.GetDecodedText(source, decode)
	want := " raw & unencoded "
	if got != want {
		t.Fatalf("GetDecodedText = %q, want %q", got, want)
	}
}

func TestRange_GetDecodedText_NoFencesPassesThroughToDecode(t *testing.T) {
	source := "a &amp; b"
	r := NewRange(0, Position(len(source)))

	called := false
	decode := func(s string) string {
		called = true
		if s != source {
			t.Fatalf("decode received %q, want %q", s, source)
		}
		return "a & b"
	}
	if got := r.GetDecodedText(source, decode); got != "a & b" {
		t.Fatalf("GetDecodedText = %q", got)
	}
	if !called {
		t.Fatalf("expected decode to be invoked")
	}
}

func TestRange_GetDecodedText_NilDecodeReturnsRawText(t *testing.T) {
	source := "plain"
	r := NewRange(0, 5)
	if got := r.GetDecodedText(source, nil); got != "plain" {
		t.Fatalf("GetDecodedText with nil decode = %q, want %q", got, "plain")
	}
}

func TestNPOS_IsPastEverySource(t *testing.T) {
	source := "short"
	r := Range{Start: NPOS, End: NPOS}
	if r.GetText(source) != "" {
		t.Fatalf("NPOS-bounded range should yield empty text")
	}
}
