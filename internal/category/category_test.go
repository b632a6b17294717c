package category

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestAllHas27Categories(t *testing.T) {
	if len(All) != 27 {
		t.Fatalf("len(All) = %d, want 27", len(All))
	}
	seen := make(map[string]bool, len(All))
	for _, c := range All {
		if seen[c] {
			t.Fatalf("duplicate category %q", c)
		}
		seen[c] = true
	}
}

func TestCanonicalCorrectsCase(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Sports", "Sports", true},
		{"sports", "Sports", true},
		{" TECHNOLOGY ", "Technology", true},
		{"Cooking", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := Canonical(c.in)
		if got != c.want || ok != c.wantOK {
			t.Fatalf("Canonical(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOK)
		}
	}
}

func TestParseReplyTakesFirstLine(t *testing.T) {
	cases := []struct {
		in     string
		want   string
		wantOK bool
	}{
		{"Sports", "Sports", true},
		{"sports\nBecause the topic is about basketball.", "Sports", true},
		{"\"Music\"", "Music", true},
		{"I think this is about cooking", "", false},
		{"", "", false},
	}
	for _, c := range cases {
		got, ok := parseReply(c.in)
		if got != c.want || ok != c.wantOK {
			t.Fatalf("parseReply(%q) = (%q, %v), want (%q, %v)", c.in, got, ok, c.want, c.wantOK)
		}
	}
}

func TestKeywordResolverScoresCombinedText(t *testing.T) {
	k := &KeywordResolver{}

	cat, ok, err := k.Resolve(context.Background(), "NBA", "The National Basketball Association is a professional basketball league.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok || cat != "Sports" {
		t.Fatalf("Resolve(NBA) = (%q, %v), want (Sports, true)", cat, ok)
	}

	// 没有命中任何关键词时应该没有判断
	_, ok, err = k.Resolve(context.Background(), "Zxqwv", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no opinion for unknown topic")
	}
}

type stubResolver struct {
	name string
	cat  string
	ok   bool
	err  error
}

func (s *stubResolver) Name() string { return s.name }

func (s *stubResolver) Resolve(context.Context, string, string) (string, bool, error) {
	return s.cat, s.ok, s.err
}

func TestChainFirstDefiniteAnswerWins(t *testing.T) {
	chain := NewChain("Culture", time.Second,
		&stubResolver{name: "a", ok: false},
		&stubResolver{name: "b", cat: "Politics", ok: true},
		&stubResolver{name: "c", cat: "Sports", ok: true},
	)
	if got := chain.Resolve(context.Background(), "t", ""); got != "Politics" {
		t.Fatalf("Resolve = %q, want Politics", got)
	}
}

func TestChainFallsBackOnErrorsAndInvalid(t *testing.T) {
	chain := NewChain("Culture", time.Second,
		&stubResolver{name: "down", err: errors.New("connection refused")},
		&stubResolver{name: "bad", cat: "NotACategory", ok: true},
	)
	if got := chain.Resolve(context.Background(), "t", ""); got != "Culture" {
		t.Fatalf("Resolve = %q, want fallback Culture", got)
	}
}

func TestChainAlwaysReturnsMember(t *testing.T) {
	// 非法兜底分类会被纠正为 Culture
	chain := NewChain("Nonsense", time.Second)
	got := chain.Resolve(context.Background(), "anything", "")
	if !IsValid(got) {
		t.Fatalf("Resolve returned non-member category %q", got)
	}
}
