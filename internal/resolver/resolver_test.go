package resolver

import (
	"testing"

	"github.com/stefanautomateed/sportsdata/internal/domain/sport"
)

func TestResolve_ExactAlias(t *testing.T) {
	t.Parallel()

	r := New(Config{})

	tests := []struct {
		raw   string
		sport sport.Sport
		want  string
	}{
		{"man utd", sport.Soccer, "Manchester United"},
		{"  LAKERS  ", sport.Basketball, "Los Angeles Lakers"},
		{"Habs", sport.Hockey, "Montreal Canadiens"},
		{"niners", sport.Football, "San Francisco 49ers"},
	}

	for _, tc := range tests {
		if got := r.Resolve(tc.raw, tc.sport); got != tc.want {
			t.Fatalf("Resolve(%q, %s) = %q, want %q", tc.raw, tc.sport, got, tc.want)
		}
	}
}

func TestResolve_Containment(t *testing.T) {
	t.Parallel()

	r := New(Config{})

	// Input contains an alias key.
	if got := r.Resolve("the mighty golden state warriors squad", sport.Basketball); got != "Golden State Warriors" {
		t.Fatalf("containment resolve = %q", got)
	}
	// Alias key contains the input.
	if got := r.Resolve("borussia dort", sport.Soccer); got != "Borussia Dortmund" {
		t.Fatalf("containment resolve = %q", got)
	}
}

func TestResolve_FuzzyThresholdBoundary(t *testing.T) {
	t.Parallel()

	r := New(Config{FuzzyThreshold: 70})

	// "Miami Heat" is 10 runes; three substitutions give exactly 70.
	if got := Similarity("xiamixheax", "Miami Heat"); got != 70 {
		t.Fatalf("similarity = %d, want 70", got)
	}
	if got := r.Resolve("xiamixheax", sport.Basketball); got != "Miami Heat" {
		t.Fatalf("score 70 must be accepted, got %q", got)
	}

	// "Chicago Bulls" is 13 runes; four substitutions give 69.
	if got := Similarity("xhicagoxbulxz", "Chicago Bulls"); got != 69 {
		t.Fatalf("similarity = %d, want 69", got)
	}
	if got := r.Resolve("xhicagoxbulxz", sport.Basketball); got != "xhicagoxbulxz" {
		t.Fatalf("score 69 must fall through to pass-through, got %q", got)
	}
}

func TestResolve_PassThroughNeverFails(t *testing.T) {
	t.Parallel()

	r := New(Config{})

	if got := r.Resolve("  Totally Unknown Team Zq  ", sport.Hockey); got != "Totally Unknown Team Zq" {
		t.Fatalf("pass-through = %q", got)
	}
	if got := r.Resolve("", sport.Hockey); got != "" {
		t.Fatalf("empty input should stay empty, got %q", got)
	}
}

func TestResolve_MemoizesIncludingPassThrough(t *testing.T) {
	t.Parallel()

	r := New(Config{})

	first := r.Resolve("man city", sport.Soccer)
	second := r.Resolve("MAN CITY", sport.Soccer)
	if first != second || first != "Manchester City" {
		t.Fatalf("idempotence broken: %q vs %q", first, second)
	}
	if got := r.misses.Load(); got != 1 {
		t.Fatalf("lookup ran %d times, want 1", got)
	}

	r.Resolve("no such club anywhere", sport.Soccer)
	r.Resolve("no such club anywhere", sport.Soccer)
	if got := r.misses.Load(); got != 2 {
		t.Fatalf("pass-through not memoized, %d lookups", got)
	}
}

func TestSearchVariations(t *testing.T) {
	t.Parallel()

	r := New(Config{})

	got := r.SearchVariations("man united", sport.Soccer)
	want := []string{"Manchester United", "man united", "Manchester", "United"}
	if len(got) != len(want) {
		t.Fatalf("variations = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("variations[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSearchVariations_StripsClubSuffix(t *testing.T) {
	t.Parallel()

	r := New(Config{})

	got := r.SearchVariations("Liverpool FC", sport.Soccer)
	// Canonical is "Liverpool"; the suffix-stripped form collapses into it,
	// so dedupe leaves canonical plus the raw form.
	if got[0] != "Liverpool" {
		t.Fatalf("first variation should be canonical, got %v", got)
	}
	if len(got) != 2 || got[1] != "Liverpool FC" {
		t.Fatalf("variations = %v, want [Liverpool, Liverpool FC]", got)
	}
}
