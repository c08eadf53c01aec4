package services

import "testing"

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"AI for Good 2025", "ai-for-good-2025"},
		{"  spaced  out  ", "spaced-out"},
		{"C++ & Friends!", "c-friends"},
		{"---", ""},
		{"Déjà Vu", "déjà-vu"},
	}
	for _, tc := range cases {
		if got := slugify(tc.in); got != tc.want {
			t.Errorf("slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIdentityTokenIsStable(t *testing.T) {
	a := identityToken("github|12345")
	b := identityToken("github|12345")
	if a != b {
		t.Fatalf("identityToken not deterministic: %q vs %q", a, b)
	}
	if len(a) != 10 {
		t.Fatalf("len = %d, want 10", len(a))
	}
	if a == identityToken("github|54321") {
		t.Fatal("distinct identities collided")
	}
}

func TestShortTokenLength(t *testing.T) {
	if got := shortToken(); len(got) != 8 {
		t.Fatalf("len = %d, want 8", len(got))
	}
}
