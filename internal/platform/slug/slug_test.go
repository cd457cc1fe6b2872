package slug

import "testing"

func TestMake(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"Cross-country skiing": "cross-country-skiing",
		"  Yoga  ":             "yoga",
		"Écoute!":              "coute",
		"***":                  "session",
		"a very long activity name that keeps going on": "a-very-long-activity-name-that-keeps-goi",
	}
	for in, want := range cases {
		if got := Make(in, "session"); got != want {
			t.Fatalf("Make(%q) = %q, want %q", in, got, want)
		}
	}
}
