package repository

import "testing"

func TestLikeEscaper(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"jdoe", "jdoe"},
		{"%", `\%`},
		{"j_doe", `j\_doe`},
		{`j\doe`, `j\\doe`},
		{"100%_done", `100\%\_done`},
	}

	for _, tt := range tests {
		if got := likeEscaper.Replace(tt.in); got != tt.want {
			t.Errorf("Replace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
