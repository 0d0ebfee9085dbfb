package tricolor

import "testing"

func TestColorString(t *testing.T) {
	tests := []struct {
		c    color
		want string
	}{
		{colorWhite, "white"},
		{colorWhiteWeak, "white-weak"},
		{colorBlack, "black"},
		{colorGrey, "grey"},
		{color(99), "invalid-color"},
	}

	for _, tt := range tests {
		if got := tt.c.String(); got != tt.want {
			t.Errorf("color(%d).String() = %q, want %q", tt.c, got, tt.want)
		}
	}
}

func TestFreshHeaderIsWhite(t *testing.T) {
	var h AllocationHeader
	if h.color() != colorWhite {
		t.Fatalf("zero-value header color = %s, want white", h.color())
	}
}
