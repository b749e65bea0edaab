package place

import "testing"

func TestFilterMatches(t *testing.T) {
	p := Place{
		Name:     "Registan Square",
		Location: "Samarkand",
		Category: "Historical Sites",
		Rating:   4.8,
	}

	tests := []struct {
		name   string
		filter Filter
		want   bool
	}{
		{"zero filter matches everything", Filter{}, true},
		{"category match", Filter{Category: "Historical Sites"}, true},
		{"category mismatch", Filter{Category: "Museums"}, false},
		{"query matches name case-insensitively", Filter{Query: "registan"}, true},
		{"query matches location", Filter{Query: "samarkand"}, true},
		{"query mismatch", Filter{Query: "bazaar"}, false},
		{"min rating below", Filter{MinRating: 4.5}, true},
		{"min rating above", Filter{MinRating: 4.9}, false},
		{"all constraints together", Filter{Category: "Historical Sites", Query: "registan", MinRating: 4}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Matches(p); got != tt.want {
				t.Errorf("Matches() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestValidCategory(t *testing.T) {
	for _, c := range Categories {
		if !ValidCategory(c) {
			t.Errorf("ValidCategory(%q) = false", c)
		}
	}
	if ValidCategory("Nightlife") {
		t.Error("unknown category accepted")
	}
	if ValidCategory("") {
		t.Error("empty category accepted")
	}
}

func TestValidStars(t *testing.T) {
	for n := 1; n <= 5; n++ {
		if !ValidStars(n) {
			t.Errorf("ValidStars(%d) = false", n)
		}
	}
	for _, n := range []int{0, 6, -1} {
		if ValidStars(n) {
			t.Errorf("ValidStars(%d) = true", n)
		}
	}
}
