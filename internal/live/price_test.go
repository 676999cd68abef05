package live

import "testing"

func TestIncrement(t *testing.T) {
	cases := []struct {
		price int
		want  int
	}{
		{price: 0, want: 10},
		{price: 80, want: 10},
		{price: 99, want: 10},
		{price: 100, want: 25},
		{price: 120, want: 25},
		{price: 499, want: 25},
		{price: 500, want: 50},
		{price: 520, want: 50},
	}

	for _, tc := range cases {
		if got := Increment(tc.price); got != tc.want {
			t.Errorf("Increment(%d) = %d, want %d", tc.price, got, tc.want)
		}
	}
}

func TestNextPrice(t *testing.T) {
	cases := []struct {
		name      string
		current   int
		base      int
		direction Direction
		want      int
	}{
		{name: "increase below 100", current: 80, base: 80, direction: Increase, want: 90},
		{name: "increase at 120", current: 120, base: 100, direction: Increase, want: 145},
		{name: "increase at 520", current: 520, base: 500, direction: Increase, want: 570},
		{name: "increase at boundary 500", current: 500, base: 100, direction: Increase, want: 550},
		{name: "decrease picks largest fitting step", current: 130, base: 100, direction: Decrease, want: 105},
		{name: "decrease snaps to base when no step fits", current: 105, base: 100, direction: Decrease, want: 100},
		{name: "decrease at base stays at base", current: 100, base: 100, direction: Decrease, want: 100},
		{name: "decrease with room for 50", current: 300, base: 100, direction: Decrease, want: 250},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NextPrice(tc.current, tc.base, tc.direction); got != tc.want {
				t.Fatalf("NextPrice(%d, %d, %s) = %d, want %d", tc.current, tc.base, tc.direction, got, tc.want)
			}
		})
	}
}

func TestNextPriceNeverGoesBelowBase(t *testing.T) {
	base := 100
	price := 570
	for i := 0; i < 50; i++ {
		price = NextPrice(price, base, Decrease)
		if price < base {
			t.Fatalf("price dropped below base: %d < %d", price, base)
		}
	}
	if price != base {
		t.Fatalf("repeated decreases should settle at base, got %d", price)
	}
}
