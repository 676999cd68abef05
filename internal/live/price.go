package live

// Direction is the sign of a price adjustment.
type Direction string

const (
	Increase Direction = "increase"
	Decrease Direction = "decrease"
)

// decrementSteps are tried largest-first when lowering a price.
var decrementSteps = [...]int{50, 25, 10}

// Increment returns the bid step for the given running price: +50 at or
// above 500, +25 at or above 100, +10 below that.
func Increment(price int) int {
	switch {
	case price >= 500:
		return 50
	case price >= 100:
		return 25
	default:
		return 10
	}
}

// NextPrice computes the price after one adjustment. Increases add the step
// for the current price. Decreases take the largest step that does not bring
// the price below base, snapping to base when no step fits.
func NextPrice(current, base int, direction Direction) int {
	if direction == Increase {
		return current + Increment(current)
	}

	for _, step := range decrementSteps {
		if step <= current-base {
			return current - step
		}
	}
	return base
}
