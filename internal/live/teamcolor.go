package live

import (
	"fmt"
	"strings"
)

// DefaultTeamColor is used when no team name is available.
const DefaultTeamColor = "#3b82f6"

// TeamHue hashes a team name into a 0-359 hue. The hash is a signed 32-bit
// rolling hash of the character codes, so the same name always yields the
// same hue within and across sessions.
func TeamHue(name string) int {
	var hash int32
	for _, r := range name {
		hash = int32(r) + (hash<<5 - hash)
	}

	h := int64(hash)
	if h < 0 {
		h = -h
	}
	return int(h % 360)
}

// TeamColor returns the display color for a team as an HSL string with
// fixed saturation and lightness.
func TeamColor(name string) string {
	if name == "" {
		return DefaultTeamColor
	}
	return fmt.Sprintf("hsl(%d, 70%%, 50%%)", TeamHue(name))
}

// TeamInitials returns a short badge label for a team: the first two letters
// of a single-word name, or the initials of the first two words.
func TeamInitials(name string) string {
	if name == "" {
		return "TM"
	}

	words := strings.Fields(name)
	if len(words) == 1 {
		if len(name) < 2 {
			return strings.ToUpper(name)
		}
		return strings.ToUpper(name[:2])
	}

	var b strings.Builder
	for _, w := range words {
		b.WriteByte(w[0])
	}
	initials := strings.ToUpper(b.String())
	if len(initials) > 2 {
		initials = initials[:2]
	}
	return initials
}
