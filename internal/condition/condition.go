// Package condition classifies OpenWeatherMap condition codes.
package condition

// Category is the human-meaningful class of an observed condition.
type Category string

const (
	Thunderstorm Category = "Thunderstorm"
	Drizzle      Category = "Drizzle"
	Rain         Category = "Rain"
	Snow         Category = "Snow"
	Atmosphere   Category = "Atmosphere"
	VolcanicAsh  Category = "VolcanicAsh"
	Squall       Category = "Squall"
	Tornado      Category = "Tornado"
	Clear        Category = "Clear"
	Clouds       Category = "Clouds"
	Unknown      Category = "Unknown"
)

// codeRange is an inclusive range of condition codes.
type codeRange struct {
	min, max int
	category Category
}

// ranges must stay disjoint; Classify returns the first match.
var ranges = []codeRange{
	{200, 232, Thunderstorm},
	{300, 321, Drizzle},
	{500, 531, Rain},
	{600, 622, Snow},
	{701, 741, Atmosphere},
	{762, 762, VolcanicAsh},
	{771, 771, Squall},
	{781, 781, Tornado},
	{800, 800, Clear},
	{801, 804, Clouds},
}

var icons = map[Category]string{
	Thunderstorm: "⛈️",
	Drizzle:      "🌦️",
	Rain:         "🌧️",
	Snow:         "❄️",
	Atmosphere:   "🌫️",
	VolcanicAsh:  "🌋",
	Squall:       "💨",
	Tornado:      "🌪",
	Clear:        "☀️",
	Clouds:       "☁️",
}

// Classify maps a condition code to its Category. Codes outside every known
// range are Unknown.
func Classify(code int) Category {
	for _, r := range ranges {
		if code >= r.min && code <= r.max {
			return r.category
		}
	}
	return Unknown
}

// Icon returns the display glyph for c, or "" for Unknown.
func (c Category) Icon() string {
	return icons[c]
}

// Categories lists every label Classify can return.
func Categories() []Category {
	out := make([]Category, 0, len(ranges)+1)
	for _, r := range ranges {
		out = append(out, r.category)
	}
	return append(out, Unknown)
}
