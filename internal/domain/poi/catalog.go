package poi

// Style is the display glyph and color for a POI category.
type Style struct {
	Icon  string
	Color string
}

// Defaults for categories without a catalog entry.
const (
	DefaultIcon  = "🏪"
	DefaultColor = "#2e3450"
)

// catalog maps raw OSM category values (shop=* / amenity=*) to display
// styles. Read-only process-wide state; keyed by the un-normalized tag
// value.
var catalog = map[string]Style{
	"restaurant":  {Icon: "🍽", Color: "#ff6b35"},
	"cafe":        {Icon: "☕", Color: "#6b3a2a"},
	"fast_food":   {Icon: "🍔", Color: "#ff4500"},
	"food_court":  {Icon: "🍱", Color: DefaultColor},
	"supermarket": {Icon: "🛒", Color: "#004c97"},
	"mall":        {Icon: "🏬", Color: "#1a1a2e"},
	"pharmacy":    {Icon: "💊", Color: "#00468b"},
	"hospital":    {Icon: "🏥", Color: "#e63946"},
	"bank":        {Icon: "🏦", Color: "#22409a"},
	"atm":         {Icon: "🏦", Color: "#22409a"},
	"cinema":      {Icon: "🎬", Color: "#c62a2a"},
	"fuel":        {Icon: "⛽", Color: "#ffb800"},
	"clothes":     {Icon: "👗", Color: "#d4145a"},
	"electronics": {Icon: "📱", Color: "#3563e9"},
	"bakery":      {Icon: "🥐", Color: DefaultColor},
	"convenience": {Icon: "🏪", Color: DefaultColor},
	"jewellery":   {Icon: "💍", Color: DefaultColor},
	"beauty":      {Icon: "💄", Color: DefaultColor},
	"hairdresser": {Icon: "💈", Color: DefaultColor},
	"sports":      {Icon: "🏃", Color: DefaultColor},
	"books":       {Icon: "📚", Color: DefaultColor},
}

// StyleFor returns the display style for a raw category value, falling back
// to the documented defaults for unmapped categories.
func StyleFor(rawCategory string) Style {
	if s, ok := catalog[rawCategory]; ok {
		return s
	}
	return Style{Icon: DefaultIcon, Color: DefaultColor}
}
