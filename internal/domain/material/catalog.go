// Package material holds the fixed list of household materials users can pick from.
package material

// Material is one pickable household item.
type Material struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
}

var catalog = []Material{
	{ID: "scissors", Name: "Scissors", Icon: "✂️"},
	{ID: "balloon", Name: "Balloon", Icon: "🎈"},
	{ID: "glue", Name: "Glue", Icon: "🧴"},
	{ID: "tape", Name: "Tape", Icon: "📏"},
	{ID: "toilet-paper-roll", Name: "Toilet Paper Roll", Icon: "🧻"},
	{ID: "yarn", Name: "Yarn", Icon: "🧶"},
	{ID: "markers", Name: "Markers", Icon: "🖍️"},
	{ID: "clothespin", Name: "Clothespin", Icon: "📎"},
	{ID: "plastic-bottle", Name: "Plastic Bottle", Icon: "🍼"},
}

// Catalog returns a copy of the material list in display order.
func Catalog() []Material {
	return append([]Material(nil), catalog...)
}

// Lookup finds a material by ID.
func Lookup(id string) (Material, bool) {
	for _, m := range catalog {
		if m.ID == id {
			return m, true
		}
	}
	return Material{}, false
}

// ResolveNames maps material IDs to display names in the given order, skipping unknown IDs.
func ResolveNames(ids []string) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if m, ok := Lookup(id); ok {
			names = append(names, m.Name)
		}
	}
	return names
}
