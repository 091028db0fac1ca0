package models

// CategoryGroup is one heading of the listing taxonomy.
type CategoryGroup struct {
	Group   string   `json:"group"`
	Options []string `json:"options"`
}

// ProductCategories is the single source of truth for listing categories,
// shared by the publish form and the storefront filters.
var ProductCategories = []CategoryGroup{
	{
		Group: "Collectibles & Fandom",
		Options: []string{
			"Anime & Manga (Shonen/Seinen)",
			"Film, TV & Comics (Marvel/DC/Star Wars)",
			"Video Games & Gaming",
			"Tabletop Minis & Wargames (D&D)",
			"Premium Busts & Sculptures",
		},
	},
	{
		Group: "Functional & Gadgets",
		Options: []string{
			"Gaming & Desk Setup",
			"Tech Accessories (Stands)",
			"Tools & Useful Spare Parts",
		},
	},
	{
		Group: "Home & Decor",
		Options: []string{
			"Geometric Decor & Modern Art",
			"3D Planters",
			"Lighting & Lithophanes",
		},
	},
	{
		Group: "Cosplay & Fashion",
		Options: []string{
			"Cosplay Props",
			"Jewelry & Fashion Accessories",
		},
	},
	{
		Group: "Other",
		Options: []string{
			"Art Toys & Urban Design",
			"Prototypes & Misc",
		},
	},
}

var categorySet = func() map[string]bool {
	set := make(map[string]bool)
	for _, g := range ProductCategories {
		for _, o := range g.Options {
			set[o] = true
		}
	}
	return set
}()

func IsCategory(name string) bool {
	return categorySet[name]
}

// Countries the storefront currently serves.
var Countries = []string{"Argentina", "España", "Mexico"}

func IsCountry(name string) bool {
	for _, c := range Countries {
		if c == name {
			return true
		}
	}
	return false
}

// FeaturedCategories returns the hero-banner chips shown for a country.
func FeaturedCategories(country string) []string {
	switch country {
	case "Argentina":
		return []string{"Dragon Ball 3D", "3D Plants", "3D Pets"}
	case "España":
		return []string{"SXTOYS 3D", "Anime", "Gadgets"}
	default:
		return []string{"Anime", "Gadgets", "Pets"}
	}
}
