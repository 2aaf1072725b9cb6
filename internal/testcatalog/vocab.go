package testcatalog

import "github.com/okian/ensemble/internal/domain/model"

// Attribute vocabularies used by the generator. Values overlap with the
// scorer's activity-material table and the assembler's neutral color set so
// generated catalogs exercise real match paths.
var (
	colors = []string{
		"black", "white", "navy", "beige", "olive", "red", "blue",
		"green", "pink", "burgundy", "mustard", "grey",
	}

	styles = []string{
		"minimal", "streetwear", "classic", "bohemian", "sporty", "elevated",
	}

	occasions = []string{
		"office", "date night", "wedding", "brunch", "travel",
		"beach day", "concert", "interview",
	}

	formalities = []string{"casual", "elevated", "athleisure"}

	activities = []string{
		"yoga", "running", "hiking", "gym", "cycling", "walking", "dancing",
	}

	exclusionTerms = []string{"leather", "wool", "fur", "polyester", "silk"}

	materialsByRole = map[model.Role][]string{
		model.RoleTop:       {"cotton", "linen", "silk", "stretch jersey", "polyester", "wool"},
		model.RoleBottom:    {"denim", "cotton", "stretch spandex", "linen", "wool"},
		model.RoleShoes:     {"leather", "canvas", "mesh", "suede"},
		model.RoleOuter:     {"wool", "leather", "denim", "fleece", "nylon"},
		model.RoleAccessory: {"leather", "canvas", "metal", "silk"},
	}

	categoriesByRole = map[model.Role][]string{
		model.RoleTop:       {"t-shirt", "blouse", "shirt", "tank", "sweater"},
		model.RoleBottom:    {"jeans", "leggings", "trousers", "skirt", "shorts"},
		model.RoleShoes:     {"sneakers", "heels", "boots", "loafers", "sandals"},
		model.RoleOuter:     {"jacket", "blazer", "coat", "cardigan"},
		model.RoleAccessory: {"belt", "scarf", "bag", "hat", "necklace"},
	}
)
