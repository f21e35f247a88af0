package core

// OtherCategoryID identifies the catch-all category.
const OtherCategoryID = "8"

var categories = [...]Category{
	{ID: "1", Name: "Food", Color: "#EF4444", Icon: "🍽️"},
	{ID: "2", Name: "Transport", Color: "#3B82F6", Icon: "🚗"},
	{ID: "3", Name: "Shopping", Color: "#8B5CF6", Icon: "🛍️"},
	{ID: "4", Name: "Entertainment", Color: "#F59E0B", Icon: "🎬"},
	{ID: "5", Name: "Health", Color: "#10B981", Icon: "🏥"},
	{ID: "6", Name: "Education", Color: "#6366F1", Icon: "📚"},
	{ID: "7", Name: "Bills", Color: "#DC2626", Icon: "📱"},
	{ID: OtherCategoryID, Name: "Other", Color: "#6B7280", Icon: "💰"},
}

// Categories returns the fixed category set in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories[:])
	return out
}

// CategoryIDs returns the ids of all categories in display order.
func CategoryIDs() []string {
	ids := make([]string, len(categories))
	for i, c := range categories {
		ids[i] = c.ID
	}
	return ids
}

func CategoryByID(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// MustCategory returns the category with the given id and panics if there is
// none. Meant for tests and package-level fixtures.
func MustCategory(id string) Category {
	c, ok := CategoryByID(id)
	if !ok {
		panic("core: unknown category " + id)
	}
	return c
}
