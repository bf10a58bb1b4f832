package entities

// Category is a named group of questions.
type Category struct {
	ID    string // identifier used in commands and links, e.g. "linux"
	Title string // human readable title
	File  string // file name of the bundled question set
}

// KnownCategories lists the LFCA categories in display order.
var KnownCategories = []Category{
	{ID: "linux", Title: "Linux", File: "Linux.json"},
	{ID: "system", Title: "System Administration", File: "System.json"},
	{ID: "cloud", Title: "Cloud Computing", File: "Cloud.json"},
	{ID: "security", Title: "Security", File: "Security.json"},
	{ID: "devops", Title: "DevOps", File: "DevOps.json"},
	{ID: "it", Title: "IT Project Management", File: "IT.json"},
}

// LookupCategory returns the known category with the given id.
func LookupCategory(id string) (Category, bool) {
	for _, c := range KnownCategories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryTitle returns the display title for id, falling back to the id itself.
func CategoryTitle(id string) string {
	if c, ok := LookupCategory(id); ok {
		return c.Title
	}
	return id
}
