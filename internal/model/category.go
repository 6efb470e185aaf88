// Package model defines the core domain types for habit categorization.
package model

// Category is a semantic label assignable to a habit name. The set of
// categories is closed: callers persist the raw value and group records by
// it, so unrecognized values are rejected at parse time rather than carried
// through.
type Category string

// The full category set. CategoryOther is the guaranteed fallback.
const (
	CategoryFitness     Category = "Fitness"
	CategoryEducation   Category = "Education"
	CategoryMindfulness Category = "Mindfulness"
	CategoryWork        Category = "Work"
	CategoryHealth      Category = "Health"
	CategorySocial      Category = "Social"
	CategoryFinance     Category = "Finance"
	CategoryOther       Category = "Other"
)

// AllCategories returns every valid category in declaration order.
func AllCategories() []Category {
	return []Category{
		CategoryFitness,
		CategoryEducation,
		CategoryMindfulness,
		CategoryWork,
		CategoryHealth,
		CategorySocial,
		CategoryFinance,
		CategoryOther,
	}
}

// Valid reports whether c is a member of the closed category set.
func (c Category) Valid() bool {
	switch c {
	case CategoryFitness, CategoryEducation, CategoryMindfulness,
		CategoryWork, CategoryHealth, CategorySocial,
		CategoryFinance, CategoryOther:
		return true
	}
	return false
}

// String implements fmt.Stringer.
func (c Category) String() string {
	return string(c)
}

// ParseCategory converts a stored string back into a Category, reporting
// whether the value is a member of the set.
func ParseCategory(s string) (Category, bool) {
	c := Category(s)
	return c, c.Valid()
}
