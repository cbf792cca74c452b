// Package catalog indexes slider descriptors per gender and decorates them
// with display categories.
//
// A Catalog is built once and is read-only afterwards, so a single value can
// be shared by any number of concurrent validations.
package catalog

import (
	"github.com/aretw0/bodygen/pkg/domain"
)

// Uncategorized is the synthetic category for descriptors no category claims.
const Uncategorized = "Uncategorized"

// Source is one slider source file: the descriptors it contributed and the
// gender they belong to.
type Source struct {
	Path        string
	Gender      domain.Gender
	Descriptors []domain.SliderDescriptor
}

// Catalog is the per-gender slider index.
type Catalog struct {
	byGender    [2][]domain.SliderDescriptor
	index       [2]map[string]int
	categorized [2]map[string][]domain.DecoratedSlider
	categories  [2][]string
}

// Build indexes the slider sources and joins them with the categories.
//
// Each descriptor takes the gender and path of its source. Sources with a
// gender other than male or female are skipped. If a morph key appears more
// than once for the same gender, the first descriptor is the one returned by
// lookups. A descriptor lands in the first category, in source order, that
// lists its morph key; otherwise it goes to Uncategorized with its morph key as
// display name.
func Build(sources []Source, categories []domain.SliderCategory) *Catalog {
	c := &Catalog{}
	for i := range c.index {
		c.index[i] = make(map[string]int)
		c.categorized[i] = make(map[string][]domain.DecoratedSlider)
	}

	for _, src := range sources {
		if !src.Gender.Valid() {
			continue
		}
		g := int(src.Gender)
		for _, d := range src.Descriptors {
			d.Gender = src.Gender
			if src.Path != "" {
				d.SourcePath = src.Path
			}
			if _, dup := c.index[g][d.MorphKey]; !dup {
				c.index[g][d.MorphKey] = len(c.byGender[g])
			}
			c.byGender[g] = append(c.byGender[g], d)
		}
	}

	claims := claimCategories(categories)

	for g := range c.byGender {
		for _, d := range c.byGender[g] {
			deco := domain.DecoratedSlider{
				SliderDescriptor: d,
				Category:         Uncategorized,
				DisplayName:      d.MorphKey,
			}
			if cl, ok := claims[d.MorphKey]; ok {
				deco.Category = cl.category
				if cl.displayName != "" {
					deco.DisplayName = cl.displayName
				}
			}
			c.categorized[g][deco.Category] = append(c.categorized[g][deco.Category], deco)
		}
		c.categories[g] = orderCategories(categories, c.categorized[g])
	}

	return c
}

type claim struct {
	category    string
	displayName string
}

// claimCategories maps each morph key to the first category that lists it.
func claimCategories(categories []domain.SliderCategory) map[string]claim {
	claims := make(map[string]claim)
	for _, cat := range categories {
		for _, e := range cat.Entries {
			if _, taken := claims[e.MorphKey]; taken {
				continue
			}
			claims[e.MorphKey] = claim{category: cat.CategoryName, displayName: e.DisplayName}
		}
	}
	return claims
}

// orderCategories returns the non-empty category names in source order with
// Uncategorized last.
func orderCategories(categories []domain.SliderCategory, filled map[string][]domain.DecoratedSlider) []string {
	names := make([]string, 0, len(filled))
	added := make(map[string]bool)
	for _, cat := range categories {
		if added[cat.CategoryName] || cat.CategoryName == Uncategorized {
			continue
		}
		if len(filled[cat.CategoryName]) > 0 {
			names = append(names, cat.CategoryName)
			added[cat.CategoryName] = true
		}
	}
	if len(filled[Uncategorized]) > 0 {
		names = append(names, Uncategorized)
	}
	return names
}

// Lookup finds the descriptor for morphKey, checking the male list first.
func (c *Catalog) Lookup(morphKey string) (domain.SliderDescriptor, bool) {
	for _, g := range domain.Genders {
		if d, ok := c.LookupGender(g, morphKey); ok {
			return d, true
		}
	}
	return domain.SliderDescriptor{}, false
}

// LookupGender finds the descriptor for morphKey in one gender list.
func (c *Catalog) LookupGender(g domain.Gender, morphKey string) (domain.SliderDescriptor, bool) {
	if !g.Valid() {
		return domain.SliderDescriptor{}, false
	}
	i, ok := c.index[g][morphKey]
	if !ok {
		return domain.SliderDescriptor{}, false
	}
	return c.byGender[g][i], true
}

// ByGender returns a copy of the descriptors for g in source order.
func (c *Catalog) ByGender(g domain.Gender) []domain.SliderDescriptor {
	if !g.Valid() {
		return nil
	}
	out := make([]domain.SliderDescriptor, len(c.byGender[g]))
	copy(out, c.byGender[g])
	return out
}

// Categorized returns a copy of the category map for g.
func (c *Catalog) Categorized(g domain.Gender) map[string][]domain.DecoratedSlider {
	if !g.Valid() {
		return nil
	}
	out := make(map[string][]domain.DecoratedSlider, len(c.categorized[g]))
	for name, list := range c.categorized[g] {
		out[name] = append([]domain.DecoratedSlider(nil), list...)
	}
	return out
}

// CategoryNames returns the populated categories for g in display order.
func (c *Catalog) CategoryNames(g domain.Gender) []string {
	if !g.Valid() {
		return nil
	}
	return append([]string(nil), c.categories[g]...)
}

// Len returns the number of descriptors across both genders.
func (c *Catalog) Len() int {
	return len(c.byGender[domain.GenderMale]) + len(c.byGender[domain.GenderFemale])
}
