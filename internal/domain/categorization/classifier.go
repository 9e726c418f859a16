// Package categorization classifies establishment names into a fixed
// expense taxonomy and item descriptions into per-category
// subcategories. Matching is keyword-driven and stateless: a fixed
// table is compiled once into an Aho-Corasick matcher and every lookup
// is a single pass over the input text.
package categorization

import (
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// keywordMatch is the metadata attached to a compiled pattern.
type keywordMatch struct {
	keyword  string
	bucket   int // index into the source table
	priority int // higher wins; earlier table rows rank higher
}

// keywordEngine is a multi-pattern substring matcher over one keyword
// table. It pre-computes the Aho-Corasick state machine so a lookup is
// O(len(input)) regardless of the number of keywords.
type keywordEngine struct {
	matcher  *ahocorasick.Matcher
	metadata [][]keywordMatch // parallel to the matcher's patterns
}

func newKeywordEngine(tables [][]string) *keywordEngine {
	patternToIndex := make(map[string]int)
	var patterns [][]byte
	var metadata [][]keywordMatch

	// Earlier tables and earlier keywords get higher priority so that
	// table order decides ties, same as a sequential substring scan.
	rank := 1 << 20
	for bucket, keywords := range tables {
		for _, kw := range keywords {
			clean := strings.ToUpper(strings.TrimSpace(kw))
			if clean == "" {
				continue
			}
			m := keywordMatch{keyword: kw, bucket: bucket, priority: rank}
			rank--
			if idx, ok := patternToIndex[clean]; ok {
				metadata[idx] = append(metadata[idx], m)
				continue
			}
			patternToIndex[clean] = len(patterns)
			patterns = append(patterns, []byte(clean))
			metadata = append(metadata, []keywordMatch{m})
		}
	}

	e := &keywordEngine{metadata: metadata}
	if len(patterns) > 0 {
		e.matcher = ahocorasick.NewMatcher(patterns)
	}
	return e
}

// match returns the winning bucket index for the input, or -1 when no
// keyword matches.
func (e *keywordEngine) match(input string) int {
	if e.matcher == nil || input == "" {
		return -1
	}

	hits := e.matcher.Match([]byte(strings.ToUpper(input)))
	if len(hits) == 0 {
		return -1
	}

	best := -1
	bestPriority := -1
	for _, idx := range hits {
		if idx < 0 || idx >= len(e.metadata) {
			continue
		}
		for _, m := range e.metadata[idx] {
			if m.priority > bestPriority {
				bestPriority = m.priority
				best = m.bucket
			}
		}
	}
	return best
}

// Classifier performs the two-level lookup: establishment name to main
// category, then item description to subcategory within that category.
// It is safe for concurrent use once built.
type Classifier struct {
	categories *keywordEngine
	subEngines map[string]*keywordEngine
}

// NewClassifier compiles the static taxonomy into matchers.
func NewClassifier() *Classifier {
	catTables := make([][]string, len(expenseCategories))
	for i, c := range expenseCategories {
		catTables[i] = c.keywords
	}

	subEngines := make(map[string]*keywordEngine, len(subcategoryTables))
	for categoryID, table := range subcategoryTables {
		tables := make([][]string, len(table))
		for i, s := range table {
			tables[i] = s.keywords
		}
		subEngines[categoryID] = newKeywordEngine(tables)
	}

	return &Classifier{
		categories: newKeywordEngine(catTables),
		subEngines: subEngines,
	}
}

// CategorizeEstablishment maps a merchant name to a main category.
// An empty or unmatched name falls back to "outras".
func (c *Classifier) CategorizeEstablishment(name string) Category {
	fallback := expenseCategories[len(expenseCategories)-1]
	if name == "" {
		return Category{ID: fallback.ID, Name: fallback.Name, Emoji: fallback.Emoji}
	}
	if idx := c.categories.match(name); idx >= 0 {
		matched := expenseCategories[idx]
		return Category{ID: matched.ID, Name: matched.Name, Emoji: matched.Emoji}
	}
	return Category{ID: fallback.ID, Name: fallback.Name, Emoji: fallback.Emoji}
}

// Subcategorize maps an item description to a subcategory of the given
// main category. Unknown categories and unmatched descriptions fall
// back to the "outros" bucket.
func (c *Classifier) Subcategorize(categoryID, description string) Subcategory {
	engine, ok := c.subEngines[categoryID]
	if !ok {
		return subcategoryFallback
	}
	if idx := engine.match(description); idx >= 0 {
		matched := subcategoryTables[categoryID][idx]
		return Subcategory{ID: matched.ID, Name: matched.Name, Emoji: matched.Emoji}
	}
	return subcategoryFallback
}
