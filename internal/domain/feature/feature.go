// Package feature turns raw profile attributes into comparable forms:
// skill tag lists become fixed-dimension category count vectors and free
// text becomes a normalized token string.
package feature

import (
	"regexp"
	"strings"
)

// Category is one dimension of the skill vector.
type Category string

// Skill categories, in vector order.
const (
	CategoryFrontend   Category = "frontend"
	CategoryBackend    Category = "backend"
	CategoryBlockchain Category = "blockchain"
	CategoryDesign     Category = "design"
	CategoryAI         Category = "ai"
	CategoryMobile     Category = "mobile"
)

// categories fixes the vector dimension order. Vector always has
// len(categories) entries.
var categories = []Category{
	CategoryFrontend,
	CategoryBackend,
	CategoryBlockchain,
	CategoryDesign,
	CategoryAI,
	CategoryMobile,
}

// categoryTags maps each category to its known tag list. Tags are
// lowercase; matching is case-insensitive. Unknown tags contribute to no
// category.
var categoryTags = map[Category][]string{
	CategoryFrontend:   {"react", "nextjs", "vue", "angular", "typescript", "css", "tailwind"},
	CategoryBackend:    {"nodejs", "python", "go", "rust", "express", "fastapi"},
	CategoryBlockchain: {"solidity", "hardhat", "foundry", "web3js", "ethersjs", "wagmi"},
	CategoryDesign:     {"figma", "photoshop", "illustrator", "ui", "ux"},
	CategoryAI:         {"pytorch", "tensorflow", "langchain", "openai", "ml"},
	CategoryMobile:     {"react-native", "flutter", "swift", "kotlin"},
}

// tagCategory is the inverted lookup built once at init.
var tagCategory = func() map[string]int {
	m := make(map[string]int)
	for i, c := range categories {
		for _, tag := range categoryTags[c] {
			m[tag] = i
		}
	}
	return m
}()

// Dimensions returns the fixed skill vector length.
func Dimensions() int { return len(categories) }

// Vector is a fixed-dimension count vector over skill categories.
// Derived once per profile and never mutated afterwards.
type Vector []float64

// IsZero reports whether no tag matched any category.
func (v Vector) IsZero() bool {
	for _, x := range v {
		if x != 0 {
			return false
		}
	}
	return true
}

// SkillVector counts, per category, how many of the given tags belong to
// that category's known tag list. Unknown tags are silently ignored.
func SkillVector(skills []string) Vector {
	v := make(Vector, len(categories))
	for _, s := range skills {
		if i, ok := tagCategory[strings.ToLower(strings.TrimSpace(s))]; ok {
			v[i]++
		}
	}
	return v
}

var (
	urlPattern     = regexp.MustCompile(`http\S+`)
	nonWordPattern = regexp.MustCompile(`[^a-zA-Z0-9\s]`)
)

// Normalize prepares free text for lexical comparison: URLs stripped,
// punctuation stripped, lowercased, whitespace collapsed to single
// spaces. Total; never fails.
func Normalize(text string) string {
	text = urlPattern.ReplaceAllString(text, "")
	text = nonWordPattern.ReplaceAllString(text, "")
	text = strings.ToLower(text)
	return strings.Join(strings.Fields(text), " ")
}

// QueryTokens returns the first n normalized tokens joined by spaces,
// used to seed repository search queries.
func QueryTokens(text string, n int) string {
	fields := strings.Fields(Normalize(text))
	if len(fields) > n {
		fields = fields[:n]
	}
	return strings.Join(fields, " ")
}
