package collection

import "github.com/slumberhq/slumber/pkg/template"

// Store is an in-memory collection of recipes, profiles, and chains.
// It implements template.Collection directly; recipe lookups for the
// request builder go through GetRecipe instead, since the core
// template package has no need to see a recipe's full shape.
type Store struct {
	Recipes  map[string]*Recipe
	Profiles map[string]*template.Profile
	Chains   map[string]*template.Chain
}

// NewStore returns an empty Store ready for its maps to be populated.
func NewStore() *Store {
	return &Store{
		Recipes:  map[string]*Recipe{},
		Profiles: map[string]*template.Profile{},
		Chains:   map[string]*template.Chain{},
	}
}

func (s *Store) Profile(id string) (*template.Profile, bool) {
	p, ok := s.Profiles[id]
	return p, ok
}

func (s *Store) Chain(id string) (*template.Chain, bool) {
	c, ok := s.Chains[id]
	return c, ok
}

func (s *Store) RecipeExists(id string) bool {
	_, ok := s.Recipes[id]
	return ok
}

// GetRecipe returns the full recipe definition, used by the request
// builder when it needs to render a recipe's templated fields.
func (s *Store) GetRecipe(id string) (*Recipe, bool) {
	r, ok := s.Recipes[id]
	return r, ok
}
