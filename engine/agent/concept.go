package agent

import (
	"fmt"
	"sort"
	"strings"
)

// Concept is a named fact about the hand with a confidence in [0,1]. A
// concept with dependencies derives its value from the weighted sum of the
// concepts it names.
type Concept struct {
	Name         string
	Properties   map[string]string
	Dependencies []string
	Weights      []float64
	Value        float64
}

// NewConcept builds a concept. Missing weights default to 1 per dependency;
// a weight list of a different length than the dependencies is an error.
func NewConcept(name string, props map[string]string, deps []string, weights []float64, value float64) (*Concept, error) {
	if weights == nil {
		weights = make([]float64, len(deps))
		for i := range weights {
			weights[i] = 1
		}
	}
	if len(weights) != len(deps) {
		return nil, fmt.Errorf("concept %s: %d weights for %d dependencies", name, len(weights), len(deps))
	}
	if props == nil {
		props = map[string]string{}
	}
	return &Concept{
		Name:         name,
		Properties:   props,
		Dependencies: deps,
		Weights:      weights,
		Value:        clamp01(value),
	}, nil
}

// fact builds a dependency-free concept.
func fact(name string, props map[string]string, value float64) *Concept {
	c, _ := NewConcept(name, props, nil, nil, value)
	return c
}

// Evaluate returns the concept's confidence. Lazy evaluation, or a concept
// without dependencies, returns the stored value. Otherwise the dependencies
// are evaluated through store; unknown names count as 0 and a dependency
// cycle is cut at the repeated concept.
func (c *Concept) Evaluate(store *ConceptStore, lazy bool) float64 {
	return c.evaluate(store, lazy, map[string]bool{})
}

func (c *Concept) evaluate(store *ConceptStore, lazy bool, visiting map[string]bool) float64 {
	if lazy || len(c.Dependencies) == 0 || store == nil {
		return c.Value
	}
	visiting[c.Name] = true
	defer delete(visiting, c.Name)

	sum := 0.0
	for i, name := range c.Dependencies {
		dep := store.Get(name)
		if dep == nil || visiting[name] {
			continue
		}
		sum += c.Weights[i] * dep.evaluate(store, false, visiting)
	}
	return clamp01(sum)
}

func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}

// ConceptStore indexes concepts by unique name and by property key/value.
type ConceptStore struct {
	byName map[string]*Concept
	byProp map[string]map[string]map[string]*Concept // key -> value -> name
}

// NewConceptStore returns an empty store.
func NewConceptStore() *ConceptStore {
	return &ConceptStore{
		byName: make(map[string]*Concept),
		byProp: make(map[string]map[string]map[string]*Concept),
	}
}

// Add inserts c, replacing any concept with the same name.
func (s *ConceptStore) Add(c *Concept) {
	s.Remove(c.Name)
	s.byName[c.Name] = c
	for k, v := range c.Properties {
		vals, ok := s.byProp[k]
		if !ok {
			vals = make(map[string]map[string]*Concept)
			s.byProp[k] = vals
		}
		names, ok := vals[v]
		if !ok {
			names = make(map[string]*Concept)
			vals[v] = names
		}
		names[c.Name] = c
	}
}

// Remove deletes the named concept and reports whether it existed.
func (s *ConceptStore) Remove(name string) bool {
	c, ok := s.byName[name]
	if !ok {
		return false
	}
	delete(s.byName, name)
	for k, v := range c.Properties {
		names := s.byProp[k][v]
		delete(names, name)
		if len(names) == 0 {
			delete(s.byProp[k], v)
		}
		if len(s.byProp[k]) == 0 {
			delete(s.byProp, k)
		}
	}
	return true
}

// Get returns the named concept or nil.
func (s *ConceptStore) Get(name string) *Concept { return s.byName[name] }

// Value evaluates the named concept, 0 when absent.
func (s *ConceptStore) Value(name string) float64 {
	if c := s.byName[name]; c != nil {
		return c.Evaluate(s, false)
	}
	return 0
}

// AllByProperties returns every concept carrying all the given key/value
// pairs, sorted by name. An empty query matches everything.
func (s *ConceptStore) AllByProperties(props map[string]string) []*Concept {
	var out []*Concept
	for name, c := range s.byName {
		match := true
		for k, v := range props {
			if _, ok := s.byProp[k][v][name]; !ok {
				match = false
				break
			}
		}
		if match {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// Len returns the number of stored concepts.
func (s *ConceptStore) Len() int { return len(s.byName) }

// Names returns the stored names in sorted order.
func (s *ConceptStore) Names() []string {
	out := make([]string, 0, len(s.byName))
	for name := range s.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Clone returns a store holding copies of every concept.
func (s *ConceptStore) Clone() *ConceptStore {
	out := NewConceptStore()
	for _, c := range s.byName {
		cp := *c
		cp.Properties = make(map[string]string, len(c.Properties))
		for k, v := range c.Properties {
			cp.Properties[k] = v
		}
		cp.Dependencies = append([]string(nil), c.Dependencies...)
		cp.Weights = append([]float64(nil), c.Weights...)
		out.Add(&cp)
	}
	return out
}

func (s *ConceptStore) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, name := range s.Names() {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(&b, "%s=%.2f", name, s.Value(name))
	}
	b.WriteByte(']')
	return b.String()
}
