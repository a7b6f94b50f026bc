package config

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/asbg75/interclubs/pkg/core/allocator"
	"github.com/asbg75/interclubs/pkg/core/ranking"
)

// CriteriaSection is the criteria weight tree, in file order.
//
//	criteria:
//	  physique:
//	    weight: 0.6
//	    subcriteria:
//	      endurance: 0.5
//	      vitesse: 0.5
//	  assiduite:
//	    weight: 0.4
//	    subcriteria: null
type CriteriaSection []ranking.Criterion

// TeamsSection is the team composition, in file order.
//
//	teams:
//	  mixte:
//	    number: 2
//	    women: 2
//	    men: 2
type TeamsSection []allocator.TeamComposition

type criterionEntry struct {
	Weight      *float64  `yaml:"weight"`
	Subcriteria yaml.Node `yaml:"subcriteria"`
}

type teamEntry struct {
	Number *int `yaml:"number"`
	Women  int  `yaml:"women"`
	Men    int  `yaml:"men"`
}

// UnmarshalYAML decodes the criteria mapping keeping the key order
func (s *CriteriaSection) UnmarshalYAML(value *yaml.Node) error {
	pairs, err := mappingPairs(value, "criteria")
	if err != nil {
		return err
	}

	criteria := make(CriteriaSection, 0, len(pairs))
	for _, pair := range pairs {
		var entry criterionEntry
		if err := pair.value.Decode(&entry); err != nil {
			return fmt.Errorf("criterion %q: %w", pair.key, err)
		}
		if entry.Weight == nil {
			return fmt.Errorf("criterion %q has no weight", pair.key)
		}

		criterion := ranking.Criterion{Name: pair.key, Weight: *entry.Weight}
		if !isNull(&entry.Subcriteria) {
			subPairs, err := mappingPairs(&entry.Subcriteria, "criterion "+pair.key+" subcriteria")
			if err != nil {
				return err
			}
			criterion.Subcriteria = make([]ranking.Subcriterion, 0, len(subPairs))
			for _, sub := range subPairs {
				var weight float64
				if err := sub.value.Decode(&weight); err != nil {
					return fmt.Errorf("subcriterion %s.%s: %w", pair.key, sub.key, err)
				}
				criterion.Subcriteria = append(criterion.Subcriteria, ranking.Subcriterion{Name: sub.key, Weight: weight})
			}
		}
		criteria = append(criteria, criterion)
	}

	*s = criteria
	return nil
}

// UnmarshalYAML decodes the teams mapping keeping the key order
func (s *TeamsSection) UnmarshalYAML(value *yaml.Node) error {
	pairs, err := mappingPairs(value, "teams")
	if err != nil {
		return err
	}

	teams := make(TeamsSection, 0, len(pairs))
	for _, pair := range pairs {
		var entry teamEntry
		if err := pair.value.Decode(&entry); err != nil {
			return fmt.Errorf("team %q: %w", pair.key, err)
		}
		if entry.Number == nil {
			return fmt.Errorf("team %q has no number", pair.key)
		}
		teams = append(teams, allocator.TeamComposition{
			Category: pair.key,
			Number:   *entry.Number,
			Women:    entry.Women,
			Men:      entry.Men,
		})
	}

	*s = teams
	return nil
}

type nodePair struct {
	key   string
	value *yaml.Node
}

// mappingPairs returns the key/value pairs of a mapping node in document order
func mappingPairs(node *yaml.Node, what string) ([]nodePair, error) {
	if node.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("line %d: %s must be a mapping", node.Line, what)
	}

	pairs := make([]nodePair, 0, len(node.Content)/2)
	seen := make(map[string]bool, len(node.Content)/2)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key := node.Content[i].Value
		if seen[key] {
			return nil, fmt.Errorf("line %d: duplicate key %q in %s", node.Content[i].Line, key, what)
		}
		seen[key] = true
		pairs = append(pairs, nodePair{key: key, value: node.Content[i+1]})
	}
	return pairs, nil
}

func isNull(node *yaml.Node) bool {
	return node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}
