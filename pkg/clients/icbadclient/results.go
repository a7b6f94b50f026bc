package icbadclient

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Disciplines as titled on a team page
var Disciplines = []string{"SH", "SD", "DH", "DD", "DX"}

// DisciplineResult is a team's record in one discipline.
// Played is false when the team page has no section for the discipline.
type DisciplineResult struct {
	Discipline string
	Played     bool
	Wins       int
	Losses     int
}

// GetTeamResults fetches the record of a team in every discipline
func (c *Client) GetTeamResults(ctx context.Context, teamID string) ([]DisciplineResult, error) {
	doc, err := c.fetch(ctx, "/equipe/"+teamID)
	if err != nil {
		return nil, err
	}

	results, err := parseTeamResults(doc)
	if err != nil {
		return nil, fmt.Errorf("team %s: %w", teamID, err)
	}
	return results, nil
}

func parseTeamResults(doc *goquery.Document) ([]DisciplineResult, error) {
	results := make([]DisciplineResult, 0, len(Disciplines))
	for _, discipline := range Disciplines {
		header := doc.Find("h4").FilterFunction(func(_ int, h *goquery.Selection) bool {
			return strings.TrimSpace(h.Text()) == discipline
		}).First()

		// an all-women team has no men's doubles section, for instance
		if header.Length() == 0 {
			results = append(results, DisciplineResult{Discipline: discipline})
			continue
		}

		result := DisciplineResult{Discipline: discipline, Played: true}
		var foundWins, foundLosses bool
		var err error
		header.NextUntil("h4").EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := strings.TrimSpace(s.Text())
			if strings.Contains(text, "victoire") {
				if result.Wins, err = leadingCount(text); err != nil {
					return false
				}
				foundWins = true
			}
			if strings.Contains(text, "défaite") {
				if result.Losses, err = leadingCount(text); err != nil {
					return false
				}
				foundLosses = true
			}
			return true
		})
		if err != nil {
			return nil, fmt.Errorf("discipline %s: %w", discipline, err)
		}
		if !foundWins || !foundLosses {
			return nil, fmt.Errorf("discipline %s: wins or losses not found", discipline)
		}

		results = append(results, result)
	}
	return results, nil
}

// leadingCount reads the number starting texts like "3 victoires"
func leadingCount(text string) (int, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return 0, fmt.Errorf("empty count")
	}
	n, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, fmt.Errorf("invalid count in %q: %w", text, err)
	}
	return n, nil
}
