package icbadclient

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Team is one of the club's teams as listed on the instance page
type Team struct {
	ID          string
	Competition string
	Division    string
	Group       string
	Year        string
}

// GetTeams lists the club's teams for the current season
func (c *Client) GetTeams(ctx context.Context) ([]Team, error) {
	doc, err := c.fetch(ctx, "/instance/"+c.instance)
	if err != nil {
		return nil, err
	}
	return parseTeams(doc, c.baseURL, c.clubName)
}

func parseTeams(doc *goquery.Document, baseURL, clubName string) ([]Team, error) {
	// the first link to the site is the logo, the second one carries the season
	seasonLinks := doc.Find(fmt.Sprintf(`a[href=%q]`, baseURL))
	if seasonLinks.Length() < 2 {
		return nil, fmt.Errorf("season not found on instance page")
	}
	year := strings.TrimSpace(seasonLinks.Eq(1).Text())

	var teams []Team
	var parseErr error
	doc.Find("h2").EachWithBreak(func(_ int, header *goquery.Selection) bool {
		parts := strings.Split(strings.TrimSpace(header.Text()), " - ")
		if len(parts) != 3 {
			parseErr = fmt.Errorf("unexpected pool header %q", header.Text())
			return false
		}

		cells := header.NextUntil("h2").Find("td.nom-equipe").FilterFunction(func(_ int, cell *goquery.Selection) bool {
			return strings.Contains(cell.Text(), clubName)
		})
		if cells.Length() == 0 {
			return true
		}

		href, ok := cells.First().Find("a").Attr("href")
		if !ok {
			parseErr = fmt.Errorf("team cell in %q has no link", header.Text())
			return false
		}

		teams = append(teams, Team{
			ID:          path.Base(strings.TrimRight(href, "/")),
			Competition: strings.TrimSpace(parts[0]),
			Division:    strings.TrimSpace(parts[1]),
			Group:       strings.TrimSpace(parts[2]),
			Year:        year,
		})
		return true
	})
	if parseErr != nil {
		return nil, parseErr
	}

	return teams, nil
}
