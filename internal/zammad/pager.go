package zammad

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

const (
	searchPath   = "/api/v1/tickets/search"
	articlesPath = "/api/v1/ticket_articles/by_ticket/"
)

// searchPage fetches one page of the day-scoped search and resolves its
// shape. The query is passed in so the fallback path can vary it.
func (c *Client) searchPage(ctx context.Context, query string, page int) (*ticketPage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("expand", "false")
	params.Set("limit", strconv.Itoa(pageSize))
	params.Set("page", strconv.Itoa(page))
	params.Set("with_total_count", "true")

	body, err := c.get(ctx, searchPath, params)
	if err != nil {
		return nil, err
	}
	parsed, err := parseTicketPage(body)
	if err != nil {
		return nil, fmt.Errorf("page %d of %q: %w", page, query, err)
	}
	return parsed, nil
}

// FetchAllTicketsForDay pages through the search results for one calendar
// day (YYYY-MM-DD) and returns the retained tickets in server order.
//
// Termination: an empty page, cumulative fetched count reaching the
// server-reported total, or a short page when no total is reported. If the
// very first page comes back empty, one degraded fallback query is issued
// before concluding the day has no tickets; strict created_at matching is
// known to miss records sitting on day boundaries.
func (c *Client) FetchAllTicketsForDay(ctx context.Context, day string) ([]Ticket, error) {
	query := "created_at:" + day
	tickets, fetched, err := c.fetchAllPages(ctx, day, query)
	if err != nil {
		return nil, err
	}

	// Fallback only when the server itself returned nothing, not when every
	// returned record was filtered out.
	if fetched == 0 && c.dayFallback {
		fallback := fmt.Sprintf("created_at:[%s TO %s]", day, day)
		c.logger.Printf("no tickets for %s with day-exact query, retrying with fallback %q", day, fallback)
		tickets, _, err = c.fetchAllPages(ctx, day, fallback)
		if err != nil {
			return nil, err
		}
	}

	if len(tickets) == 0 {
		c.logger.Printf("warning: no tickets retained for %s; empty day", day)
	}
	ticketsFetched.Add(float64(len(tickets)))
	return tickets, nil
}

// fetchAllPages drives pagination for one query string. It returns the
// retained tickets and the raw fetched count so the caller can tell an
// empty server response from an all-filtered one.
func (c *Client) fetchAllPages(ctx context.Context, day, query string) ([]Ticket, int, error) {
	var tickets []Ticket
	fetched := 0

	for page := 1; ; page++ {
		c.logger.Printf("fetching page %d for %s", page, day)
		parsed, err := c.searchPage(ctx, query, page)
		if err != nil {
			return nil, fetched, fmt.Errorf("fetch tickets for %s: %w", day, err)
		}

		if len(parsed.tickets) == 0 {
			break
		}
		fetched += len(parsed.tickets)

		for _, raw := range parsed.tickets {
			t, keep := c.filterTicket(raw)
			if keep {
				tickets = append(tickets, t)
			}
		}
		c.logger.Printf("fetched %d/%s tickets for %s (page %d, shape %s)",
			fetched, totalLabel(parsed), day, page, parsed.shape)

		if parsed.hasTotal && fetched >= parsed.total {
			break
		}
		// Without a reported total a short page is the last one.
		if !parsed.hasTotal && len(parsed.tickets) < pageSize {
			break
		}
	}
	return tickets, fetched, nil
}

// filterTicket applies the per-record rules: drop records with no id, drop
// the configured excluded title (exact, case-sensitive), normalize blank
// titles to the placeholder. The exclusion runs here, once, before any
// enrichment, regardless of payload shape.
func (c *Client) filterTicket(raw rawTicket) (Ticket, bool) {
	if raw.ID == nil {
		c.logger.Printf("warning: skipping ticket without id")
		return Ticket{}, false
	}
	title := ""
	if raw.Title != nil {
		title = *raw.Title
	}
	if c.excludeTitle != "" && title == c.excludeTitle {
		c.logger.Printf("warning: skipping ticket %d due to ignored title: %s", *raw.ID, title)
		return Ticket{}, false
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = PlaceholderTitle
	}

	t := Ticket{ID: *raw.ID, State: raw.StateID, Title: title}
	if raw.ArticleCount != nil {
		t.ArticleCount = *raw.ArticleCount
	}
	return t, true
}

func totalLabel(p *ticketPage) string {
	if p.hasTotal {
		return strconv.Itoa(p.total)
	}
	return "?"
}
