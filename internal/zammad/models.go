package zammad

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// PlaceholderTitle substitutes a missing or blank ticket title. Tickets are
// never dropped for having no title.
const PlaceholderTitle = "(no title)"

// PlaceholderSender substitutes a missing article sender.
const PlaceholderSender = "Unknown"

// Ticket is the flattened view of one Zammad ticket, reduced to the fields
// the export carries.
type Ticket struct {
	ID           int64
	State        *int64
	Title        string
	ArticleCount int
}

// Article is one message of a ticket's thread, reduced to sender and body.
type Article struct {
	From string
	Body string
}

// rawTicket mirrors the subset of the search payload we read. Everything is
// a pointer because the API routinely omits fields.
type rawTicket struct {
	ID           *int64  `json:"id"`
	StateID      *int64  `json:"state_id"`
	Title        *string `json:"title"`
	ArticleCount *int    `json:"article_count"`
}

// rawArticle mirrors the subset of the article payload we read.
type rawArticle struct {
	From *string `json:"from"`
	Body *string `json:"body"`
}

// pageShape identifies which of the three known search payload layouts a
// page arrived in.
type pageShape int

const (
	// shapeRecords is {"records": [...], "total_count": n}.
	shapeRecords pageShape = iota
	// shapeAssets is {"tickets": [id...], "tickets_count": n,
	// "assets": {"Ticket": {"<id>": {...}}}}.
	shapeAssets
	// shapeList is a bare JSON array of ticket objects; continuation is
	// inferred from page fullness because no total is reported.
	shapeList
)

func (s pageShape) String() string {
	switch s {
	case shapeRecords:
		return "records"
	case shapeAssets:
		return "assets"
	case shapeList:
		return "list"
	}
	return "unknown"
}

// ticketPage is one decoded search page, normalized across shapes.
type ticketPage struct {
	shape   pageShape
	tickets []rawTicket
	// total is the server-reported result count. Only shapes with an
	// explicit counter set hasTotal.
	total    int
	hasTotal bool
}

// searchEnvelope covers shapes a and b in a single decode; json.RawMessage
// keeps field presence observable.
type searchEnvelope struct {
	Records      json.RawMessage `json:"records"`
	TotalCount   *int            `json:"total_count"`
	Tickets      []int64         `json:"tickets"`
	TicketsCount *int            `json:"tickets_count"`
	Assets       struct {
		Ticket map[string]rawTicket `json:"Ticket"`
	} `json:"assets"`
}

// parseTicketPage resolves the payload shape once and extracts the raw
// ticket list. Shape detection is structural: a bare array is shape c, a
// "records" key is shape a, a "tickets" id list or counter is shape b. An
// object payload matching none of the three is a decode failure. An empty
// shape-b day arrives as {"tickets":[],"tickets_count":0,"assets":{}} with
// no Ticket map at all, so the id list, not the assets, decides the shape.
func parseTicketPage(body []byte) (*ticketPage, error) {
	trimmed := bytes.TrimLeft(body, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []rawTicket
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return nil, fmt.Errorf("decode ticket list: %w", err)
		}
		return &ticketPage{shape: shapeList, tickets: list}, nil
	}

	var env searchEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if env.Records != nil {
		var records []rawTicket
		if err := json.Unmarshal(env.Records, &records); err != nil {
			return nil, fmt.Errorf("decode records: %w", err)
		}
		page := &ticketPage{shape: shapeRecords, tickets: records}
		if env.TotalCount != nil {
			page.total = *env.TotalCount
			page.hasTotal = true
		}
		return page, nil
	}

	if env.Tickets != nil || env.TicketsCount != nil || env.Assets.Ticket != nil {
		page := &ticketPage{shape: shapeAssets}
		// Preserve the server's result order via the id list; assets is
		// an unordered map.
		seen := make(map[int64]bool, len(env.Tickets))
		for _, id := range env.Tickets {
			if t, ok := env.Assets.Ticket[fmt.Sprintf("%d", id)]; ok {
				page.tickets = append(page.tickets, t)
				seen[id] = true
			}
		}
		for _, t := range env.Assets.Ticket {
			if t.ID != nil && seen[*t.ID] {
				continue
			}
			page.tickets = append(page.tickets, t)
		}
		if env.TicketsCount != nil {
			page.total = *env.TicketsCount
			page.hasTotal = true
		}
		return page, nil
	}

	return nil, fmt.Errorf("unrecognized search response shape (keys: records/tickets/assets missing)")
}
