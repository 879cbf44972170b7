package zammad

import (
	"context"
	"encoding/json"
	"strconv"
)

// FetchArticles retrieves the message thread for one ticket. It never fails
// the caller: any network or decode error is logged and yields an empty
// slice so the batch can continue with the remaining tickets. Articles with
// no body carry nothing exportable and are dropped; a missing sender
// becomes the placeholder.
func (c *Client) FetchArticles(ctx context.Context, ticketID int64) []Article {
	path := articlesPath + strconv.FormatInt(ticketID, 10)

	body, err := c.get(ctx, path, nil)
	if err != nil {
		c.logger.Printf("warning: fetching articles for ticket %d failed, continuing without: %v", ticketID, err)
		return nil
	}

	var raw []rawArticle
	if err := json.Unmarshal(body, &raw); err != nil {
		c.logger.Printf("warning: decoding articles for ticket %d failed, continuing without: %v", ticketID, err)
		return nil
	}

	var articles []Article
	for _, a := range raw {
		if a.Body == nil || *a.Body == "" {
			continue
		}
		from := PlaceholderSender
		if a.From != nil && *a.From != "" {
			from = *a.From
		}
		articles = append(articles, Article{From: from, Body: *a.Body})
	}

	c.logger.Printf("fetched %d articles for ticket %d", len(articles), ticketID)
	articlesFetched.Add(float64(len(articles)))
	return articles
}
