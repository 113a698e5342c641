package sharepoint

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/cadastral-labs/pointhist-cli/internal/core/domain"
)

// List item field internal names. SharePoint encodes spaces in display
// names as _x0020_.
const (
	fieldDateAdded   = "Date_x0020_Added"
	fieldDescription = "Mon_x0020_Description"
)

// odataDateLayout formats a time for an OData datetime'...' literal.
const odataDateLayout = "2006-01-02T15:04:05Z"

// listItem is one row of the library's list item collection. Fields the
// query did not $select are absent and decode to their zero values.
type listItem struct {
	ID          int    `json:"ID"`
	Title       string `json:"Title"`
	FileLeafRef string `json:"FileLeafRef"`
	DateAdded   string `json:"Date_x0020_Added"`
	Description string `json:"Mon_x0020_Description"`
}

type listItemsResponse struct {
	D struct {
		Results []listItem `json:"results"`
	} `json:"d"`
}

// itemsURL returns the list item collection endpoint for the library.
func (c *Client) itemsURL() string {
	return fmt.Sprintf("%s/lists/getbytitle('%s')/items", c.webURL(), c.library)
}

// MonumentType looks up the monument description recorded for a point.
// Returns domain.ErrNotFound when the point has no list entry or the
// entry carries no description.
func (c *Client) MonumentType(ctx context.Context, pointNumber string) (string, error) {
	query := fmt.Sprintf("?$filter=%s&$select=%s",
		url.QueryEscape(fmt.Sprintf("Title eq '%s'", pointNumber)), fieldDescription)

	data, err := c.do(ctx, http.MethodGet, c.itemsURL()+query, nil, nil)
	if err != nil {
		return "", fmt.Errorf("monument type query: %w", err)
	}

	var payload listItemsResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return "", fmt.Errorf("decode monument type: %w", err)
	}

	if len(payload.D.Results) == 0 || payload.D.Results[0].Description == "" {
		return "", fmt.Errorf("point %s: %w", pointNumber, domain.ErrNotFound)
	}
	return payload.D.Results[0].Description, nil
}

// PointsAddedBetween returns the points whose date-added falls within
// the range. A nil end leaves the range open above.
func (c *Client) PointsAddedBetween(
	ctx context.Context, start time.Time, end *time.Time,
) ([]domain.PointRecord, error) {
	query := fmt.Sprintf("?$select=ID,%s,FileLeafRef,Title&$filter=%s&$top=%d",
		fieldDateAdded, url.QueryEscape(dateAddedFilter(start, end)), maxListItems)

	data, err := c.do(ctx, http.MethodGet, c.itemsURL()+query, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("date range query: %w", err)
	}

	var payload listItemsResponse
	if err := json.Unmarshal(data, &payload); err != nil {
		return nil, fmt.Errorf("decode date range items: %w", err)
	}

	records := make([]domain.PointRecord, 0, len(payload.D.Results))
	for _, item := range payload.D.Results {
		leaf := item.FileLeafRef
		if leaf == "" {
			leaf = item.Title
		}
		records = append(records, domain.PointRecord{
			ItemID:      item.ID,
			PointNumber: domain.PointNumberFromLeaf(leaf),
			DateAdded:   item.DateAdded,
		})
	}
	return records, nil
}

// dateAddedFilter builds the OData filter clause for a date-added range.
// An open range produces a single lower-bound clause.
func dateAddedFilter(start time.Time, end *time.Time) string {
	filter := fmt.Sprintf("%s ge datetime'%s'", fieldDateAdded, start.UTC().Format(odataDateLayout))
	if end != nil {
		filter += fmt.Sprintf(" and %s le datetime'%s'", fieldDateAdded, end.UTC().Format(odataDateLayout))
	}
	return filter
}
