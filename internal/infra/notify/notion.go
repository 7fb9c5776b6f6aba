package notify

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jomei/notionapi"
)

// NotionClient appends reservations as pages of one database. The database
// needs Name (title), Student (rich text), Date (date), Status (select) and
// Meet (url) properties.
type NotionClient struct {
	client     *notionapi.Client
	databaseID notionapi.DatabaseID
}

var _ NotionWriter = (*NotionClient)(nil)

func NewNotionClient(token, databaseID string, httpClient *http.Client) *NotionClient {
	var opts []notionapi.ClientOption
	if httpClient != nil {
		opts = append(opts, notionapi.WithHTTPClient(httpClient))
	}
	return &NotionClient{
		client:     notionapi.NewClient(notionapi.Token(token), opts...),
		databaseID: notionapi.DatabaseID(databaseID),
	}
}

func plainText(s string) []notionapi.RichText {
	return []notionapi.RichText{{Text: &notionapi.Text{Content: s}}}
}

func (n *NotionClient) AddReservation(ctx context.Context, p ReservationPage) error {
	start, end := notionapi.Date(p.Start), notionapi.Date(p.End)

	props := notionapi.Properties{
		"Name":    notionapi.TitleProperty{Title: plainText(p.Title)},
		"Student": notionapi.RichTextProperty{RichText: plainText(p.Student)},
		"Date":    notionapi.DateProperty{Date: &notionapi.DateObject{Start: &start, End: &end}},
		"Status":  notionapi.SelectProperty{Select: notionapi.Option{Name: p.Status}},
	}
	if p.Meet != "" {
		props["Meet"] = notionapi.URLProperty{URL: p.Meet}
	}

	_, err := n.client.Page.Create(ctx, &notionapi.PageCreateRequest{
		Parent: notionapi.Parent{
			Type:       notionapi.ParentTypeDatabaseID,
			DatabaseID: n.databaseID,
		},
		Properties: props,
	})
	if err != nil {
		return fmt.Errorf("notion: %w", err)
	}
	return nil
}
