package geckoboard

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/travigo/trainboard/pkg/util"
)

var ErrPushFailed = errors.New("geckoboard push failed")

// Geckoboard text widget push payload
type PushPayload struct {
	APIKey string   `json:"api_key"`
	Data   PushData `json:"data"`
}

type PushData struct {
	Item []TextItem `json:"item"`
}

type TextItem struct {
	Text string `json:"text"`
}

type Client struct {
	APIKey string

	HTTPClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		APIKey:     apiKey,
		HTTPClient: &http.Client{},
	}
}

// Push sends the HTML to a widget push URL. It is attempted once.
func (c *Client) Push(ctx context.Context, widgetURL string, html string) error {
	payload := PushPayload{
		APIKey: c.APIKey,
		Data: PushData{
			Item: []TextItem{{Text: html}},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding push payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, widgetURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating push request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPushFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		responseBody, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))

		return fmt.Errorf("%w: status %d: %s", ErrPushFailed, resp.StatusCode, util.TrimString(string(responseBody), 512))
	}

	log.Debug().Str("widget", widgetURL).Msg("Widget push accepted")

	return nil
}
