// Package pubchem talks to the PubChem PUG REST and PUG View services.
// The primary lookup resolves a name to a compound; each extractor fetches one
// data category for a CID and returns it as typed records or a *FetchError.
package pubchem

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ppiankov/compoundscan/internal/logging"
	"github.com/ppiankov/compoundscan/internal/model"
)

// Endpoint names used in errors and diagnostics
const (
	EndpointCompound         = "compound"
	EndpointSynonyms         = "synonyms"
	EndpointVendors          = "vendors"
	EndpointStructures       = "structures"
	EndpointAssaySummary     = "assaysummary"
	EndpointPatents          = "patents"
	EndpointDepositorPatents = "depositor_patents"
	EndpointLiterature       = "literature"
)

// Client issues the PubChem queries for one configuration
type Client struct {
	fetcher *Fetcher
	baseURL string
	logger  *logging.Logger
}

// NewClient creates a client rooted at baseURL (DefaultBaseURL when empty)
func NewClient(baseURL string, fetcher *Fetcher, logger *logging.Logger) *Client {
	if baseURL == "" {
		baseURL = model.DefaultBaseURL
	}
	if logger == nil {
		logger = logging.Noop()
	}
	return &Client{
		fetcher: fetcher,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

func (c *Client) compoundURL(name string) string {
	return fmt.Sprintf("%s/pug/compound/name/%s/JSON", c.baseURL, url.PathEscape(name))
}

func (c *Client) synonymsURL(cid int) string {
	return fmt.Sprintf("%s/pug/compound/cid/%d/synonyms/JSON", c.baseURL, cid)
}

func (c *Client) vendorsURL(cid int) string {
	q := url.Values{}
	q.Set("heading", "Chemical Vendors")
	q.Set("response_type", "display")
	return fmt.Sprintf("%s/pug_view/categories/compound/%d/JSON?%s", c.baseURL, cid, q.Encode())
}

func (c *Client) structuresURL(cid int) string {
	return fmt.Sprintf("%s/pug_view/structure/compound/%d/JSON", c.baseURL, cid)
}

func (c *Client) assaySummaryURL(cid int) string {
	return fmt.Sprintf("%s/pug/compound/cid/%d/assaysummary/JSON", c.baseURL, cid)
}

func (c *Client) patentsURL(cid int) string {
	return fmt.Sprintf("%s/pug_view/data/compound/%d/JSON?heading=Patents", c.baseURL, cid)
}

func (c *Client) depositorPatentsURL(cid int) string {
	return fmt.Sprintf("%s/pug/compound/cid/%d/xrefs/PatentID/TXT", c.baseURL, cid)
}

func (c *Client) literatureURL(cid int) string {
	return fmt.Sprintf("%s/pug_view/literature/compound/%d/JSON", c.baseURL, cid)
}

// getJSON fetches rawURL and decodes it into v.
// An empty or malformed body is a Shape error on "body".
func (c *Client) getJSON(ctx context.Context, endpoint, rawURL string, v any) error {
	body, err := c.fetcher.Get(ctx, endpoint, rawURL)
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return shapeError(endpoint, "body", errors.New("empty response"))
	}
	if err := json.Unmarshal(body, v); err != nil {
		return shapeError(endpoint, "body", err)
	}
	return nil
}
