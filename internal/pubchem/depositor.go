package pubchem

import (
	"context"

	"github.com/ppiankov/compoundscan/internal/textutil"
)

// DepositorPatents lists depositor-supplied patent identifiers, one per line of
// the plain-text response
func (c *Client) DepositorPatents(ctx context.Context, cid int) ([]string, error) {
	body, err := c.fetcher.Get(ctx, EndpointDepositorPatents, c.depositorPatentsURL(cid))
	if err != nil {
		return nil, err
	}
	return textutil.SplitLines(string(body)), nil
}
