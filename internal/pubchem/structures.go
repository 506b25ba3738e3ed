package pubchem

import (
	"context"

	"github.com/ppiankov/compoundscan/internal/model"
)

// Structures lists protein-bound 3-D structures that contain the compound
func (c *Client) Structures(ctx context.Context, cid int) ([]model.Structure, error) {
	var resp structuresResponse
	if err := c.getJSON(ctx, EndpointStructures, c.structuresURL(cid), &resp); err != nil {
		return nil, err
	}

	entries := resp.entries()
	out := make([]model.Structure, 0, len(entries))
	for _, e := range entries {
		out = append(out, model.Structure{
			PDBID:        e.PDBID,
			MMDBID:       e.MMDBID,
			Description:  e.Description,
			TaxonomyName: e.taxonomyName(),
			URL:          e.URL,
		})
	}
	return out, nil
}
