package pubchem

import (
	"context"

	"github.com/ppiankov/compoundscan/internal/model"
)

// Vendors lists the commercial sources under "Chemical Vendors".
// A payload without the category path yields no vendors and no error.
func (c *Client) Vendors(ctx context.Context, cid int) ([]model.Vendor, error) {
	var resp vendorsResponse
	if err := c.getJSON(ctx, EndpointVendors, c.vendorsURL(cid), &resp); err != nil {
		return nil, err
	}

	sources := resp.sources()
	out := make([]model.Vendor, 0, len(sources))
	for _, s := range sources {
		out = append(out, model.Vendor{
			CID:             cid,
			SID:             s.SID.String(),
			SourceName:      s.SourceName,
			SourceURL:       s.SourceURL,
			RegistryID:      s.RegistryID.String(),
			SourceRecordURL: s.SourceRecordURL,
		})
	}
	return out, nil
}
