package pubchem

import (
	"context"

	"github.com/ppiankov/compoundscan/internal/model"
)

// Literature returns the optional "all literature" link followed by one link
// per subheading
func (c *Client) Literature(ctx context.Context, cid int) ([]model.LiteratureLink, error) {
	var resp literatureResponse
	if err := c.getJSON(ctx, EndpointLiterature, c.literatureURL(cid), &resp); err != nil {
		return nil, err
	}

	out := []model.LiteratureLink{}
	lit := resp.Literature
	if lit == nil {
		return out, nil
	}
	if lit.AllURL != "" {
		out = append(out, model.LiteratureLink{AllURL: lit.AllURL})
	}
	for _, sub := range lit.Subheadings {
		out = append(out, model.LiteratureLink{
			Heading: sub.Subheading,
			URL:     sub.SubheadingURL,
		})
	}
	return out, nil
}
