package pubchem

import (
	"context"

	"github.com/ppiankov/compoundscan/internal/model"
)

const patentsHeading = "Patents"

// Patents returns the patent titles and links from the first section headed
// "Patents". Entries missing a title or a link are skipped; a payload with no
// such section yields no patents and no error.
func (c *Client) Patents(ctx context.Context, cid int) ([]model.Patent, error) {
	var resp patentsResponse
	if err := c.getJSON(ctx, EndpointPatents, c.patentsURL(cid), &resp); err != nil {
		return nil, err
	}

	out := []model.Patent{}
	for _, section := range resp.sections() {
		if section.TOCHeading != patentsHeading {
			continue
		}
		for _, info := range section.Information {
			for _, item := range info.strings() {
				link := item.firstURL()
				if item.String == "" || link == "" {
					continue
				}
				out = append(out, model.Patent{Patent: item.String, URL: link})
			}
		}
		break
	}
	return out, nil
}
