package pubchem

import (
	"context"
	"errors"

	"github.com/ppiankov/compoundscan/internal/model"
)

// Assay summary columns, matched by name
const (
	assayColAID             = "AID"
	assayColSID             = "SID"
	assayColActivityOutcome = "Activity Outcome"
	assayColAssayType       = "Assay Type"
	assayColActivityValue   = "Activity Value [uM]"
	assayColAssayName       = "Assay Name"
)

var requiredAssayColumns = []string{
	assayColAID,
	assayColSID,
	assayColActivityOutcome,
	assayColAssayType,
	assayColActivityValue,
	assayColAssayName,
}

// AssaySummaries projects the assay summary table onto the six columns of
// model.AssaySummary. Columns may come in any order; a missing one is a Shape
// error naming it. Row order is preserved.
func (c *Client) AssaySummaries(ctx context.Context, cid int) ([]model.AssaySummary, error) {
	var resp assaySummaryResponse
	if err := c.getJSON(ctx, EndpointAssaySummary, c.assaySummaryURL(cid), &resp); err != nil {
		return nil, err
	}
	if resp.Table == nil {
		return nil, shapeError(EndpointAssaySummary, "Table", errors.New("missing table"))
	}
	if resp.Table.Columns == nil {
		return nil, shapeError(EndpointAssaySummary, "Table.Columns", errors.New("missing columns"))
	}

	index, err := columnIndex(resp.Table.Columns.Column)
	if err != nil {
		return nil, err
	}

	out := make([]model.AssaySummary, 0, len(resp.Table.Row))
	for _, row := range resp.Table.Row {
		cell := func(col string) string {
			i := index[col]
			if i >= len(row.Cell) {
				return ""
			}
			return row.Cell[i].String()
		}
		out = append(out, model.AssaySummary{
			AID:             cell(assayColAID),
			SID:             cell(assayColSID),
			ActivityOutcome: cell(assayColActivityOutcome),
			AssayType:       cell(assayColAssayType),
			ActivityValue:   cell(assayColActivityValue),
			AssayName:       cell(assayColAssayName),
		})
	}
	return out, nil
}

// columnIndex resolves each required column to its position once
func columnIndex(columns []string) (map[string]int, error) {
	index := make(map[string]int, len(requiredAssayColumns))
	for _, want := range requiredAssayColumns {
		found := false
		for i, col := range columns {
			if col == want {
				index[want] = i
				found = true
				break
			}
		}
		if !found {
			return nil, shapeError(EndpointAssaySummary, want, errors.New("required column missing"))
		}
	}
	return index, nil
}
