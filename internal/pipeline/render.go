package pipeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/ppiankov/compoundscan/internal/model"
)

// Renderer prints run results as tables
type Renderer struct {
	out      io.Writer
	maxWidth int
}

// NewRenderer writes to out, trimming values wider than maxWidth (0 = 60)
func NewRenderer(out io.Writer, maxWidth int) *Renderer {
	if maxWidth <= 0 {
		maxWidth = 60
	}
	return &Renderer{out: out, maxWidth: maxWidth}
}

func (r *Renderer) newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(r.out)
	t.SetStyle(table.StyleRounded)
	return t
}

// RenderPreview prints one row per column with the value flattened to one line
func (r *Renderer) RenderPreview(record *model.Record) {
	if record == nil {
		return
	}
	t := r.newTable()
	t.SetTitle(fmt.Sprintf("CID %d: %s", record.CID, record.Name))
	t.AppendHeader(table.Row{"Column", "Value"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 2, WidthMax: r.maxWidth, WidthMaxEnforcer: text.Trim},
	})
	for _, f := range record.Fields {
		t.AppendRow(table.Row{f.Name, oneLine(f.Value)})
	}
	t.Render()
}

// RenderCategories prints how each category fetch went
func (r *Renderer) RenderCategories(res *RunResult) {
	if res == nil || len(res.Categories) == 0 {
		return
	}
	t := r.newTable()
	t.AppendHeader(table.Row{"Category", "Items", "Status", "Took"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 3, WidthMax: r.maxWidth, WidthMaxEnforcer: text.Trim},
	})
	for _, c := range res.Categories {
		status := "ok"
		if c.Err != nil {
			status = "degraded: " + c.Err.Error()
		}
		t.AppendRow(table.Row{c.Column, c.Items, status, c.Took.Round(time.Millisecond)})
	}
	t.AppendFooter(table.Row{"", "", fmt.Sprintf("%d degraded", res.Degraded()), ""})
	t.Render()
}

// BatchRow is one line of a batch summary
type BatchRow struct {
	Name   string
	Result *RunResult
	Err    error
}

// RenderBatch prints one row per compound and returns the number of failures
func (r *Renderer) RenderBatch(rows []BatchRow) int {
	t := r.newTable()
	t.AppendHeader(table.Row{"Name", "CID", "State", "Degraded", "Output"})
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 5, WidthMax: r.maxWidth, WidthMaxEnforcer: text.Trim},
	})

	failed := 0
	for _, row := range rows {
		cid, state, degraded, output := "", string(StateFailed), "", ""
		if row.Result != nil {
			if row.Result.CID > 0 {
				cid = fmt.Sprintf("%d", row.Result.CID)
			}
			state = string(row.Result.State)
			degraded = fmt.Sprintf("%d", row.Result.Degraded())
			output = strings.Join(row.Result.Artifacts, ", ")
		}
		if row.Err != nil {
			failed++
			output = row.Err.Error()
		}
		t.AppendRow(table.Row{row.Name, cid, state, degraded, output})
	}
	t.AppendFooter(table.Row{"Total", len(rows), fmt.Sprintf("%d failed", failed), "", ""})
	t.Render()
	return failed
}

func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
