package pipeline

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/ppiankov/compoundscan/internal/model"
	"github.com/ppiankov/compoundscan/internal/pubchem"
	"github.com/ppiankov/compoundscan/internal/pubchem/pubchemtest"
	"github.com/ppiankov/compoundscan/internal/sink"
)

var fixedClock = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }

func newSource(t *testing.T, routes map[string]pubchemtest.Route) *pubchem.Client {
	t.Helper()
	server := pubchemtest.NewServer(routes)
	t.Cleanup(server.Close)
	fetcher := pubchem.NewFetcher(model.HTTPConfig{
		RequestTimeout: 5 * time.Second,
		UserAgent:      "test-agent",
		MaxBodyBytes:   1 << 20,
	}, nil, nil, nil)
	return pubchem.NewClient(server.URL, fetcher, nil)
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	rows, err := csv.NewReader(f).ReadAll()
	require.NoError(t, err)
	return rows
}

var wantHeader = []string{
	"CID", "Compound Name", "IUPAC Name", "Molecular Formula", "Molecular Weight",
	"Canonical SMILES", "Isomeric SMILES", "InChI", "InChIKey", "XLogP", "TPSA",
	"Exact Mass", "Complexity", "Rotatable Bonds", "H-Bond Donors", "H-Bond Acceptors",
	"Charge", "Heavy Atom Count", "Defined Atom Stereo Count", "Undefined Atom Stereo Count",
	"Defined Bond Stereo Count", "Undefined Bond Stereo Count", "Covalent Unit Count",
	"Coordinate Type", "Synonyms", "ChEMBL ID", "Chemical Vendors", "Protein 3D Structures",
	"BioAssay", "Patent", "Depositor-Supplied Patent", "Literature",
}

func TestRun_Persisted(t *testing.T) {
	dir := t.TempDir()
	csvSink := sink.NewCSVSink(dir)
	p := New(newSource(t, pubchemtest.AspirinRoutes()), []Sink{csvSink}, nil, Options{AssayLimit: 8, Clock: fixedClock})

	res, err := p.Run(context.Background(), "aspirin")
	require.NoError(t, err)
	require.Equal(t, StatePersisted, res.State)
	require.Equal(t, 2244, res.CID)
	require.Zero(t, res.Degraded())
	require.Len(t, res.Categories, 6)
	require.Equal(t, []string{filepath.Join(dir, "2244compound_details.csv")}, res.Artifacts)
	require.NotEmpty(t, res.RunID)
	require.Equal(t, res.RunID, res.Record.RunID)

	rows := readCSV(t, res.Artifacts[0])
	require.Len(t, rows, 2)
	if diff := cmp.Diff(wantHeader, rows[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}

	got := res.Record.Map()
	require.Equal(t, "2244", got[model.ColCID])
	require.Equal(t, "aspirin", got[model.ColCompoundName])
	require.Equal(t, "13", got[model.ColHeavyAtomCount])
	require.Equal(t, "CHEMBL25", got[model.ColChEMBLID])
	require.Equal(t, "Acros Organics; Sigma-Aldrich", got[model.ColVendors])
	require.Equal(t, "[\n  \"AU-2017374860-A1\",\n  \"AU-2017374860-B2\"\n]", got[model.ColDepositorPatent])
	require.Contains(t, got[model.ColStructures], `"Taxonomy_Name": "Ovis aries"`)
	require.Contains(t, got[model.ColBioAssay], `"Activity Value [uM]": "0.5"`)
	require.Contains(t, got[model.ColLiterature], `"AllURL": "https://www.ncbi.nlm.nih.gov/pubmed/?term=aspirin"`)
}

func TestRun_LookupFailure(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "Output")
	p := New(newSource(t, map[string]pubchemtest.Route{}), []Sink{sink.NewCSVSink(dir)}, nil, Options{})

	res, err := p.Run(context.Background(), "notacompound")
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrLookupFailed))
	require.True(t, errors.Is(err, pubchem.ErrNotFound))
	require.Equal(t, StateFailed, res.State)
	require.Nil(t, res.Record)
	require.Empty(t, res.Artifacts)

	_, statErr := os.Stat(dir)
	require.True(t, os.IsNotExist(statErr), "no output may be written")
}

func TestRun_MalformedCategoriesStillPersist(t *testing.T) {
	routes := pubchemtest.AspirinRoutes()
	for path := range routes {
		if strings.Contains(path, "/compound/name/") || strings.Contains(path, "/synonyms/") {
			continue
		}
		routes[path] = pubchemtest.Route{Body: `{"unexpected":`}
	}
	routes["/pug/compound/cid/2244/xrefs/PatentID/TXT"] = pubchemtest.Route{Status: 500}

	dir := t.TempDir()
	p := New(newSource(t, routes), []Sink{sink.NewCSVSink(dir)}, nil, Options{})

	res, err := p.Run(context.Background(), "aspirin")
	require.NoError(t, err)
	require.Equal(t, StatePersisted, res.State)
	require.Equal(t, 6, res.Degraded())

	got := res.Record.Map()
	require.Equal(t, "", got[model.ColVendors])
	for _, col := range []string{model.ColStructures, model.ColBioAssay, model.ColPatent, model.ColDepositorPatent, model.ColLiterature} {
		require.Equal(t, "[]", got[col], col)
	}
	_, statErr := os.Stat(filepath.Join(dir, "2244compound_details.csv"))
	require.NoError(t, statErr)
}

func TestRun_SequentialAndConcurrentAgree(t *testing.T) {
	source := newSource(t, pubchemtest.AspirinRoutes())

	var rows [][]string
	for _, n := range []int{1, 6} {
		p := New(source, nil, nil, Options{Concurrency: n, AssayLimit: 8, Clock: fixedClock})
		res, err := p.Run(context.Background(), "aspirin")
		require.NoError(t, err)
		rows = append(rows, res.Record.Row())

		var columns []string
		for _, c := range res.Categories {
			columns = append(columns, c.Column)
		}
		require.Equal(t, []string{
			model.ColVendors, model.ColStructures, model.ColBioAssay,
			model.ColPatent, model.ColDepositorPatent, model.ColLiterature,
		}, columns)
	}
	require.Equal(t, rows[0], rows[1])
}

type failingSink struct{}

func (failingSink) Name() string { return "broken" }
func (failingSink) Write(context.Context, *model.Record) (string, error) {
	return "", errors.New("disk full")
}

func TestRun_SinkFailureDiscardsEarlierArtifacts(t *testing.T) {
	dir := t.TempDir()
	p := New(newSource(t, pubchemtest.AspirinRoutes()), []Sink{sink.NewCSVSink(dir), failingSink{}}, nil, Options{})

	res, err := p.Run(context.Background(), "aspirin")
	require.Error(t, err)
	require.Contains(t, err.Error(), "persist broken")
	require.Equal(t, StateFailed, res.State)

	_, statErr := os.Stat(filepath.Join(dir, "2244compound_details.csv"))
	require.True(t, os.IsNotExist(statErr), "earlier CSV must be discarded")
}

func TestRun_CancelledContextFails(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := New(newSource(t, pubchemtest.AspirinRoutes()), nil, nil, Options{})
	res, err := p.Run(ctx, "aspirin")
	require.Error(t, err)
	require.Equal(t, StateFailed, res.State)
}

type fakeSummarizer struct {
	gotURLs []string
}

func (f *fakeSummarizer) IsEnabled() bool { return true }

func (f *fakeSummarizer) GenerateSummary(_ context.Context, record model.Record, urls []string) (*model.Summary, error) {
	f.gotURLs = urls
	name, _ := record.Get(model.ColCompoundName)
	return &model.Summary{Enabled: true, Text: "Summary of " + name}, nil
}

func TestRun_SummaryColumn(t *testing.T) {
	summarizer := &fakeSummarizer{}
	p := New(newSource(t, pubchemtest.AspirinRoutes()), nil, nil, Options{}).WithSummarizer(summarizer)

	res, err := p.Run(context.Background(), "aspirin")
	require.NoError(t, err)

	header := res.Record.Header()
	require.Equal(t, model.ColSummary, header[len(header)-1])
	got, _ := res.Record.Get(model.ColSummary)
	require.Equal(t, "Summary of aspirin", got)
	require.Contains(t, summarizer.gotURLs, "https://pubchem.ncbi.nlm.nih.gov/patent/US-2003040432-A1")
	require.Contains(t, summarizer.gotURLs, "https://www.ncbi.nlm.nih.gov/Structure/pdb/1OXR")
}

func TestRender(t *testing.T) {
	p := New(newSource(t, pubchemtest.AspirinRoutes()), nil, nil, Options{})
	res, err := p.Run(context.Background(), "aspirin")
	require.NoError(t, err)

	var buf bytes.Buffer
	r := NewRenderer(&buf, 40)
	r.RenderPreview(res.Record)
	r.RenderCategories(res)
	failed := r.RenderBatch([]BatchRow{
		{Name: "aspirin", Result: res},
		{Name: "notacompound", Err: errors.New("compound lookup failed")},
	})

	// go-pretty upper-cases headers and footers
	out := strings.ToLower(buf.String())
	require.Equal(t, 1, failed)
	require.Contains(t, out, "cid 2244: aspirin")
	require.Contains(t, out, "chemical vendors")
	require.Contains(t, out, "0 degraded")
	require.Contains(t, out, "1 failed")
}

// slowLiterature never answers the literature request before ctx ends
type slowLiterature struct {
	*pubchem.Client
}

func (s slowLiterature) Literature(ctx context.Context, _ int) ([]model.LiteratureLink, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestRun_DeadlineDegradesCategoryAndPersists(t *testing.T) {
	dir := t.TempDir()
	source := slowLiterature{Client: newSource(t, pubchemtest.AspirinRoutes())}
	p := New(source, []Sink{sink.NewCSVSink(dir)}, nil, Options{})

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	res, err := p.Run(ctx, "aspirin")
	require.NoError(t, err)
	require.Equal(t, StatePersisted, res.State)
	require.Equal(t, 1, res.Degraded())
	require.ErrorIs(t, res.Categories[5].Err, context.DeadlineExceeded)

	got, _ := res.Record.Get(model.ColLiterature)
	require.Equal(t, "[]", got)
	got, _ = res.Record.Get(model.ColVendors)
	require.Equal(t, "Acros Organics; Sigma-Aldrich", got)

	_, statErr := os.Stat(filepath.Join(dir, "2244compound_details.csv"))
	require.NoError(t, statErr)
}

// interruptedLiterature cancels the run while the literature request is in flight
type interruptedLiterature struct {
	*pubchem.Client
	cancel context.CancelFunc
}

func (s interruptedLiterature) Literature(ctx context.Context, _ int) ([]model.LiteratureLink, error) {
	s.cancel()
	return nil, ctx.Err()
}

func TestRun_InterruptDuringCategoriesFails(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	source := interruptedLiterature{Client: newSource(t, pubchemtest.AspirinRoutes()), cancel: cancel}
	p := New(source, []Sink{sink.NewCSVSink(dir)}, nil, Options{})

	res, err := p.Run(ctx, "aspirin")
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, StateFailed, res.State)

	_, statErr := os.Stat(filepath.Join(dir, "2244compound_details.csv"))
	require.True(t, os.IsNotExist(statErr))
}
