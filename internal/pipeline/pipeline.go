// Package pipeline resolves a compound name, fetches every data category for
// it and persists the merged record.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ppiankov/compoundscan/internal/logging"
	"github.com/ppiankov/compoundscan/internal/model"
)

// State is the stage a run is in or finished at
type State string

const (
	StateResolvingIdentifier State = "ResolvingIdentifier"
	StateFetchingCategories  State = "FetchingCategories"
	StateMerging             State = "Merging"
	StatePersisted           State = "Persisted"
	StateFailed              State = "Failed"
)

// ErrLookupFailed wraps any primary lookup failure, including not found
var ErrLookupFailed = errors.New("compound lookup failed")

// Source is the upstream the pipeline reads from; *pubchem.Client implements it
type Source interface {
	LookupCompound(ctx context.Context, name string) (*model.Compound, error)
	Vendors(ctx context.Context, cid int) ([]model.Vendor, error)
	Structures(ctx context.Context, cid int) ([]model.Structure, error)
	AssaySummaries(ctx context.Context, cid int) ([]model.AssaySummary, error)
	Patents(ctx context.Context, cid int) ([]model.Patent, error)
	DepositorPatents(ctx context.Context, cid int) ([]string, error)
	Literature(ctx context.Context, cid int) ([]model.LiteratureLink, error)
}

// Sink persists a merged record and returns a description of what it wrote
type Sink interface {
	Name() string
	Write(ctx context.Context, record *model.Record) (string, error)
}

// Discarder is implemented by sinks that can remove what they wrote
type Discarder interface {
	Discard(ctx context.Context, record *model.Record) error
}

// Summarizer adds the optional Summary column; *llm.Summarizer implements it
type Summarizer interface {
	IsEnabled() bool
	GenerateSummary(ctx context.Context, record model.Record, evidenceURLs []string) (*model.Summary, error)
}

// Options tune a Pipeline
type Options struct {
	Concurrency int              // category jobs in flight; <= 1 runs them in declared order
	AssayLimit  int              // BioAssay rows kept; <= 0 keeps all
	Clock       func() time.Time // defaults to time.Now
}

// Pipeline runs compound names end to end
type Pipeline struct {
	source     Source
	sinks      []Sink
	summarizer Summarizer
	logger     *logging.Logger
	opts       Options
}

// New creates a pipeline reading from source and writing to sinks in order
func New(source Source, sinks []Sink, logger *logging.Logger, opts Options) *Pipeline {
	if logger == nil {
		logger = logging.Noop()
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = 1
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	return &Pipeline{
		source: source,
		sinks:  sinks,
		logger: logger,
		opts:   opts,
	}
}

// WithSummarizer enables the Summary column
func (p *Pipeline) WithSummarizer(s Summarizer) *Pipeline {
	p.summarizer = s
	return p
}

// CategoryResult reports how one category fetch went
type CategoryResult struct {
	Column string
	Items  int
	Err    error // non-nil means the column fell back to its empty value
	Took   time.Duration
}

// RunResult is the outcome of one run
type RunResult struct {
	RunID      string
	Name       string
	State      State
	CID        int
	Compound   *model.Compound
	Record     *model.Record
	Categories []CategoryResult
	Summary    *model.Summary
	Artifacts  []string
	Err        error
}

// Degraded counts categories that fell back to empty
func (r *RunResult) Degraded() int {
	n := 0
	for _, c := range r.Categories {
		if c.Err != nil {
			n++
		}
	}
	return n
}

// Run resolves name, fetches every category, merges and persists.
// The returned RunResult is never nil; err is non-nil exactly when State is Failed.
func (p *Pipeline) Run(ctx context.Context, name string) (*RunResult, error) {
	res := &RunResult{
		RunID: uuid.NewString(),
		Name:  name,
		State: StateResolvingIdentifier,
	}
	logger := p.logger.WithRun(res.RunID)

	compound, err := p.source.LookupCompound(ctx, name)
	if err != nil {
		return p.fail(ctx, logger, res, fmt.Errorf("%w: %q: %w", ErrLookupFailed, name, err))
	}
	res.CID = compound.CID
	res.Compound = compound
	logger = logger.WithCID(compound.CID)

	res.State = StateFetchingCategories
	cats, results := p.fetchCategories(ctx, logger, compound.CID)
	res.Categories = results

	// A deadline only degrades the categories it cut short; an interrupt stops the run
	if err := ctx.Err(); errors.Is(err, context.Canceled) {
		return p.fail(ctx, logger, res, fmt.Errorf("fetch categories: %w", err))
	} else if err != nil {
		// Persist what arrived before the deadline
		ctx = context.WithoutCancel(ctx)
	}

	res.State = StateMerging
	record, err := Merge(compound, cats, p.opts.AssayLimit)
	if err != nil {
		return p.fail(ctx, logger, res, fmt.Errorf("merge: %w", err))
	}
	record.RunID = res.RunID
	record.FetchedAt = p.opts.Clock().UTC()

	if p.summarizer != nil && p.summarizer.IsEnabled() {
		res.Summary = p.summarize(ctx, logger, record, cats)
	}
	res.Record = record

	artifacts, err := p.persist(ctx, logger, record)
	if err != nil {
		return p.fail(ctx, logger, res, err)
	}
	res.Artifacts = artifacts
	res.State = StatePersisted

	logger.LogRun(ctx, name, string(res.State), res.CID, nil)
	return res, nil
}

func (p *Pipeline) fail(ctx context.Context, logger *logging.Logger, res *RunResult, err error) (*RunResult, error) {
	res.State = StateFailed
	res.Err = err
	logger.LogRun(ctx, res.Name, string(res.State), res.CID, err)
	return res, err
}

// categoryJob fetches one category into its slot of Categories
type categoryJob struct {
	column string
	fetch  func(ctx context.Context, cid int) (int, error)
}

func job[T any](column string, fetch func(context.Context, int) ([]T, error), slot *[]T) categoryJob {
	return categoryJob{
		column: column,
		fetch: func(ctx context.Context, cid int) (int, error) {
			items, err := fetch(ctx, cid)
			if err != nil {
				return 0, err
			}
			*slot = items
			return len(items), nil
		},
	}
}

func (p *Pipeline) categoryJobs(cats *Categories) []categoryJob {
	return []categoryJob{
		job(model.ColVendors, p.source.Vendors, &cats.Vendors),
		job(model.ColStructures, p.source.Structures, &cats.Structures),
		job(model.ColBioAssay, p.source.AssaySummaries, &cats.Assays),
		job(model.ColPatent, p.source.Patents, &cats.Patents),
		job(model.ColDepositorPatent, p.source.DepositorPatents, &cats.DepositorPatents),
		job(model.ColLiterature, p.source.Literature, &cats.Literature),
	}
}

// fetchCategories runs every job; a failed job leaves its slot empty
func (p *Pipeline) fetchCategories(ctx context.Context, logger *logging.Logger, cid int) (Categories, []CategoryResult) {
	var cats Categories
	jobs := p.categoryJobs(&cats)
	results := make([]CategoryResult, len(jobs))

	var g errgroup.Group
	g.SetLimit(p.opts.Concurrency)
	for i, j := range jobs {
		g.Go(func() error {
			start := time.Now()
			n, err := j.fetch(ctx, cid)
			results[i] = CategoryResult{Column: j.column, Items: n, Err: err, Took: time.Since(start)}
			if err != nil {
				logger.LogDegraded(ctx, j.column, err)
			} else {
				logger.LogCategory(ctx, j.column, n)
			}
			return nil
		})
	}
	_ = g.Wait()

	return cats, results
}

func (p *Pipeline) summarize(ctx context.Context, logger *logging.Logger, record *model.Record, cats Categories) *model.Summary {
	summary, err := p.summarizer.GenerateSummary(ctx, *record, EvidenceURLs(cats))
	if err != nil {
		logger.WarnContext(ctx, "summary failed", "error", err)
	}
	text := ""
	if summary != nil {
		text = summary.Text
		for _, w := range summary.Warnings {
			logger.WarnContext(ctx, "summary warning", "warning", w)
		}
	}
	record.Add(model.ColSummary, text)
	return summary
}

// persist writes to every sink in order. If one fails, what earlier sinks
// wrote is discarded so the run leaves no artifact.
func (p *Pipeline) persist(ctx context.Context, logger *logging.Logger, record *model.Record) ([]string, error) {
	var artifacts []string
	for i, sink := range p.sinks {
		artifact, err := sink.Write(ctx, record)
		if err != nil {
			for _, prev := range p.sinks[:i] {
				d, ok := prev.(Discarder)
				if !ok {
					continue
				}
				if derr := d.Discard(ctx, record); derr != nil {
					logger.ErrorContext(ctx, "discard failed", "sink", prev.Name(), "error", derr)
				}
			}
			return nil, fmt.Errorf("persist %s: %w", sink.Name(), err)
		}
		artifacts = append(artifacts, artifact)
	}
	return artifacts, nil
}
