// Package site drives document rendering and collection indexing over a
// whole archive and writes the results, plus a build report, to a sink.
package site

import (
	"log/slog"
	"time"

	"git.home.luguber.info/inful/forumarchive/internal/archive"
	"git.home.luguber.info/inful/forumarchive/internal/foundation/errors"
	"git.home.luguber.info/inful/forumarchive/internal/frontmatterops"
	"git.home.luguber.info/inful/forumarchive/internal/idmap"
	"git.home.luguber.info/inful/forumarchive/internal/index"
	"git.home.luguber.info/inful/forumarchive/internal/links"
	"git.home.luguber.info/inful/forumarchive/internal/logfields"
	"git.home.luguber.info/inful/forumarchive/internal/markup"
	"git.home.luguber.info/inful/forumarchive/internal/metrics"
	"git.home.luguber.info/inful/forumarchive/internal/render"
	"git.home.luguber.info/inful/forumarchive/internal/sink"
)

// Stage names used for timing and metrics.
const (
	StagePrepareOutput = "prepare_output"
	StageIdentifiers   = "identifiers"
	StageDocuments     = "documents"
	StageIndexes       = "indexes"
	StageVerify        = "verify"
	StageReport        = "report"
)

// Options configures an assembly run.
type Options struct {
	Origin      string
	SiteTitle   string
	Description string
	Capture     markup.LinkTextCapture
	Sanitize    bool
	// MaxDocuments caps every collection; 0 means unlimited.
	MaxDocuments int
	// Clean removes previous output before writing.
	Clean bool
	// Verify checks the written output's links afterwards.
	Verify bool
	// RunID identifies the run in reports; generated when empty.
	RunID string
}

// Assembler renders one archive into one dialect's output.
type Assembler struct {
	opts     Options
	logger   *slog.Logger
	recorder metrics.Recorder
	now      func() time.Time
}

// New returns an assembler. A nil logger discards output.
func New(opts Options, logger *slog.Logger) *Assembler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if opts.RunID == "" {
		opts.RunID = frontmatterops.NewRunID()
	}
	return &Assembler{
		opts:     opts,
		logger:   logger,
		recorder: metrics.NoopRecorder{},
		now:      time.Now,
	}
}

// WithRecorder attaches a metrics recorder.
func (a *Assembler) WithRecorder(r metrics.Recorder) *Assembler {
	if r != nil {
		a.recorder = r
	}
	return a
}

// RunID returns the identifier stamped on reports of this assembler.
func (a *Assembler) RunID() string { return a.opts.RunID }

// run is the mutable state of one Assemble call.
type run struct {
	arc     *archive.Archive
	dialect string
	out     *sink.FS
	report  *Report
	logger  *slog.Logger
	ids     *idmap.Map
	stats   *links.Stats
	current *archive.Document
}

// Assemble renders every document of arc in dialect, writes the collection
// indexes, optionally verifies the output and finally writes the build
// report. Per-document failures degrade to fallback output and are recorded
// as warnings; sink failures abort the run.
func (a *Assembler) Assemble(arc *archive.Archive, dialect string, out *sink.FS) (*Report, error) {
	scheme, err := schemeFor(dialect)
	if err != nil {
		return nil, err
	}

	start := a.now()
	rs := &run{
		arc:     arc.Truncate(a.opts.MaxDocuments),
		dialect: dialect,
		out:     out,
		report:  newReport(a.opts.RunID, dialect, start),
		logger:  a.logger.With(logfields.RunID(a.opts.RunID), logfields.Dialect(dialect)),
		stats:   links.NewStats(),
	}
	rs.logger.Info("Assembling output", logfields.Path(out.Root()), logfields.Count(rs.arc.Total()))

	stages := []struct {
		name string
		fn   func(*run) error
	}{
		{StagePrepareOutput, a.prepareOutput},
		{StageIdentifiers, func(rs *run) error { return a.identifiers(rs, scheme) }},
		{StageDocuments, a.documents},
		{StageIndexes, a.indexes},
		{StageVerify, a.verify},
	}
	for _, st := range stages {
		if err := a.runStage(rs, st.name, st.fn); err != nil {
			rs.report.fail(err)
			rs.report.finish(a.now())
			a.finishRun(rs)
			return rs.report, err
		}
	}

	err = a.runStage(rs, StageReport, a.writeReport)
	if err != nil {
		rs.report.fail(err)
		rs.report.deriveOutcome()
	}
	a.finishRun(rs)
	return rs.report, err
}

func (a *Assembler) runStage(rs *run, name string, fn func(*run) error) error {
	t0 := time.Now()
	err := fn(rs)
	dur := time.Since(t0)
	rs.report.StageMillis[name] = float64(dur.Microseconds()) / 1000
	a.recorder.ObserveStageDuration(name, dur)
	switch {
	case err != nil:
		a.recorder.IncStageResult(name, metrics.ResultFatal)
		rs.logger.Error("Stage failed", logfields.Stage(name), logfields.Error(err))
	default:
		a.recorder.IncStageResult(name, metrics.ResultSuccess)
		rs.logger.Debug("Stage complete", logfields.Stage(name), logfields.Elapsed(dur))
	}
	return err
}

func (a *Assembler) finishRun(rs *run) {
	a.recorder.ObserveRunDuration(rs.report.End.Sub(rs.report.Start))
	a.recorder.IncRunOutcome(string(rs.report.Outcome))
	rs.logger.Info("Assembly finished", slog.String("summary", rs.report.Summary()))
}

func schemeFor(dialect string) (idmap.Scheme, error) {
	switch dialect {
	case render.DialectNotes:
		return idmap.NoteScheme, nil
	case render.DialectHTML:
		return idmap.HTMLScheme, nil
	}
	return idmap.Scheme{}, errors.ValidationError("unknown output dialect").
		WithContext("dialect", dialect).
		Build()
}

func (a *Assembler) prepareOutput(rs *run) error {
	if !a.opts.Clean {
		return nil
	}
	return rs.out.Clean()
}

func (a *Assembler) identifiers(rs *run, scheme idmap.Scheme) error {
	rs.ids = idmap.Build(rs.arc, scheme, rs.logger)
	rs.report.addCollisions(rs.ids.Collisions())
	return nil
}

// observe counts one link resolution and logs the degraded ones.
func (a *Assembler) observe(rs *run) func(links.Resolution) {
	return func(res links.Resolution) {
		rs.stats.Observe(res)
		a.recorder.IncLinkResolution(res.Kind.String())
		if res.Kind != links.KindDangling && res.Kind != links.KindMalformed {
			return
		}
		attrs := []any{logfields.LinkKind(res.Kind.String()), logfields.URL(res.Href)}
		if rs.current != nil {
			attrs = append(attrs, logfields.Document(rs.current.ID.String()))
		}
		rs.logger.Debug("Link not resolved locally", attrs...)
	}
}

func (a *Assembler) documents(rs *run) error {
	r, err := render.New(rs.dialect, render.Options{
		Origin:    a.opts.Origin,
		IDs:       rs.ids,
		Capture:   a.opts.Capture,
		Observer:  a.observe(rs),
		SiteTitle: a.opts.SiteTitle,
		Sanitize:  a.opts.Sanitize,
	})
	if err != nil {
		return err
	}

	for _, kind := range archive.Kinds {
		coll := rs.arc.Collection(kind)
		targets := rs.ids.Assigned(kind)
		if len(targets) != coll.Len() {
			return errors.InternalError("identifier map out of step with collection").
				WithContext("collection", kind.Key()).
				Fatal().
				Build()
		}
		rs.logger.Debug("Rendering collection", logfields.Collection(kind.Key()), logfields.Count(coll.Len()))

		for i := range coll.Documents {
			doc := &coll.Documents[i]
			target := targets[i]
			rs.current = doc

			data, err := r.Render(doc, target)
			if err != nil {
				rs.report.warn(Warning{
					Collection: kind.Key(),
					Document:   doc.ID.String(),
					File:       target.File,
					Message:    err.Error(),
				})
				a.recorder.IncRenderWarning(rs.dialect)
				rs.logger.Warn("Document rendered with fallback",
					logfields.Collection(kind.Key()),
					logfields.Document(doc.ID.String()),
					logfields.Error(err))
				data = r.Fallback(doc, target)
			}
			if err := rs.out.Write(target.File, data); err != nil {
				return err
			}
			rs.report.Documents[kind.Key()]++
			a.recorder.IncDocumentsRendered(kind.Key(), rs.dialect)
		}
	}
	rs.current = nil

	rs.report.Links = rs.stats.Snapshot()
	for _, over := range rs.out.Overwritten() {
		rs.logger.Warn("Output file written more than once", logfields.Path(over))
	}
	return nil
}

func (a *Assembler) indexes(rs *run) error {
	write := func(file string, data []byte, err error) error {
		if err != nil {
			rs.report.warn(Warning{File: file, Message: err.Error()})
			rs.logger.Warn("Index page skipped", logfields.Path(file), logfields.Error(err))
			return nil
		}
		return rs.out.Write(file, data)
	}

	for _, kind := range archive.Kinds {
		coll := rs.arc.Collection(kind)
		targets := rs.ids.Assigned(kind)
		var err error
		switch rs.dialect {
		case render.DialectNotes:
			data, ierr := index.Notes(coll, targets)
			err = write(index.NoteFile(kind), data, ierr)
		default:
			data, ierr := index.HTML(coll, targets, a.opts.SiteTitle)
			err = write(index.HTMLFile(kind), data, ierr)
		}
		if err != nil {
			return err
		}
	}

	if rs.dialect != render.DialectHTML {
		return nil
	}
	if err := rs.out.Write(index.StylesheetFile, render.Stylesheet()); err != nil {
		return err
	}
	data, err := index.Landing(rs.arc, a.opts.SiteTitle, a.opts.Description)
	return write(index.LandingFile, data, err)
}

func (a *Assembler) verify(rs *run) error {
	rs.report.Files = len(rs.out.Written())
	if !a.opts.Verify {
		return nil
	}
	res, err := Verify(rs.out, rs.dialect, a.opts.Origin)
	if err != nil {
		rs.report.warn(Warning{Message: err.Error()})
		rs.logger.Warn("Output verification failed", logfields.Error(err))
		return nil
	}
	rs.report.Verification = res
	a.recorder.AddVerificationProblems(rs.dialect, len(res.Problems))
	for _, p := range res.Problems {
		rs.logger.Debug("Broken link in output",
			logfields.Path(p.File),
			logfields.URL(p.Link),
			slog.String("reason", p.Reason))
	}
	rs.logger.Info("Output verified",
		logfields.Count(len(res.Problems)),
		slog.Int("links_checked", res.Links))
	return nil
}

func (a *Assembler) writeReport(rs *run) error {
	rs.report.finish(a.now())
	data, err := rs.report.JSON()
	if err != nil {
		return errors.WrapError(err, errors.CategoryInternal, "failed to encode build report").Build()
	}
	return rs.out.Write(ReportFile, data)
}
