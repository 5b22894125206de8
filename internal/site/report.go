package site

import (
	"encoding/json"
	"fmt"
	"time"

	"git.home.luguber.info/inful/forumarchive/internal/idmap"
	"git.home.luguber.info/inful/forumarchive/internal/linkverify"
)

// ReportFile is written to the root of every dialect output.
const ReportFile = "build-report.json"

// Outcome is the overall result of one assembly run.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeWarning Outcome = "warning"
	OutcomeFailed  Outcome = "failed"
)

// Warning is a non-fatal problem tied to one document or output file.
type Warning struct {
	Collection string `json:"collection,omitempty"`
	Document   string `json:"document,omitempty"`
	File       string `json:"file,omitempty"`
	Message    string `json:"message"`
}

// CollisionEntry is an identifier-map collision in report form.
type CollisionEntry struct {
	URL      string `json:"url"`
	Previous string `json:"previous"`
	Winner   string `json:"winner"`
}

// Report describes one dialect's assembly run.
type Report struct {
	SchemaVersion int                `json:"schema_version"`
	RunID         string             `json:"run_id"`
	Dialect       string             `json:"dialect"`
	Start         time.Time          `json:"started"`
	End           time.Time          `json:"finished"`
	Documents     map[string]int     `json:"documents"`
	Files         int                `json:"files"`
	Links         map[string]int     `json:"links"`
	Collisions    []CollisionEntry   `json:"collisions"`
	Warnings      []Warning          `json:"warnings"`
	StageMillis   map[string]float64 `json:"stage_duration_ms"`
	Verification  *linkverify.Result `json:"verification,omitempty"`
	Outcome       Outcome            `json:"outcome"`
	// Errors holds fatal errors; at most one today.
	Errors []string `json:"errors,omitempty"`
}

func newReport(runID, dialect string, start time.Time) *Report {
	return &Report{
		SchemaVersion: 1,
		RunID:         runID,
		Dialect:       dialect,
		Start:         start,
		Documents:     make(map[string]int),
		Links:         make(map[string]int),
		Collisions:    []CollisionEntry{},
		Warnings:      []Warning{},
		StageMillis:   make(map[string]float64),
	}
}

func (r *Report) warn(w Warning) { r.Warnings = append(r.Warnings, w) }

func (r *Report) fail(err error) { r.Errors = append(r.Errors, err.Error()) }

func (r *Report) addCollisions(cs []idmap.Collision) {
	for _, c := range cs {
		r.Collisions = append(r.Collisions, CollisionEntry{
			URL:      c.URL,
			Previous: c.Previous.Ref,
			Winner:   c.Winner.Ref,
		})
	}
}

// Total returns the number of documents rendered across collections.
func (r *Report) Total() int {
	n := 0
	for _, c := range r.Documents {
		n += c
	}
	return n
}

// deriveOutcome sets Outcome from recorded errors and warnings. Verification
// problems count as warnings.
func (r *Report) deriveOutcome() {
	switch {
	case len(r.Errors) > 0:
		r.Outcome = OutcomeFailed
	case len(r.Warnings) > 0 || !r.Verification.OK():
		r.Outcome = OutcomeWarning
	default:
		r.Outcome = OutcomeSuccess
	}
}

func (r *Report) finish(end time.Time) {
	r.End = end
	r.deriveOutcome()
}

// Summary returns a human-readable single-line summary.
func (r *Report) Summary() string {
	problems := 0
	if r.Verification != nil {
		problems = len(r.Verification.Problems)
	}
	dur := r.End.Sub(r.Start)
	return fmt.Sprintf("dialect=%s documents=%d files=%d links=%d collisions=%d warnings=%d problems=%d duration=%s outcome=%s",
		r.Dialect, r.Total(), r.Files, sum(r.Links), len(r.Collisions), len(r.Warnings), problems, dur.Truncate(time.Millisecond), r.Outcome)
}

// JSON returns the indented machine-readable form.
func (r *Report) JSON() ([]byte, error) {
	b, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(b, '\n'), nil
}

func sum(m map[string]int) int {
	n := 0
	for _, v := range m {
		n += v
	}
	return n
}
