package actions

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"sync"

	"golang.org/x/sync/errgroup"

	"jobpilot-client/internal/api"
	"jobpilot-client/internal/notify"
)

// ErrBusy means the same control is already mid-call. The server does not
// deduplicate writes, so the client refuses to double-fire instead.
var ErrBusy = errors.New("action already in flight")

// Dispatcher owns the one-shot side-effecting calls. Each call is a single
// HTTP request; none of them mutate listing state directly. Success or
// failure is reported through the hub, and callers trigger a list reload
// themselves when they want to observe the new server state.
type Dispatcher struct {
	api *api.Client
	hub *notify.Hub

	mu     sync.Mutex
	inUse  map[string]bool
}

func NewDispatcher(c *api.Client, hub *notify.Hub) *Dispatcher {
	return &Dispatcher{api: c, hub: hub, inUse: make(map[string]bool)}
}

func (d *Dispatcher) acquire(key string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.inUse[key] {
		return false
	}
	d.inUse[key] = true
	return true
}

func (d *Dispatcher) release(key string) {
	d.mu.Lock()
	delete(d.inUse, key)
	d.mu.Unlock()
}

// Apply records an application for the job.
func (d *Dispatcher) Apply(ctx context.Context, jobID int64) error {
	key := fmt.Sprintf("apply:%d", jobID)
	if !d.acquire(key) {
		return ErrBusy
	}
	defer d.release(key)

	if err := d.api.Apply(ctx, jobID); err != nil {
		log.Printf("[actions] apply job=%d: %v", jobID, err)
		return err
	}
	d.hub.Successf("Application submitted")
	return nil
}

// Applications lists the user's submitted applications.
func (d *Dispatcher) Applications(ctx context.Context) ([]api.Application, error) {
	return d.api.Applications(ctx)
}

// UploadResume stores a resume. r is typically the file wrapped in a
// progress-bar proxy reader by the view.
func (d *Dispatcher) UploadResume(ctx context.Context, filename string, r io.Reader) (api.Resume, error) {
	if !d.acquire("upload") {
		return api.Resume{}, ErrBusy
	}
	defer d.release("upload")

	res, err := d.api.UploadResume(ctx, filename, r)
	if err != nil {
		log.Printf("[actions] upload %q: %v", filename, err)
		return api.Resume{}, err
	}
	d.hub.Successf("Resume uploaded")
	return res, nil
}

func (d *Dispatcher) ListResumes(ctx context.Context) ([]api.Resume, error) {
	return d.api.Resumes(ctx)
}

func (d *Dispatcher) PreviewResume(ctx context.Context, id int64) (string, error) {
	return d.api.ResumePreview(ctx, id)
}

func (d *Dispatcher) GenerateInterviewQuestions(ctx context.Context, jobTitle, company, description string) ([]string, error) {
	if !d.acquire("questions") {
		return nil, ErrBusy
	}
	defer d.release("questions")
	return d.api.InterviewQuestions(ctx, jobTitle, company, description)
}

func (d *Dispatcher) GetFeedback(ctx context.Context, jobTitle, question, answer string) (string, error) {
	if !d.acquire("feedback") {
		return "", ErrBusy
	}
	defer d.release("feedback")
	return d.api.InterviewFeedback(ctx, jobTitle, question, answer)
}

func (d *Dispatcher) GenerateCoverLetter(ctx context.Context, jobID, resumeID int64) (string, error) {
	if !d.acquire("cover-letter") {
		return "", ErrBusy
	}
	defer d.release("cover-letter")
	return d.api.GenerateCoverLetter(ctx, jobID, resumeID)
}

// CoverLetterSources fetches the inputs for the cover-letter flow in
// parallel: a window of recent jobs and the stored resumes.
func (d *Dispatcher) CoverLetterSources(ctx context.Context) ([]api.JobSummary, []api.Resume, error) {
	var (
		jobs    []api.JobSummary
		resumes []api.Resume
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		page, err := d.api.Jobs(gctx, api.JobsParams{Limit: 100})
		if err != nil {
			return err
		}
		jobs = page.Items
		return nil
	})
	g.Go(func() error {
		var err error
		resumes, err = d.api.Resumes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return jobs, resumes, nil
}

// Stats fetches the dashboard counters. Failure degrades to an all-zero
// panel with a warning instead of an error screen.
func (d *Dispatcher) Stats(ctx context.Context) api.Stats {
	stats, err := d.api.DashboardStats(ctx)
	if err != nil {
		log.Printf("[actions] stats: %v", err)
		d.hub.Warnf("Stats are unavailable right now")
		return api.Stats{}
	}
	return stats
}
