package ui

import (
	"context"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/cheggaaa/pb/v3"
	"github.com/pterm/pterm"

	"jobpilot-client/internal/actions"
	"jobpilot-client/internal/api"
	"jobpilot-client/internal/cache"
	"jobpilot-client/internal/config"
	"jobpilot-client/internal/listing"
	"jobpilot-client/internal/notify"
	"jobpilot-client/internal/session"
)

// Shell is the interactive terminal frontend. It owns no remote state of its
// own: everything it renders is a snapshot read from the session store, the
// listing controller, or a dispatcher result.
type Shell struct {
	cfg     config.Config
	cfgPath string
	sess    *session.Store
	api     *api.Client
	jobs    *listing.Controller
	acts    *actions.Dispatcher
	hub     *notify.Hub
	local   *cache.Cache
	theme   Theme
}

type Deps struct {
	Config     config.Config
	ConfigPath string
	Session    *session.Store
	API        *api.Client
	Jobs       *listing.Controller
	Actions    *actions.Dispatcher
	Hub        *notify.Hub
	Local      *cache.Cache
}

func NewShell(d Deps) *Shell {
	dark := PlatformPrefersDark()
	if enabled, set := d.Local.DarkMode(); set {
		dark = enabled
	}
	if d.Config.UI.DarkMode != nil {
		dark = *d.Config.UI.DarkMode
	}
	return &Shell{
		cfg:     d.Config,
		cfgPath: d.ConfigPath,
		sess:    d.Session,
		api:     d.API,
		jobs:    d.Jobs,
		acts:    d.Actions,
		hub:     d.Hub,
		local:   d.Local,
		theme:   Theme{Dark: dark},
	}
}

// Run drives the view loop until the user quits or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) error {
	notices := s.hub.Subscribe()
	defer s.hub.Unsubscribe(notices)
	go func() {
		for n := range notices {
			s.theme.Notice(n)
		}
	}()

	pterm.DefaultHeader.WithFullWidth().Println("JobPilot")

	// The guard holds everything behind a loader until the restore settles;
	// protected views must not flash before the check completes.
	sp, _ := pterm.DefaultSpinner.Start("Restoring session...")
	s.sess.Restore(ctx)
	_ = sp.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		switch Gate(s.sess.Status()) {
		case ViewLoading:
			time.Sleep(50 * time.Millisecond)
		case ViewLogin:
			if quit := s.loginMenu(ctx); quit {
				return nil
			}
		case ViewMain:
			if quit := s.mainMenu(ctx); quit {
				return nil
			}
		}
	}
}

// ── auth views ─────────────────────────────────────────────────────────────

func (s *Shell) loginMenu(ctx context.Context) (quit bool) {
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{"Log in", "Register", "Quit"}).
		Show("Welcome")
	if err != nil {
		return true
	}

	switch choice {
	case "Log in":
		s.login(ctx)
	case "Register":
		s.register(ctx)
	case "Quit":
		return true
	}
	return false
}

func (s *Shell) login(ctx context.Context) {
	username, err := pterm.DefaultInteractiveTextInput.Show("Username")
	if err != nil {
		return
	}
	password, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
	if err != nil {
		return
	}

	sp, _ := pterm.DefaultSpinner.Start("Logging in...")
	err = s.sess.Login(ctx, username, password)
	_ = sp.Stop()

	switch {
	case err == nil:
		pterm.Success.Printfln("Welcome back, %s!", s.sess.User().FullName)
	case api.IsStatus(err, 401):
		pterm.Error.Println("Invalid credentials. Please try again.")
	default:
		pterm.Error.Println("Login failed. Is the backend reachable?")
	}
}

func (s *Shell) register(ctx context.Context) {
	email, err := pterm.DefaultInteractiveTextInput.Show("Email")
	if err != nil {
		return
	}
	fullName, err := pterm.DefaultInteractiveTextInput.Show("Full name")
	if err != nil {
		return
	}
	password, err := pterm.DefaultInteractiveTextInput.WithMask("*").Show("Password")
	if err != nil {
		return
	}

	sp, _ := pterm.DefaultSpinner.Start("Creating account...")
	err = s.sess.Register(ctx, email, password, fullName)
	_ = sp.Stop()

	if err != nil {
		pterm.Error.Println("Registration failed. The email may already be in use.")
		return
	}
	pterm.Success.Println("Account created! Please log in.")
}

// ── main menu ──────────────────────────────────────────────────────────────

func (s *Shell) mainMenu(ctx context.Context) (quit bool) {
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{
			"Browse jobs",
			"Dashboard",
			"Applications",
			"Resumes",
			"Interview practice",
			"Cover letter",
			"Settings",
			"Log out",
			"Quit",
		}).
		WithMaxHeight(10).
		Show("Menu")
	if err != nil {
		return true
	}

	switch choice {
	case "Browse jobs":
		s.browseJobs(ctx)
	case "Dashboard":
		s.dashboard(ctx)
	case "Applications":
		s.applications(ctx)
	case "Resumes":
		s.resumes(ctx)
	case "Interview practice":
		s.interview(ctx)
	case "Cover letter":
		s.coverLetter(ctx)
	case "Settings":
		s.settings()
	case "Log out":
		s.sess.Logout()
		pterm.Info.Println("You have been logged out.")
	case "Quit":
		return true
	}
	return false
}

// ── jobs ───────────────────────────────────────────────────────────────────

func (s *Shell) browseJobs(ctx context.Context) {
	updates := s.jobs.Updates()
	defer s.jobs.Done(updates)

	q := s.jobs.Query()
	if q.Page == 0 {
		q = listing.Query{Page: 1, ExcludeScams: true, SortBy: listing.SortMatchScore}
	}
	s.jobs.SetQuery(ctx, q)
	s.waitLoaded(ctx, updates)

	for {
		res := s.jobs.Result()
		q = s.jobs.Query()

		if res.State == listing.StateFailed {
			if cached, err := s.local.LoadJobs(ctx); err == nil && len(cached) > 0 {
				pterm.Warning.Println("Backend unreachable; showing cached jobs.")
				res = listing.Result{Items: cached, Total: len(cached), State: listing.StateLoaded}
			}
		} else if res.State == listing.StateLoaded && len(res.Items) > 0 {
			if err := s.local.SaveJobs(ctx, res.Items); err != nil {
				log.Printf("[ui] cache save: %v", err)
			}
		}

		s.theme.RenderJobs(res, q.Page, s.jobs.HasNext())

		opts := []string{"Open a job"}
		if s.jobs.HasNext() {
			opts = append(opts, "Next page")
		}
		if q.Page > 1 {
			opts = append(opts, "Previous page")
		}
		opts = append(opts, "Search / filters", "Scrape fresh jobs", "Back")

		choice, err := pterm.DefaultInteractiveSelect.WithOptions(opts).Show("Jobs")
		if err != nil {
			return
		}

		switch choice {
		case "Open a job":
			s.openJob(ctx, res.Items)
		case "Next page":
			q.Page++
			s.jobs.SetQuery(ctx, q)
			s.waitLoaded(ctx, updates)
		case "Previous page":
			q.Page--
			s.jobs.SetQuery(ctx, q)
			s.waitLoaded(ctx, updates)
		case "Search / filters":
			s.editFilters(ctx, q)
			s.waitLoaded(ctx, updates)
		case "Scrape fresh jobs":
			sp, _ := pterm.DefaultSpinner.Start("Asking the backend to scrape...")
			s.jobs.ScrapeAndReload(ctx, s.cfg.Scrape.Region, s.cfg.Scrape.Role)
			_ = sp.Stop()
			s.waitLoaded(ctx, updates)
		case "Back":
			return
		}
	}
}

func (s *Shell) waitLoaded(ctx context.Context, updates chan struct{}) {
	if s.jobs.Result().State != listing.StateLoading {
		return
	}
	sp, _ := pterm.DefaultSpinner.Start("Loading jobs...")
	for s.jobs.Result().State == listing.StateLoading {
		select {
		case <-ctx.Done():
			_ = sp.Stop()
			return
		case <-updates:
		case <-time.After(250 * time.Millisecond):
		}
	}
	_ = sp.Stop()
}

func (s *Shell) editFilters(ctx context.Context, q listing.Query) {
	var err error
	if q.Keyword, err = pterm.DefaultInteractiveTextInput.
		WithDefaultValue(q.Keyword).Show("Keyword"); err != nil {
		return
	}
	if q.Location, err = pterm.DefaultInteractiveTextInput.
		WithDefaultValue(q.Location).Show("Location"); err != nil {
		return
	}
	if q.Remote, err = pterm.DefaultInteractiveConfirm.
		WithDefaultValue(q.Remote).Show("Remote only?"); err != nil {
		return
	}
	if q.FullTime, err = pterm.DefaultInteractiveConfirm.
		WithDefaultValue(q.FullTime).Show("Full-time only?"); err != nil {
		return
	}
	minStr, err := pterm.DefaultInteractiveTextInput.
		WithDefaultValue(strconv.Itoa(q.MinMatchScore)).Show("Minimum match score (0-100)")
	if err != nil {
		return
	}
	if n, convErr := strconv.Atoi(strings.TrimSpace(minStr)); convErr == nil {
		q.MinMatchScore = n
	}
	sortChoice, err := pterm.DefaultInteractiveSelect.
		WithOptions([]string{"Best match", "Date posted"}).Show("Sort by")
	if err != nil {
		return
	}
	if sortChoice == "Date posted" {
		q.SortBy = listing.SortPostedDate
	} else {
		q.SortBy = listing.SortMatchScore
	}

	q.Page = 1 // filter edits always restart paging
	s.jobs.SetQuery(ctx, q)
}

func (s *Shell) openJob(ctx context.Context, items []api.JobSummary) {
	if len(items) == 0 {
		return
	}
	opts := make([]string, len(items))
	for i, j := range items {
		opts[i] = strconv.Itoa(i+1) + ". " + j.Title + " — " + j.Company
	}
	choice, err := pterm.DefaultInteractiveSelect.WithOptions(opts).Show("Which job?")
	if err != nil {
		return
	}
	idx := 0
	for i, o := range opts {
		if o == choice {
			idx = i
			break
		}
	}
	picked := items[idx]

	sp, _ := pterm.DefaultSpinner.Start("Loading job...")
	detail, err := s.api.Job(ctx, picked.ID)
	_ = sp.Stop()
	if err != nil {
		log.Printf("[ui] job detail: %v", err)
		// fall back to the summary we already have
		detail = picked
	}
	s.theme.RenderJobDetail(detail)

	confirm, err := pterm.DefaultInteractiveConfirm.Show("Apply to this job?")
	if err != nil || !confirm {
		return
	}
	sp, _ = pterm.DefaultSpinner.Start("Submitting application...")
	err = s.acts.Apply(ctx, picked.ID)
	_ = sp.Stop()
	if err != nil && err != actions.ErrBusy {
		pterm.Error.Println("Could not submit the application.")
	}
}

// ── dashboard / applications ───────────────────────────────────────────────

func (s *Shell) dashboard(ctx context.Context) {
	sp, _ := pterm.DefaultSpinner.Start("Loading stats...")
	stats := s.acts.Stats(ctx)
	_ = sp.Stop()
	s.theme.RenderStats(stats)
}

func (s *Shell) applications(ctx context.Context) {
	sp, _ := pterm.DefaultSpinner.Start("Loading applications...")
	as, err := s.acts.Applications(ctx)
	_ = sp.Stop()
	if err != nil {
		s.hub.Warnf("Failed to load applications")
		return
	}
	s.theme.RenderApplications(as)
}

// ── resumes ────────────────────────────────────────────────────────────────

func (s *Shell) resumes(ctx context.Context) {
	for {
		choice, err := pterm.DefaultInteractiveSelect.
			WithOptions([]string{"List resumes", "Upload a resume", "Preview a resume", "Back"}).
			Show("Resumes")
		if err != nil {
			return
		}
		switch choice {
		case "List resumes":
			rs, err := s.acts.ListResumes(ctx)
			if err != nil {
				s.hub.Warnf("Failed to load resumes")
				continue
			}
			s.theme.RenderResumes(rs)
		case "Upload a resume":
			s.uploadResume(ctx)
		case "Preview a resume":
			s.previewResume(ctx)
		case "Back":
			return
		}
	}
}

func (s *Shell) uploadResume(ctx context.Context) {
	path, err := pterm.DefaultInteractiveTextInput.Show("Path to resume (PDF or DOCX)")
	if err != nil {
		return
	}
	path = strings.TrimSpace(path)

	f, err := os.Open(path)
	if err != nil {
		pterm.Error.Printfln("Cannot read %s", path)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		pterm.Error.Printfln("Cannot read %s", path)
		return
	}

	bar := pb.Full.Start64(info.Size())
	_, err = s.acts.UploadResume(ctx, filepath.Base(path), bar.NewProxyReader(f))
	bar.Finish()
	if err != nil {
		// upload failures stay inline in this flow rather than as a toast
		pterm.Error.Println("Failed to upload resume.")
	}
}

func (s *Shell) previewResume(ctx context.Context) {
	rs, err := s.acts.ListResumes(ctx)
	if err != nil || len(rs) == 0 {
		s.hub.Warnf("No resumes to preview")
		return
	}
	opts := make([]string, len(rs))
	for i, r := range rs {
		opts[i] = strconv.FormatInt(r.ID, 10) + ". " + r.Filename
	}
	choice, err := pterm.DefaultInteractiveSelect.WithOptions(opts).Show("Which resume?")
	if err != nil {
		return
	}
	for i, o := range opts {
		if o != choice {
			continue
		}
		sp, _ := pterm.DefaultSpinner.Start("Fetching preview...")
		text, err := s.acts.PreviewResume(ctx, rs[i].ID)
		_ = sp.Stop()
		if err != nil {
			s.hub.Warnf("Failed to load the preview")
			return
		}
		s.theme.title().Println(rs[i].Filename)
		pterm.Println(text)
		return
	}
}

// ── generated content ──────────────────────────────────────────────────────

func (s *Shell) interview(ctx context.Context) {
	jobTitle, err := pterm.DefaultInteractiveTextInput.Show("Job title")
	if err != nil {
		return
	}
	company, err := pterm.DefaultInteractiveTextInput.Show("Company")
	if err != nil {
		return
	}
	description, err := pterm.DefaultInteractiveTextInput.Show("Job description (short)")
	if err != nil {
		return
	}

	sp, _ := pterm.DefaultSpinner.Start("Generating questions...")
	questions, err := s.acts.GenerateInterviewQuestions(ctx, jobTitle, company, description)
	_ = sp.Stop()
	if err != nil {
		pterm.Error.Println("Failed to generate questions.")
		return
	}
	if len(questions) == 0 {
		pterm.Info.Println("The backend returned no questions.")
		return
	}

	for {
		opts := append([]string{}, questions...)
		opts = append(opts, "Back")
		choice, err := pterm.DefaultInteractiveSelect.WithOptions(opts).Show("Practice a question")
		if err != nil || choice == "Back" {
			return
		}

		answer, err := pterm.DefaultInteractiveTextInput.Show("Your answer")
		if err != nil {
			return
		}
		if strings.TrimSpace(answer) == "" {
			pterm.Warning.Println("Please write an answer first.")
			continue
		}

		sp, _ := pterm.DefaultSpinner.Start("Getting feedback...")
		feedback, err := s.acts.GetFeedback(ctx, jobTitle, choice, answer)
		_ = sp.Stop()
		if err != nil {
			pterm.Error.Println("Failed to get feedback.")
			continue
		}
		s.theme.accent().Println("Feedback")
		pterm.Println(feedback)
	}
}

func (s *Shell) coverLetter(ctx context.Context) {
	sp, _ := pterm.DefaultSpinner.Start("Loading jobs and resumes...")
	jobs, resumes, err := s.acts.CoverLetterSources(ctx)
	_ = sp.Stop()
	if err != nil {
		s.hub.Warnf("Failed to load jobs or resumes")
		return
	}
	if len(jobs) == 0 || len(resumes) == 0 {
		pterm.Info.Println("You need at least one job and one uploaded resume.")
		return
	}

	jobOpts := make([]string, len(jobs))
	for i, j := range jobs {
		jobOpts[i] = j.Title + " — " + j.Company
	}
	jobChoice, err := pterm.DefaultInteractiveSelect.WithOptions(jobOpts).Show("Which job?")
	if err != nil {
		return
	}
	var jobID int64
	for i, o := range jobOpts {
		if o == jobChoice {
			jobID = jobs[i].ID
			break
		}
	}

	resumeOpts := make([]string, len(resumes))
	for i, r := range resumes {
		resumeOpts[i] = r.Filename
	}
	resumeChoice, err := pterm.DefaultInteractiveSelect.WithOptions(resumeOpts).Show("Which resume?")
	if err != nil {
		return
	}
	var resumeID int64
	for i, o := range resumeOpts {
		if o == resumeChoice {
			resumeID = resumes[i].ID
			break
		}
	}

	sp, _ = pterm.DefaultSpinner.Start("Generating cover letter...")
	letter, err := s.acts.GenerateCoverLetter(ctx, jobID, resumeID)
	_ = sp.Stop()
	if err != nil {
		pterm.Error.Println("Failed to generate the cover letter.")
		return
	}
	s.theme.title().Println("Cover letter")
	pterm.Println(letter)
}

// ── settings ───────────────────────────────────────────────────────────────

func (s *Shell) settings() {
	for {
		mode := "light"
		if s.theme.Dark {
			mode = "dark"
		}
		choice, err := pterm.DefaultInteractiveSelect.
			WithOptions([]string{
				"Toggle dark mode (now: " + mode + ")",
				"Scrape defaults",
				"Back",
			}).
			Show("Settings")
		if err != nil {
			return
		}

		switch {
		case strings.HasPrefix(choice, "Toggle dark mode"):
			s.theme.Dark = !s.theme.Dark
			if err := s.local.SetDarkMode(s.theme.Dark); err != nil {
				log.Printf("[ui] save dark mode: %v", err)
			}
		case choice == "Scrape defaults":
			region, err := pterm.DefaultInteractiveTextInput.
				WithDefaultValue(s.cfg.Scrape.Region).Show("Scrape region")
			if err != nil {
				continue
			}
			role, err := pterm.DefaultInteractiveTextInput.
				WithDefaultValue(s.cfg.Scrape.Role).Show("Scrape role")
			if err != nil {
				continue
			}
			s.cfg.Scrape.Region = strings.TrimSpace(region)
			s.cfg.Scrape.Role = strings.TrimSpace(role)
			if err := config.SaveAtomic(s.cfgPath, s.cfg); err != nil {
				pterm.Error.Printfln("Could not save config: %v", err)
			} else {
				pterm.Success.Println("Saved.")
			}
		case choice == "Back":
			return
		}
	}
}
