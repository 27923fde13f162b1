package api

// Wire types for the backend under /api/v1. Snapshots only; nothing here is
// mutated locally after decode.

type UserProfile struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
}

type JobSummary struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Company     string `json:"company"`
	Location    string `json:"location"`
	IsRemote    bool   `json:"is_remote"`
	JobType     string `json:"job_type"`
	MatchScore  int    `json:"match_score"`
	IsScam      bool   `json:"is_scam"`
	PostedDate  string `json:"posted_date"`
	Source      string `json:"source"`
	URL         string `json:"url"`
	Description string `json:"description"`
}

// JobPage is one page of the listing plus the server-reported total.
type JobPage struct {
	Items []JobSummary
	Total int
}

type Resume struct {
	ID         int64  `json:"id"`
	Filename   string `json:"filename"`
	UploadedAt string `json:"uploaded_at"`
}

type Application struct {
	ID        int64  `json:"id"`
	JobID     int64  `json:"job_id"`
	Status    string `json:"status"`
	AppliedAt string `json:"applied_at"`
}

type Stats struct {
	JobsScraped      int `json:"jobs_scraped"`
	ApplicationsSent int `json:"applications_sent"`
	Interviews       int `json:"interviews"`
	ScamsBlocked     int `json:"scams_blocked"`
}
