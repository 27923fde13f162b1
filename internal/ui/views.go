package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/pterm/pterm"

	"jobpilot-client/internal/api"
	"jobpilot-client/internal/listing"
	"jobpilot-client/internal/notify"
)

// Notice prints a hub notification at its level. Reads warn, writes error;
// the distinction is decided where the notice is published.
func (t Theme) Notice(n notify.Notice) {
	switch n.Level {
	case notify.LevelSuccess:
		pterm.Success.Println(n.Message)
	case notify.LevelWarning:
		pterm.Warning.Println(n.Message)
	case notify.LevelError:
		pterm.Error.Println(n.Message)
	default:
		pterm.Info.Println(n.Message)
	}
}

func (t Theme) RenderJobs(res listing.Result, page int, hasNext bool) {
	if res.State == listing.StateFailed {
		pterm.Error.Println("Couldn't load jobs.")
		return
	}
	if len(res.Items) == 0 {
		pterm.Info.Println("No jobs found matching your criteria.")
		return
	}

	data := pterm.TableData{{"#", "Title", "Company", "Location", "Match", "Posted"}}
	for i, j := range res.Items {
		loc := j.Location
		if j.IsRemote {
			loc = "Remote"
		}
		title := j.Title
		if j.IsScam {
			title = pterm.Red("⚠ ") + title
		}
		data = append(data, []string{
			strconv.Itoa(i + 1), title, j.Company, loc,
			scoreCell(j.MatchScore), postedCell(j.PostedDate),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}

	footer := fmt.Sprintf("%d jobs · page %d", res.Total, page)
	if hasNext {
		footer += " · more available"
	}
	t.dim().Println(footer)
}

func (t Theme) RenderJobDetail(j api.JobSummary) {
	t.title().Println(j.Title)
	fmt.Printf("%s · %s\n", j.Company, j.Location)

	facts := []string{}
	if j.IsRemote {
		facts = append(facts, "remote")
	}
	if j.JobType != "" {
		facts = append(facts, j.JobType)
	}
	if j.Source != "" {
		facts = append(facts, "via "+j.Source)
	}
	facts = append(facts, "match "+scoreCell(j.MatchScore))
	t.accent().Println(joinDot(facts))

	if j.IsScam {
		pterm.Warning.Println("This posting was flagged as a likely scam.")
	}
	if j.Description != "" {
		fmt.Println()
		fmt.Println(HTMLToText(j.Description))
	}
	if j.URL != "" {
		fmt.Println()
		t.dim().Println(j.URL)
	}
}

func (t Theme) RenderStats(s api.Stats) {
	data := pterm.TableData{
		{"Jobs scraped", strconv.Itoa(s.JobsScraped)},
		{"Applications sent", strconv.Itoa(s.ApplicationsSent)},
		{"Interviews", strconv.Itoa(s.Interviews)},
		{"Scams blocked", strconv.Itoa(s.ScamsBlocked)},
	}
	if err := pterm.DefaultTable.WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

func (t Theme) RenderResumes(rs []api.Resume) {
	if len(rs) == 0 {
		pterm.Info.Println("No resumes uploaded yet.")
		return
	}
	data := pterm.TableData{{"ID", "Filename", "Uploaded"}}
	for _, r := range rs {
		data = append(data, []string{
			strconv.FormatInt(r.ID, 10), r.Filename, postedCell(r.UploadedAt),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

func (t Theme) RenderApplications(as []api.Application) {
	if len(as) == 0 {
		pterm.Info.Println("No applications yet.")
		return
	}
	data := pterm.TableData{{"Job", "Status", "Applied"}}
	for _, a := range as {
		data = append(data, []string{
			strconv.FormatInt(a.JobID, 10), a.Status, postedCell(a.AppliedAt),
		})
	}
	if err := pterm.DefaultTable.WithHasHeader().WithData(data).Render(); err != nil {
		pterm.Error.Println(err)
	}
}

func scoreCell(score int) string {
	s := strconv.Itoa(score)
	switch {
	case score >= 80:
		return pterm.Green(s)
	case score >= 50:
		return pterm.Yellow(s)
	default:
		return pterm.Red(s)
	}
}

func postedCell(raw string) string {
	if raw == "" {
		return "-"
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return raw
	}
	return humanize.Time(t)
}

func joinDot(parts []string) string {
	out := ""
	for i, p := range parts {
		if i > 0 {
			out += " · "
		}
		out += p
	}
	return out
}
