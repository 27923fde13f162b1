package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
)

// Apply records an application for a job.
func (c *Client) Apply(ctx context.Context, jobID int64) error {
	_, err := c.do(ctx, call{
		method: http.MethodPost,
		path:   fmt.Sprintf("/applications/apply/%d", jobID),
		op:     "apply to job",
		auth:   true,
	})
	return err
}

// Applications lists everything the user has applied to.
func (c *Client) Applications(ctx context.Context) ([]Application, error) {
	var out []Application
	err := c.getJSON(ctx, call{
		method: http.MethodGet,
		path:   "/applications/",
		op:     "fetch applications",
		auth:   true,
	}, &out)
	return out, err
}

// UploadResume stores a resume file. Callers that want upload progress wrap r
// before passing it in; the client stays UI-free.
func (c *Client) UploadResume(ctx context.Context, filename string, r io.Reader) (Resume, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return Resume{}, &Error{Op: "upload resume", cause: err}
	}
	if _, err := io.Copy(part, r); err != nil {
		return Resume{}, &Error{Op: "upload resume", cause: err}
	}
	if err := mw.Close(); err != nil {
		return Resume{}, &Error{Op: "upload resume", cause: err}
	}

	var out Resume
	err = c.getJSON(ctx, call{
		method:      http.MethodPost,
		path:        "/resumes/upload",
		op:          "upload resume",
		body:        &buf,
		contentType: mw.FormDataContentType(),
		auth:        true,
	}, &out)
	return out, err
}

// Resumes lists stored resumes.
func (c *Client) Resumes(ctx context.Context) ([]Resume, error) {
	var out []Resume
	err := c.getJSON(ctx, call{
		method: http.MethodGet,
		path:   "/resumes/",
		op:     "fetch resumes",
		auth:   true,
	}, &out)
	return out, err
}

// ResumePreview returns the extracted text of a stored resume.
func (c *Client) ResumePreview(ctx context.Context, id int64) (string, error) {
	b, err := c.do(ctx, call{
		method: http.MethodGet,
		path:   fmt.Sprintf("/resumes/%d/preview", id),
		op:     "fetch resume preview",
		auth:   true,
	})
	if err != nil {
		return "", err
	}
	return firstString(b, "text", "preview", "content"), nil
}

// InterviewQuestions generates practice questions for a role.
func (c *Client) InterviewQuestions(ctx context.Context, jobTitle, company, description string) ([]string, error) {
	payload := map[string]string{
		"job_title":       jobTitle,
		"company":         company,
		"job_description": description,
	}
	b, err := c.postBytes(ctx, call{
		method: http.MethodPost,
		path:   "/interview/questions",
		op:     "generate questions",
		auth:   true,
	}, payload)
	if err != nil {
		return nil, err
	}
	return stringList(b, "questions"), nil
}

// InterviewFeedback critiques an answer to a practice question.
func (c *Client) InterviewFeedback(ctx context.Context, jobTitle, question, answer string) (string, error) {
	payload := map[string]string{
		"job_title": jobTitle,
		"question":  question,
		"answer":    answer,
	}
	b, err := c.postBytes(ctx, call{
		method: http.MethodPost,
		path:   "/interview/feedback",
		op:     "generate feedback",
		auth:   true,
	}, payload)
	if err != nil {
		return "", err
	}
	return firstString(b, "feedback"), nil
}

// GenerateCoverLetter produces a letter tailored to a job/resume pair.
func (c *Client) GenerateCoverLetter(ctx context.Context, jobID, resumeID int64) (string, error) {
	payload := map[string]int64{
		"job_id":    jobID,
		"resume_id": resumeID,
	}
	b, err := c.postBytes(ctx, call{
		method: http.MethodPost,
		path:   "/cover-letter/generate",
		op:     "generate cover letter",
		auth:   true,
	}, payload)
	if err != nil {
		return "", err
	}
	return firstString(b, "cover_letter", "content"), nil
}

// DashboardStats returns the aggregate counters. On any failure the zero
// Stats value is returned alongside the error so callers can show a zeroed
// dashboard instead of propagating.
func (c *Client) DashboardStats(ctx context.Context) (Stats, error) {
	var out Stats
	err := c.getJSON(ctx, call{
		method: http.MethodGet,
		path:   "/dashboard/stats",
		op:     "fetch stats",
		auth:   true,
	}, &out)
	if err != nil {
		return Stats{}, err
	}
	return out, nil
}

func (c *Client) postBytes(ctx context.Context, cl call, payload any) ([]byte, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, &Error{Op: cl.op, cause: err}
	}
	cl.body = bytes.NewReader(b)
	cl.contentType = "application/json"
	return c.do(ctx, cl)
}
