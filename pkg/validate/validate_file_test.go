package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
)

const validHPPLine = `{"project":"HPP","campaign_id":"123","email":"a@b.co","phone":"2025550101","session_id":"sess-1"}`

func TestSubmissionFromJSON_Valid(t *testing.T) {
	rec, err := SubmissionFromJSON(context.Background(), NewSubmissionValidator(), []byte(validHPPLine))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rec.Project != domain.ProjectHPP {
		t.Fatalf("project = %q, want HPP", rec.Project)
	}
	if rec.Submission.Project != domain.ProjectHPP {
		t.Fatalf("inner project not propagated: %q", rec.Submission.Project)
	}
	if rec.Submission.Email != "a@b.co" {
		t.Fatalf("email = %q", rec.Submission.Email)
	}
}

func TestSubmissionFromJSON_Rejections(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"malformed", `{"project":`},
		{"unknown field", `{"project":"HPP","campaign_id":"123","email":"a@b.co","phone":"2025550101","session_id":"s","bogus":1}`},
		{"trailing data", validHPPLine + ` {"extra":true}`},
		{"unknown project", `{"project":"XYZ","session_id":"s"}`},
		{"missing required", `{"project":"HPP","email":"a@b.co"}`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if _, err := SubmissionFromJSON(context.Background(), NewSubmissionValidator(), []byte(c.raw)); err == nil {
				t.Fatalf("expected error for %s", c.name)
			}
		})
	}
}

func TestSubmissionFromJSON_ShapeErrorIsSentinel(t *testing.T) {
	raw := `{"project":"HPP","email":"a@b.co"}`
	_, err := SubmissionFromJSON(context.Background(), NewSubmissionValidator(), []byte(raw))
	if !errors.Is(err, ErrInvalidSubmission) {
		t.Fatalf("want ErrInvalidSubmission, got %v", err)
	}
}

func TestValidateJSONLStream_CountsAndEchoesValidLines(t *testing.T) {
	in := strings.Join([]string{
		validHPPLine,
		"",
		`not json at all`,
		`{"project":"HPP","campaign_id":"9","email":"b@c.co","phone":"2025550102","session_id":"sess-2"}`,
		`{"project":"HPP"}`,
	}, "\n")

	var out bytes.Buffer
	res, err := ValidateJSONLStream(context.Background(), NewSubmissionValidator(), strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 2 {
		t.Fatalf("counts = %+v, want 2 valid / 2 invalid", res)
	}

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("output lines = %d, want 2", len(lines))
	}
	var rec SubmissionRecord
	if err := json.Unmarshal([]byte(lines[1]), &rec); err != nil {
		t.Fatalf("output line not json: %v", err)
	}
	if rec.Project != domain.ProjectHPP || rec.Submission.SessionID != "sess-2" {
		t.Fatalf("unexpected echoed record: %+v", rec)
	}
}

func TestValidateFile_JSONLByExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "batch.jsonl")
	body := validHPPLine + "\n" + `broken` + "\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var out bytes.Buffer
	summary, err := ValidateFile(context.Background(), NewSubmissionValidator(), path, FormatAuto, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "1 valid / 1 invalid" {
		t.Fatalf("summary = %q", summary)
	}
}

func TestValidateFile_SingleJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "one.json")
	if err := os.WriteFile(path, []byte(validHPPLine), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var out bytes.Buffer
	summary, err := ValidateFile(context.Background(), NewSubmissionValidator(), path, FormatAuto, &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if summary != "1 valid / 0 invalid" {
		t.Fatalf("summary = %q", summary)
	}
	if !strings.Contains(out.String(), `"session_id":"sess-1"`) {
		t.Fatalf("canonical output missing session_id: %s", out.String())
	}
}

func TestValidateFile_InvalidJSONReportsSummary(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.json")
	if err := os.WriteFile(path, []byte(`{"project":"HPP"}`), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	var out bytes.Buffer
	summary, err := ValidateFile(context.Background(), NewSubmissionValidator(), path, FormatAuto, &out)
	if err == nil {
		t.Fatalf("expected error")
	}
	if summary != "0 valid / 1 invalid" {
		t.Fatalf("summary = %q", summary)
	}
	if out.Len() != 0 {
		t.Fatalf("nothing should be written for an invalid file, got %q", out.String())
	}
}

func TestValidateFile_MissingFile(t *testing.T) {
	if _, err := ValidateFile(context.Background(), NewSubmissionValidator(), filepath.Join(t.TempDir(), "nope.json"), FormatAuto, io.Discard); err == nil {
		t.Fatalf("expected error for missing file")
	}
}
