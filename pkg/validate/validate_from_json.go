package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Sardaar2003/fortigatex-sub001/internal/domain"
	"github.com/Sardaar2003/fortigatex-sub001/internal/ports"
)

// SubmissionRecord: one batch-file line: a submission plus the
// project it targets (the HTTP path carries the project online; batch
// files carry it inline).
type SubmissionRecord struct {
	Project domain.Project `json:"project"`
	domain.Submission
}

// SubmissionFromJSON decodes and shape-checks a single submission
// record. Unknown and trailing fields are rejected.
func SubmissionFromJSON(ctx context.Context, validator ports.SubmissionValidator, raw []byte) (*SubmissionRecord, error) {
	var rec SubmissionRecord
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&rec); err != nil {
		return nil, fmt.Errorf("invalid json: %w", err)
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return nil, fmt.Errorf("invalid json: trailing data")
	}
	if !rec.Project.Valid() {
		return nil, fmt.Errorf("%w: unknown project %q", ErrInvalidSubmission, rec.Project)
	}
	rec.Submission.Project = rec.Project
	if err := validator.Validate(ctx, &rec.Submission); err != nil {
		return nil, err
	}
	return &rec, nil
}
