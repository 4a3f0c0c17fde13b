// Package emailcheck wraps the external mailbox-validity service used
// as a pre-submission gate. Only the exact result "valid" is accepted;
// "disposable", "catchall" and "unknown" are rejections carrying the
// result code as the reason. A transport failure is a hard error, not
// a soft rejection (fail-closed).
package emailcheck

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/Sardaar2003/fortigatex-sub001/internal/ports"
)

var _ ports.EmailVerifier = (*Checker)(nil)

type Config struct {
	Endpoint string
	APIKey   string
	Timeout  time.Duration
}

type Checker struct {
	cfg    Config
	client *http.Client
}

func New(cfg Config) *Checker {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Checker{cfg: cfg, client: &http.Client{Timeout: timeout}}
}

type result struct {
	Result string `json:"result"`
}

func (c *Checker) Verify(ctx context.Context, email string) (bool, string, error) {
	q := url.Values{}
	q.Set("email", email)
	q.Set("api_key", c.cfg.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.Endpoint+"?"+q.Encode(), http.NoBody)
	if err != nil {
		return false, "", fmt.Errorf("email check request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return false, "", fmt.Errorf("email check call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return false, "", fmt.Errorf("email check read: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return false, "", fmt.Errorf("email check http %d", resp.StatusCode)
	}

	var r result
	if err := json.Unmarshal(body, &r); err != nil {
		return false, "", fmt.Errorf("email check decode: %w", err)
	}

	if r.Result == "valid" {
		return true, "valid", nil
	}
	// disposable / catchall / unknown / anything else: rejected with
	// the specific code.
	return false, r.Result, nil
}
