package uniprot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"chapminer/pkg/models"
)

const (
	FromEntryName = "UniProtKB_AC-ID"
	ToUniProtKB   = "UniProtKB"
)

// Target is the "to" side of an ID mapping result. Depending on the target
// database it is either a plain identifier string or a whole UniProtKB entry
// record; UnmarshalJSON resolves both shapes into Accession.
type Target struct {
	Accession string
	Raw       string
}

func (t *Target) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	t.Raw = string(data)
	t.Accession = ""

	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		t.Raw = s
		t.Accession = strings.TrimSpace(s)
	case '{':
		t.Raw = truncate(t.Raw, 120)
		var rec struct {
			PrimaryAccession json.RawMessage `json:"primaryAccession"`
		}
		if err := json.Unmarshal(data, &rec); err != nil {
			return err
		}
		var acc string
		if json.Unmarshal(rec.PrimaryAccession, &acc) == nil {
			t.Accession = strings.TrimSpace(acc)
		}
	}
	// numbers, arrays and records without a string primaryAccession stay
	// unresolved
	return nil
}

type MappingResult struct {
	Results []struct {
		From string `json:"from"`
		To   Target `json:"to"`
	} `json:"results"`
	FailedIDs []string `json:"failedIds"`
}

type jobStatus struct {
	JobStatus string          `json:"jobStatus"`
	Results   json.RawMessage `json:"results"`
	Messages  []string        `json:"messages"`
}

var ErrJobFailed = errors.New("uniprot: id mapping job failed")

// MapIDs submits one ID mapping job for all ids, waits for it and returns
// the full (unpaginated) result set.
func (c *Client) MapIDs(ctx context.Context, from, to string, ids []string) (*MappingResult, error) {
	form := url.Values{}
	form.Set("from", from)
	form.Set("to", to)
	form.Set("ids", strings.Join(ids, ","))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.BaseURL+"/idmapping/run", strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("uniprot: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	body, _, err := c.do(req)
	if err != nil {
		return nil, err
	}
	var run struct {
		JobID string `json:"jobId"`
	}
	if err := json.Unmarshal(body, &run); err != nil {
		return nil, fmt.Errorf("uniprot: decode run response: %w", err)
	}
	if run.JobID == "" {
		return nil, fmt.Errorf("uniprot: run response has no jobId: %s", truncate(string(body), 200))
	}

	if err := c.waitForJob(ctx, run.JobID); err != nil {
		return nil, err
	}

	resultsURL := fmt.Sprintf("%s/idmapping/%sresults/stream/%s", c.BaseURL, resultsPrefix(to), url.PathEscape(run.JobID))
	body, _, err = c.get(ctx, resultsURL)
	if err != nil {
		return nil, err
	}

	var res MappingResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("uniprot: decode mapping results: %w", err)
	}
	return &res, nil
}

func (c *Client) waitForJob(ctx context.Context, jobID string) error {
	statusURL := fmt.Sprintf("%s/idmapping/status/%s", c.BaseURL, url.PathEscape(jobID))
	for {
		body, _, err := c.get(ctx, statusURL)
		if err != nil {
			return err
		}
		var st jobStatus
		if err := json.Unmarshal(body, &st); err != nil {
			return fmt.Errorf("uniprot: decode job status: %w", err)
		}

		// a finished job redirects to its first result page
		if len(st.Results) > 0 {
			return nil
		}
		switch strings.ToUpper(st.JobStatus) {
		case "FINISHED":
			return nil
		case "NEW", "RUNNING", "":
		default:
			return fmt.Errorf("%w: %s %s", ErrJobFailed, st.JobStatus, strings.Join(st.Messages, "; "))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(c.PollInterval):
		}
	}
}

// resultsPrefix is the path segment UniProt uses for entry-returning targets.
func resultsPrefix(to string) string {
	switch to {
	case "UniProtKB", "UniProtKB-Swiss-Prot":
		return "uniprotkb/"
	case "UniRef50", "UniRef90", "UniRef100":
		return "uniref/"
	case "UniParc":
		return "uniparc/"
	default:
		return ""
	}
}

// MapNames maps UniProt entry names (or accessions) to primary accessions.
// Names the service cannot map are absent from the result. When a name
// appears twice in the results the last value wins, at its first position.
func (c *Client) MapNames(ctx context.Context, names []string) ([]models.MappedName, error) {
	res, err := c.MapIDs(ctx, FromEntryName, ToUniProtKB, names)
	if err != nil {
		return nil, err
	}

	out := make([]models.MappedName, 0, len(res.Results))
	pos := make(map[string]int, len(res.Results))
	for _, r := range res.Results {
		m := models.MappedName{Name: r.From, Accession: r.To.Accession, Raw: r.To.Raw}
		if i, ok := pos[r.From]; ok {
			out[i] = m
			continue
		}
		pos[r.From] = len(out)
		out = append(out, m)
	}
	return out, nil
}
