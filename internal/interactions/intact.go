package interactions

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const intactBase = "https://www.ebi.ac.uk/Tools/webservices/psicquic/intact/webservices/current/search"

// IntAct queries the IntAct PSICQUIC service in MITAB 2.5 format.
type IntAct struct {
	BaseURL string
	Client  *http.Client
}

func NewIntAct(baseURL string, timeout time.Duration) *IntAct {
	if baseURL == "" {
		baseURL = intactBase
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &IntAct{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: timeout},
	}
}

func (s *IntAct) Name() string { return "IntAct" }

func (s *IntAct) Partners(ctx context.Context, accession string) ([]string, error) {
	u := fmt.Sprintf("%s/interactor/%s?format=tab25", s.BaseURL, url.PathEscape(accession))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("intact: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("intact: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("intact: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	partners, err := ParseMITAB(resp.Body, accession)
	if err != nil {
		return nil, fmt.Errorf("intact: parse: %w", err)
	}
	return partners, nil
}
