package interactions

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
)

// BioGRID queries the BioGRID REST service. Response parsing is not
// implemented yet: Partners validates the response and returns no partners.
type BioGRID struct {
	BaseURL   string
	AccessKey string
	TaxID     int
	Client    *http.Client
}

func NewBioGRID(baseURL, accessKey string, taxID int) *BioGRID {
	if baseURL == "" {
		baseURL = "https://webservice.thebiogrid.org"
	}
	return &BioGRID{
		BaseURL:   strings.TrimRight(baseURL, "/"),
		AccessKey: accessKey,
		TaxID:     taxID,
		Client:    &http.Client{},
	}
}

func (s *BioGRID) Name() string { return "BioGRID" }

func (s *BioGRID) Partners(ctx context.Context, accession string) ([]string, error) {
	q := url.Values{}
	q.Set("accessKey", s.AccessKey)
	q.Set("format", "json")
	q.Set("searchNames", "true")
	q.Set("geneList", accession)
	q.Set("includeInteractors", "true")
	q.Set("taxId", strconv.Itoa(s.TaxID))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.BaseURL+"/interactions/?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("biogrid: build request: %w", err)
	}

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("biogrid: request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("biogrid: status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	// an object keyed by interaction id, or [] when nothing matched
	var payload any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("biogrid: decode json: %w", err)
	}

	// TODO: map OFFICIAL_SYMBOL_A/B of each record to UniProt accessions.
	return nil, nil
}
