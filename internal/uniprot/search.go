package uniprot

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"chapminer/internal/dataset"
)

// TSV column headers for the fields requested by SearchDomains.
const (
	ColEntry        = "Entry"
	ColProteinNames = "Protein names"
	ColPfam         = "Pfam"
)

var DomainFields = []string{"accession", "protein_name", "xref_pfam"}

const searchPageSize = 500

var nextLinkRe = regexp.MustCompile(`<([^>]+)>;\s*rel="next"`)

// Search runs a UniProtKB query and returns the TSV result as a table,
// following pagination links until the last page.
func (c *Client) Search(ctx context.Context, query string, fields []string) (*dataset.Table, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("fields", strings.Join(fields, ","))
	q.Set("format", "tsv")
	q.Set("size", fmt.Sprintf("%d", searchPageSize))
	next := c.BaseURL + "/uniprotkb/search?" + q.Encode()

	var out *dataset.Table
	for next != "" {
		body, header, err := c.get(ctx, next)
		if err != nil {
			return nil, err
		}
		page, err := parseTSV(body)
		if err != nil {
			return nil, fmt.Errorf("uniprot: parse search page: %w", err)
		}
		if out == nil {
			out = page
		} else {
			out.Rows = append(out.Rows, page.Rows...)
		}
		next = nextLink(header)
	}
	return out, nil
}

// SearchDomains looks up name and Pfam cross-references for accessions in
// a single OR-combined query.
func (c *Client) SearchDomains(ctx context.Context, accessions []string) (*dataset.Table, error) {
	terms := make([]string, 0, len(accessions))
	for _, acc := range accessions {
		terms = append(terms, "accession:"+acc)
	}
	return c.Search(ctx, strings.Join(terms, " OR "), DomainFields)
}

func nextLink(h http.Header) string {
	for _, v := range h.Values("Link") {
		if m := nextLinkRe.FindStringSubmatch(v); m != nil {
			return m[1]
		}
	}
	return ""
}

// parseTSV reads UniProt's tab-separated output. UniProt never quotes
// fields, so lines are split on tabs as-is.
func parseTSV(body []byte) (*dataset.Table, error) {
	sc := bufio.NewScanner(bytes.NewReader(body))
	sc.Buffer(make([]byte, 0, 64*1024), 8*1024*1024)

	var t *dataset.Table
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if t == nil {
			if strings.TrimSpace(line) == "" {
				continue
			}
			t = dataset.NewTable(strings.Split(line, "\t")...)
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, "\t")
		row := make([]string, len(t.Columns))
		copy(row, fields)
		t.Rows = append(t.Rows, row)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	if t == nil {
		t = dataset.NewTable()
	}
	return t, nil
}
