package interactions

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseIdentifier(t *testing.T) {
	cases := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"uniprotkb:P12345", "P12345", true},
		{"uniprotkb:P12345-2", "P12345", true},
		{"intact:EBI-123|uniprotkb:Q9Y6K9", "Q9Y6K9", true},
		{"UniProtKB:p0dmv8", "P0DMV8", true},
		{"chebi:\"CHEBI:15422\"", "", false},
		{"intact:EBI-7121510", "", false},
		{"uniprotkb:", "", false},
		{"-", "", false},
	}
	for _, tc := range cases {
		got, ok := ParseIdentifier(tc.raw)
		assert.Equal(t, tc.ok, ok, tc.raw)
		assert.Equal(t, tc.want, got, tc.raw)
	}
}

func TestParseMITAB(t *testing.T) {
	body := strings.Join([]string{
		"# header comment",
		"",
		"uniprotkb:P1\tuniprotkb:P2\tintact:EBI-1\tintact:EBI-2",
		"uniprotkb:P2-3\tuniprotkb:P1\t-\t-",
		"uniprotkb:P3\tchebi:\"CHEBI:1\"",
		"uniprotkb:P1\tuniprotkb:P1",
		"malformed-line-without-tabs",
	}, "\n")

	got, err := ParseMITAB(strings.NewReader(body), "P1")
	require.NoError(t, err)
	assert.Equal(t, []string{"P2", "P3"}, got)
}

func TestIntAct_Partners(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/interactor/P31689", r.URL.Path)
		assert.Equal(t, "tab25", r.URL.Query().Get("format"))
		fmt.Fprint(w, "uniprotkb:P31689\tuniprotkb:P0DMV8\t...\n")
	}))
	defer srv.Close()

	src := NewIntAct(srv.URL, time.Second)
	assert.Equal(t, "IntAct", src.Name())
	assert.Equal(t, time.Second, src.Client.Timeout)

	got, err := src.Partners(context.Background(), "P31689")
	require.NoError(t, err)
	assert.Equal(t, []string{"P0DMV8"}, got)
}

func TestIntAct_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewIntAct(srv.URL, 0).Partners(context.Background(), "P1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestNewIntAct_DefaultTimeout(t *testing.T) {
	src := NewIntAct("", 0)
	assert.Equal(t, 30*time.Second, src.Client.Timeout)
	assert.Equal(t, intactBase, src.BaseURL)
}

func TestBioGRID_ReturnsNoPartners(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		assert.Equal(t, "/interactions/", r.URL.Path)
		assert.Equal(t, "key-1", q.Get("accessKey"))
		assert.Equal(t, "json", q.Get("format"))
		assert.Equal(t, "P31689", q.Get("geneList"))
		assert.Equal(t, "9606", q.Get("taxId"))
		fmt.Fprint(w, `{"103":{"OFFICIAL_SYMBOL_A":"DNAJA1","OFFICIAL_SYMBOL_B":"HSPA1A"}}`)
	}))
	defer srv.Close()

	src := NewBioGRID(srv.URL, "key-1", 9606)
	assert.Equal(t, "BioGRID", src.Name())

	got, err := src.Partners(context.Background(), "P31689")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestBioGRID_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer srv.Close()

	got, err := NewBioGRID(srv.URL, "k", 9606).Partners(context.Background(), "P1")
	require.NoError(t, err)
	assert.Empty(t, got)
}
