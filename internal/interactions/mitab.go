package interactions

import (
	"bufio"
	"io"
	"strings"

	"chapminer/pkg/models"
)

// UniProtPrefix is the only identifier namespace the parser accepts.
const UniProtPrefix = "uniprotkb:"

// ParseIdentifier extracts a UniProt accession from a MITAB identifier
// field such as "uniprotkb:P12345-2". Fields may list alternatives separated
// by '|'; the first uniprotkb entry wins. The isoform suffix is dropped.
func ParseIdentifier(raw string) (string, bool) {
	for _, tok := range strings.Split(raw, "|") {
		tok = strings.Trim(strings.TrimSpace(tok), `"`)
		if len(tok) < len(UniProtPrefix) || !strings.EqualFold(tok[:len(UniProtPrefix)], UniProtPrefix) {
			continue
		}
		id := tok[len(UniProtPrefix):]
		if i := strings.IndexByte(id, '-'); i >= 0 {
			id = id[:i]
		}
		// MITAB 2.7 may append a "(display)" annotation
		if i := strings.IndexByte(id, '('); i >= 0 {
			id = id[:i]
		}
		id = models.NormalizeAccession(id)
		if id != "" {
			return id, true
		}
	}
	return "", false
}

// ParseMITAB reads a PSI-MITAB tab-delimited response and returns the
// distinct accessions found in the interactor A and B columns, excluding
// self. Blank and '#' lines are ignored, as are lines with fewer than two
// columns.
func ParseMITAB(r io.Reader, self string) ([]string, error) {
	set := newPartnerSet(models.NormalizeAccession(self))

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for sc.Scan() {
		line := sc.Text()
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cols := strings.Split(line, "\t")
		if len(cols) < 2 {
			continue
		}
		for _, raw := range cols[:2] {
			if id, ok := ParseIdentifier(raw); ok {
				set.add(id)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return set.sorted(), nil
}
