// Package dialect infers the encoding and field delimiter of an uploaded
// delimited text file. Sniffing is a pure function of the input bytes and
// never touches shared state.
package dialect

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"

	"tablescope/internal/errors"
)

// Dialect describes the detected convention of a delimited text file
type Dialect struct {
	Delimiter rune
	Charset   string
}

// delimiterCandidates in tie-break order: comma wins over semicolon over tab.
var delimiterCandidates = []rune{',', ';', '\t'}

// maxSampleLines bounds how many lines the delimiter scorer inspects.
const maxSampleLines = 10

// Sniff decodes raw upload bytes to text and infers the field delimiter.
// Bytes that cannot be represented as text fail with an ENCODING_ERROR.
func Sniff(raw []byte) (string, Dialect, error) {
	text, charset, err := decode(raw)
	if err != nil {
		return "", Dialect{}, err
	}

	return text, Dialect{
		Delimiter: DetectDelimiter(text),
		Charset:   charset,
	}, nil
}

// decode converts raw bytes to a UTF-8 string. Valid UTF-8 passes through;
// anything else goes through charset detection and a single-byte decoder,
// mirroring the usual utf-8 then latin-1 upload fallback.
func decode(raw []byte) (string, string, error) {
	// NUL bytes mean binary content, not a delimited text table.
	if bytes.IndexByte(raw, 0x00) >= 0 {
		return "", "", errors.EncodingError("file content is binary, not text")
	}

	// Strip a UTF-8 BOM if present.
	raw = bytes.TrimPrefix(raw, []byte{0xEF, 0xBB, 0xBF})

	if utf8.Valid(raw) {
		return string(raw), "utf-8", nil
	}

	charset := "windows-1252"
	if det, err := chardet.NewTextDetector().DetectBest(raw); err == nil && det != nil {
		charset = strings.ToLower(det.Charset)
	}

	var cm *charmap.Charmap
	switch charset {
	case "windows-1251", "cp1251":
		cm = charmap.Windows1251
	case "iso-8859-1", "latin1":
		cm = charmap.ISO8859_1
	case "windows-1252", "cp1252", "iso-8859-15":
		cm = charmap.Windows1252
	default:
		// Unknown single-byte charsets still decode losslessly as Windows-1252;
		// multi-byte charsets we cannot vouch for are rejected.
		if strings.HasPrefix(charset, "utf-") || strings.HasPrefix(charset, "gb") ||
			strings.HasPrefix(charset, "shift") || strings.HasPrefix(charset, "euc") ||
			strings.HasPrefix(charset, "big5") {
			return "", "", errors.EncodingError("file content is not decodable as text (detected charset: " + charset + ")")
		}
		cm = charmap.Windows1252
		charset = "windows-1252"
	}

	decoded, err := cm.NewDecoder().Bytes(raw)
	if err != nil {
		return "", "", errors.EncodingError("file content is not decodable as text")
	}
	return string(decoded), charset, nil
}

// DetectDelimiter evaluates the candidate delimiters against a sample of
// lines and picks the one yielding the most consistent column count.
// A candidate is consistent when every sampled line parses into the same
// number of fields; the consistent candidate with the widest table wins,
// ties resolving in candidate order. Width-1 consistency matters: for a
// single-column file of decimal-comma numbers the comma is inconsistent
// while the semicolon is consistently width 1, which keeps values like
// "1,5" in one field. The fallback is a comma.
func DetectDelimiter(text string) rune {
	sample := sampleLines(text, maxSampleLines)
	if len(sample) == 0 {
		return ','
	}
	joined := strings.Join(sample, "\n")

	best := ','
	bestWidth := 0

	for _, cand := range delimiterCandidates {
		width := consistentWidth(joined, cand)
		if width > bestWidth {
			best = cand
			bestWidth = width
		}
	}

	return best
}

// consistentWidth returns the shared field count of all sampled lines under
// the candidate delimiter, or 0 when the counts disagree. Fields are counted
// with the same CSV reader configuration the parser uses, so a quoted field
// containing a literal delimiter still counts as one field.
func consistentWidth(sample string, delimiter rune) int {
	reader := csv.NewReader(strings.NewReader(sample))
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	width := 0
	for first := true; ; first = false {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0
		}
		if first {
			width = len(record)
			continue
		}
		if len(record) != width {
			return 0
		}
	}
	return width
}

// sampleLines returns up to limit non-empty lines from the start of the text
func sampleLines(text string, limit int) []string {
	var sample []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, line)
		if len(sample) >= limit {
			break
		}
	}
	return sample
}
