// Package msaeng provides a high-level API over the progressive aligner and
// HSSP report builder: FASTA ingestion, alignment, and report writing in one
// small surface, so a command-line tool does not have to reach into
// internal/* directly.
package msaeng

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/csander/hssp/internal/hssp"
	"github.com/csander/hssp/internal/msa"
	"github.com/csander/hssp/internal/report"
	"github.com/csander/hssp/internal/residue"
	"github.com/csander/hssp/internal/seqset"
)

// Re-export the core types callers need as simple aliases, so callers never
// import internal/* directly.
type (
	Entry         = seqset.Entry
	Alignment     = msa.Alignment
	AlignOptions  = msa.Options
	ReportOptions = hssp.Options
	Report        = hssp.Report
	ResidueMeta   = hssp.ResidueMeta
	ReportHeader  = report.Header
)

// DefaultAlignOptions returns the progressive aligner's defaults.
func DefaultAlignOptions() AlignOptions { return msa.DefaultOptions() }

// DefaultReportOptions returns the HSSP report builder's defaults.
func DefaultReportOptions() ReportOptions { return hssp.DefaultOptions() }

// Align runs the progressive MSA pipeline over entries.
func Align(entries []*Entry, opts AlignOptions) (*Alignment, error) {
	return msa.Build(entries, opts)
}

// BuildReport reduces a completed alignment into an HSSP report. entries
// must have the query sequence first. Align returns its entries in guide
// tree order, which does not necessarily keep the input's first entry first.
func BuildReport(entries []*Entry, meta []ResidueMeta, opts ReportOptions) (*Report, error) {
	return hssp.Build(entries, meta, opts)
}

// WriteReport renders rep to w in the fixed-column HSSP text format.
func WriteReport(w io.Writer, rep *Report, h ReportHeader) error {
	return report.Write(w, rep, h)
}

// ReadFASTA reads entries from a FASTA file, assigning each a Serial equal
// to its position in the file.
func ReadFASTA(filename string) ([]*Entry, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("msaeng: opening %s: %w", filename, err)
	}
	defer f.Close()
	return ParseFASTA(f)
}

// ParseFASTA parses FASTA records from r into entries. A record's header is
// split at its first space into an ID and a free-text description.
func ParseFASTA(r io.Reader) ([]*Entry, error) {
	var entries []*Entry
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1<<20)

	serial := 0
	var id, desc string
	var letters strings.Builder

	flush := func() error {
		if letters.Len() == 0 {
			return nil
		}
		codes, err := seqset.Decode(letters.String())
		if err != nil {
			return fmt.Errorf("msaeng: record %q: %w", id, err)
		}
		entry := seqset.NewEntry(serial, id, codes)
		entry.Description = desc
		entries = append(entries, entry)
		serial++
		letters.Reset()
		return nil
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		if line[0] == '>' {
			if err := flush(); err != nil {
				return nil, err
			}
			header := line[1:]
			parts := strings.SplitN(header, " ", 2)
			id = parts[0]
			desc = ""
			if len(parts) > 1 {
				desc = parts[1]
			}
			continue
		}
		letters.WriteString(line)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("msaeng: reading input: %w", err)
	}
	return entries, nil
}

// WriteFASTA writes entries to filename, one wrapped-at-80 record per entry.
func WriteFASTA(filename string, entries []*Entry) error {
	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("msaeng: creating %s: %w", filename, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	for _, e := range entries {
		if err := writeFASTARecord(bw, e); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeFASTARecord(w *bufio.Writer, e *Entry) error {
	header := ">" + e.ID
	if e.Description != "" {
		header += " " + e.Description
	}
	if _, err := fmt.Fprintln(w, header); err != nil {
		return err
	}
	letters := make([]byte, e.Len())
	for i, c := range e.Residues {
		letters[i] = residue.Letter(c)
	}
	const width = 80
	for start := 0; start < len(letters); start += width {
		end := start + width
		if end > len(letters) {
			end = len(letters)
		}
		if _, err := w.Write(letters[start:end]); err != nil {
			return err
		}
		if err := w.WriteByte('\n'); err != nil {
			return err
		}
	}
	return nil
}
