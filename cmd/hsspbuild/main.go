// Command hsspbuild reduces a completed multiple sequence alignment into a
// homology-derived secondary-structure report. The first record of the
// input FASTA file is taken as the query row; every other record is
// reduced against it and, if it clears the length-dependent homology
// threshold, kept in the report.
//
// Usage:
//
//	hsspbuild -in aligned.fasta -out report.hssp -pdbid 1ABC [options]
package main

import (
	"bufio"
	"flag"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/csander/hssp/pkg/msaeng"
)

func main() {
	log.SetFlags(0)

	fs := flag.NewFlagSet("hsspbuild", flag.ExitOnError)
	in := fs.String("in", "", "input aligned FASTA file (required, query first)")
	out := fs.String("out", "", "output report path (default: stdout)")
	pdbID := fs.String("pdbid", "UNKNOWN", "PDB identifier for the report header")
	seqBase := fs.String("seqbase", "UNIPROT", "sequence database name for the report header")
	seqBaseVer := fs.String("seqbase-version", "", "sequence database version for the report header")
	threshold := fs.Float64("threshold", 0.05, "margin added to the length-dependent homology curve")
	maxHits := fs.Uint("max-hits", 0, "cap on reported hits (0 is unlimited)")
	minSeqLength := fs.Uint("min-seq-length", 0, "drop candidate rows shorter than this many residues")
	matrix := fs.String("matrix", "GONNET", "substitution matrix family used upstream by the profile aligner")
	workers := fs.Int("workers", 1, "conservation weighting worker count")
	metaPath := fs.String("meta", "", "optional per-residue PDB metadata file (one non-gap query residue per line: chain pdbnr dssp-descriptor)")
	fs.Parse(os.Args[1:])

	if *in == "" {
		fmt.Fprintln(os.Stderr, "Error: -in is required")
		fs.Usage()
		os.Exit(1)
	}

	entries, err := msaeng.ReadFASTA(*in)
	if err != nil {
		log.Fatalf("reading %s: %v", *in, err)
	}

	var meta []msaeng.ResidueMeta
	if *metaPath != "" {
		meta, err = readResidueMeta(*metaPath)
		if err != nil {
			log.Fatalf("reading %s: %v", *metaPath, err)
		}
	}

	opts := msaeng.DefaultReportOptions()
	opts.Threshold = *threshold
	opts.MaxHits = uint32(*maxHits)
	opts.MinSeqLength = uint32(*minSeqLength)
	opts.MatrixName = *matrix
	opts.Workers = *workers

	rep, err := msaeng.BuildReport(entries, meta, opts)
	if err != nil {
		log.Fatalf("building report: %v", err)
	}

	w := os.Stdout
	if *out != "" {
		f, err := os.Create(*out)
		if err != nil {
			log.Fatalf("creating %s: %v", *out, err)
		}
		defer f.Close()
		w = f
	}

	header := msaeng.ReportHeader{
		PDBID:       *pdbID,
		Date:        time.Now(),
		SeqBaseName: *seqBase,
		SeqBaseVer:  *seqBaseVer,
		Threshold:   *threshold,
		NChain:      1,
		SeqLength:   entries[rep.Query].Len(),
	}

	if err := msaeng.WriteReport(w, rep, header); err != nil {
		log.Fatalf("writing report: %v", err)
	}

	log.Printf("reported %d of %d candidate rows for %s", len(rep.Hits), len(entries)-1, *pdbID)
}

// readResidueMeta parses one ResidueMeta per non-blank line of path: chain
// letter, PDB residue number, and the remainder of the line taken verbatim
// as the DSSP descriptor. Lines must appear in query sequence order, one per
// non-gap query residue; a gap in the PDB numbering between consecutive
// lines marks a chain break in the report.
func readResidueMeta(path string) ([]msaeng.ResidueMeta, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var meta []msaeng.ResidueMeta
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return nil, fmt.Errorf("malformed metadata line %q: want chain, pdbnr, [dssp]", line)
		}
		pdbNr, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("malformed PDB number in line %q: %w", line, err)
		}
		dssp := ""
		if idx := strings.IndexAny(line, " \t"); idx >= 0 {
			rest := strings.TrimLeft(line[idx:], " \t")
			if idx2 := strings.IndexAny(rest, " \t"); idx2 >= 0 {
				dssp = strings.TrimLeft(rest[idx2:], " \t")
			}
		}
		meta = append(meta, msaeng.ResidueMeta{
			Chain: fields[0][0],
			PDBNr: pdbNr,
			DSSP:  dssp,
		})
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return meta, nil
}
