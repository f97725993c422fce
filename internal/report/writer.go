// Package report emits the HSSP homology report in its fixed-column text
// format. It consumes an already-built hssp.Report and a writer; it owns
// no file handles and parses nothing.
package report

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/csander/hssp/internal/hssp"
	"github.com/csander/hssp/internal/residue"
)

// residueColumns is the fixed V,L,I,M,F,W,Y,G,A,P,S,T,C,H,R,K,Q,E,N,D order
// the SEQUENCE PROFILE section's header uses; it is not the alphabetical
// order package residue stores matrices in, so every profile row is
// re-indexed through this table.
var residueColumns = [residue.Count]byte{
	'V', 'L', 'I', 'M', 'F', 'W', 'Y', 'G', 'A', 'P',
	'S', 'T', 'C', 'H', 'R', 'K', 'Q', 'E', 'N', 'D',
}

var residueColumnIndex [residue.Count]residue.Code

func init() {
	for i, letter := range residueColumns {
		for c := residue.Code(0); int(c) < residue.Count; c++ {
			if residue.Letter(c) == letter {
				residueColumnIndex[i] = c
				break
			}
		}
	}
}

// Header carries the per-dataset metadata the report's fixed preamble
// needs, all of which comes from outside the core (a PDB entry, a search
// database, the CLI's configured threshold).
type Header struct {
	PDBID         string
	Date          time.Time
	SeqBaseName   string
	SeqBaseVer    string
	Description   []string
	Threshold     float64
	NChain        int
	UsedChains    []byte // present only when chain filtering dropped a chain
	SeqLength     int
}

const (
	idWidth   = 12
	accWidth  = 10
	pdbWidth  = 4
	blockSize = 70
	wrapWidth = 100
)

// Write emits the complete HSSP report for rep to w.
func Write(w io.Writer, rep *hssp.Report, h Header) error {
	bw := bufio.NewWriter(w)

	writePreamble(bw, rep, h)
	writeProteinTable(bw, rep)
	writeAlignmentBlocks(bw, rep)
	writeProfileSection(bw, rep)
	writeInsertionList(bw, rep)
	fmt.Fprintln(bw, "//")

	return bw.Flush()
}

func writePreamble(bw *bufio.Writer, rep *hssp.Report, h Header) {
	fmt.Fprintln(bw, "HSSP       HOMOLOGY DERIVED SECONDARY STRUCTURE OF PROTEINS , VERSION 2.0 2011")
	fmt.Fprintf(bw, "PDBID      %s\n", h.PDBID)
	fmt.Fprintf(bw, "DATE       file generated on %s\n", h.Date.Format("2006-01-02"))
	fmt.Fprintf(bw, "SEQBASE    %s version %s\n", h.SeqBaseName, h.SeqBaseVer)
	fmt.Fprintf(bw, "THRESHOLD  according to: t(L)=(290.15 * L ** -0.562) + %.0f\n", h.Threshold*100)
	fmt.Fprintln(bw, "REFERENCE  Sander C., Schneider R. : Database of homology-derived protein structures.")
	fmt.Fprintln(bw, "CONTACT    Produced by this module's HSSP report writer.")
	for _, line := range h.Description {
		fmt.Fprintln(bw, line)
	}
	fmt.Fprintf(bw, "SEQLENGTH  %5d\n", h.SeqLength)
	fmt.Fprintf(bw, "NCHAIN      %4d chain(s) in %s data set\n", h.NChain, h.PDBID)
	if len(h.UsedChains) > 0 && len(h.UsedChains) != h.NChain {
		chains := make([]string, len(h.UsedChains))
		for i, c := range h.UsedChains {
			chains[i] = string(c)
		}
		fmt.Fprintf(bw, "KCHAIN      %4d chain(s) used here ; chains(s) : %s\n", len(h.UsedChains), strings.Join(chains, ","))
	}
	fmt.Fprintf(bw, "NALIGN      %4d\n", len(rep.Hits))
	writeNotation(bw)
}

func writeNotation(bw *bufio.Writer) {
	fmt.Fprintln(bw, "NOTATION : ")
	fmt.Fprintln(bw, "  ID  : EMBL/SWISSPROT identifier of the aligned (homologous) protein")
	fmt.Fprintln(bw, "  STRID: if the 4-letter PDB-code is given, then the alignment was")
	fmt.Fprintln(bw, "         performed on a known structure")
	fmt.Fprintln(bw, "  %IDE : percentage of identical residues")
	fmt.Fprintln(bw, "  %WSIM: weighted similarity score")
	fmt.Fprintln(bw, "  IFIR : first residue of the alignment in the test sequence")
	fmt.Fprintln(bw, "  ILAS : last residue of the alignment in the test sequence")
	fmt.Fprintln(bw, "  JFIR : first residue of the alignment in the homologue")
	fmt.Fprintln(bw, "  JLAS : last residue of the alignment in the homologue")
	fmt.Fprintln(bw, "  LALI : length of the alignment excluding insertions and deletions")
	fmt.Fprintln(bw, "  NGAP : number of gaps in the alignment")
	fmt.Fprintln(bw, "  LGAP : total length of all gaps")
	fmt.Fprintln(bw, "  LSEQ2: length of the entire sequence of the homologue")
	fmt.Fprintln(bw, "  ACCNUM: SWISSPROT accession number")
	fmt.Fprintln(bw, "  PROTEIN: one-line description of the homologue")
	fmt.Fprintln(bw, "  SeqNo : residue number in the test sequence")
	fmt.Fprintln(bw, "  PDBNo : residue number in the PDB entry")
	fmt.Fprintln(bw, "  AA    : amino acid in the test sequence (query)")
	fmt.Fprintln(bw, "  STRUCTURE: secondary structure and accessibility from DSSP")
	fmt.Fprintln(bw, "  BP1,BP2: residue numbers of bridge partners")
	fmt.Fprintln(bw, "  ACC   : solvent accessibility")
	fmt.Fprintln(bw, "  NOCC  : number of aligned sequences spanning this position")
	fmt.Fprintln(bw, "  VAR   : sequence variability at this position")
	fmt.Fprintln(bw, "  NDEL  : number of homologues with a deletion here")
	fmt.Fprintln(bw, "  NINS  : number of homologues with an insertion here")
	fmt.Fprintln(bw, "  ENTROPY: entropy measure of sequence variability at this position")
	fmt.Fprintln(bw, "  RELENT: entropy normalized by the maximum possible entropy")
	fmt.Fprintln(bw, "  WEIGHT: conservation weight")
}

func pad(s string, n int) string {
	if len(s) > n {
		return s[:n]
	}
	return s
}

func writeProteinTable(bw *bufio.Writer, rep *hssp.Report) {
	fmt.Fprintln(bw, "## PROTEINS : identifier and alignment statistics")
	fmt.Fprintln(bw, "  NR.    ID         STRID   %IDE %WSIM IFIR ILAS JFIR JLAS LALI NGAP LGAP LSEQ2 ACCNUM     PROTEIN")
	for _, h := range rep.Hits {
		row := rep.Entries[h.RowIndex]
		id := pad(row.ID, idWidth)
		strid := ""
		if h.Chain != 0 {
			strid = string(h.Chain)
		}
		strid = pad(strid, pdbWidth)
		fmt.Fprintf(bw, "%5d : %-12s%-4s    %4.2f  %4.2f%5d%5d%5d%5d%5d%5d%5d%5d  %-10s %s\n",
			h.SerialNo, id, strid,
			h.Identity, h.Similarity,
			h.QueryFirst, h.QueryLast, h.SubjectFirst+h.ResidueOffset, h.SubjectLast+h.ResidueOffset,
			h.Length, h.Gaps, h.GapN, row.Len(),
			pad(row.Accession, accWidth), row.Description)
	}
}

func writeAlignmentBlocks(bw *bufio.Writer, rep *hssp.Report) {
	for start := 0; start < len(rep.Hits); start += blockSize {
		end := start + blockSize
		if end > len(rep.Hits) {
			end = len(rep.Hits)
		}
		fmt.Fprintf(bw, "## ALIGNMENTS %04d - %04d\n", start+1, end)
		fmt.Fprintln(bw, " SeqNo  PDBNo AA STRUCTURE BP1 BP2  ACC NOCC  VAR  "+decadeRuler(end-start))
		for _, col := range rep.Columns {
			dssp := pad(col.DSSP, 34)
			for len(dssp) < 34 {
				dssp += " "
			}
			var slice strings.Builder
			for _, h := range rep.Hits[start:end] {
				if col.SeqPos < len(h.Display) {
					slice.WriteByte(h.Display[col.SeqPos])
				} else {
					slice.WriteByte(' ')
				}
			}
			fmt.Fprintf(bw, " %5d%s%4d %4d  %s\n", col.SeqPos+1, dssp, col.NOcc, 100-weightPercent(col.Weight), slice.String())
		}
	}
}

func decadeRuler(n int) string {
	var b strings.Builder
	for i := 0; i < n; i++ {
		if i%10 == 0 {
			b.WriteByte('|')
		} else {
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func weightPercent(w float64) int {
	return int(math.Round(w * 100))
}

func writeProfileSection(bw *bufio.Writer, rep *hssp.Report) {
	fmt.Fprintln(bw, "## SEQUENCE PROFILE AND ENTROPY")
	fmt.Fprintln(bw, " SeqNo PDBNo   V   L   I   M   F   W   Y   G   A   P   S   T   C   H   R   K   Q   E   N   D  NOCC NDEL NINS ENTROPY RELENT WEIGHT")
	for _, col := range rep.Columns {
		fmt.Fprintf(bw, "%6d %5d", col.SeqPos+1, col.PDBNr)
		for _, code := range residueColumnIndex {
			fmt.Fprintf(bw, "%4d", col.Dist[code])
		}
		relent := 0.0
		if math.Log(20) > 0 {
			relent = col.Entropy / math.Log(20)
		}
		fmt.Fprintf(bw, "  %4d %4d %4d  %6.2f  %5.2f  %5.2f\n",
			col.NOcc, col.NDel, col.NIns, col.Entropy, relent, col.Weight)
	}
}

func writeInsertionList(bw *bufio.Writer, rep *hssp.Report) {
	fmt.Fprintln(bw, "## INSERTION LIST")
	fmt.Fprintln(bw, " AliNo  IPOS  JPOS   Len Sequence")
	for _, h := range rep.Hits {
		for _, ins := range h.Insertions {
			writeWrappedInsertion(bw, h.SerialNo, ins)
		}
	}
}

const continuationPrefix = "     +                   "

func writeWrappedInsertion(bw *bufio.Writer, serial int, ins hssp.Insertion) {
	fmt.Fprintf(bw, "%5d %5d %5d %5d ", serial, ins.IPos, ins.JPos, len(ins.Seq)-2)
	seq := ins.Seq
	first := wrapWidth
	if len(seq) <= first {
		fmt.Fprintln(bw, seq)
		return
	}
	fmt.Fprintln(bw, seq[:first])
	seq = seq[first:]
	for len(seq) > 0 {
		n := wrapWidth
		if n > len(seq) {
			n = len(seq)
		}
		fmt.Fprintln(bw, continuationPrefix+seq[:n])
		seq = seq[n:]
	}
}

