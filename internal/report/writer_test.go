package report

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/csander/hssp/internal/hssp"
	"github.com/csander/hssp/internal/seqset"
	"github.com/stretchr/testify/require"
)

func mustEntry(t *testing.T, serial int, id, letters string) *seqset.Entry {
	t.Helper()
	codes, err := seqset.Decode(letters)
	require.NoError(t, err)
	return seqset.NewEntry(serial, id, codes)
}

func buildSmallReport(t *testing.T) *hssp.Report {
	t.Helper()
	entries := []*seqset.Entry{
		mustEntry(t, 0, "query", "ACDEFGHIKLMNPQRSTVWY"),
		mustEntry(t, 1, "close", "ACDEFGHIKLMNPQRSTVWY"),
	}
	rep, err := hssp.Build(entries, nil, hssp.DefaultOptions())
	require.NoError(t, err)
	return rep
}

func TestWriteProducesExpectedSections(t *testing.T) {
	rep := buildSmallReport(t)
	var buf bytes.Buffer

	err := Write(&buf, rep, Header{
		PDBID:       "1ABC",
		Date:        time.Date(2026, 8, 6, 0, 0, 0, 0, time.UTC),
		SeqBaseName: "UNIPROT",
		SeqBaseVer:  "2026_01",
		Threshold:   0.05,
		NChain:      1,
		SeqLength:   20,
	})
	require.NoError(t, err)

	out := buf.String()
	require.Contains(t, out, "HSSP       HOMOLOGY DERIVED SECONDARY STRUCTURE")
	require.Contains(t, out, "PDBID      1ABC")
	require.Contains(t, out, "## PROTEINS")
	require.Contains(t, out, "## ALIGNMENTS")
	require.Contains(t, out, "## SEQUENCE PROFILE AND ENTROPY")
	require.Contains(t, out, "## INSERTION LIST")
	require.True(t, strings.HasSuffix(strings.TrimRight(out, "\n"), "//"))
}

func TestWriteWrapsLongInsertions(t *testing.T) {
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	long := strings.Repeat("x", 150)
	writeWrappedInsertion(bw, 1, hssp.Insertion{IPos: 1, JPos: 2, Seq: long})
	require.NoError(t, bw.Flush())

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	require.True(t, strings.HasPrefix(lines[1], continuationPrefix))
}
