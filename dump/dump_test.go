package dump_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transferlist "github.com/tf-shared/transferlist"
	"github.com/tf-shared/transferlist/dump"
)

func TestDumpIncludesHeaderAndEntries(t *testing.T) {
	region := make([]byte, 4096)
	tl, ok := transferlist.Init(region)
	require.True(t, ok)

	_, ok = tl.Add(transferlist.TagFDT, 4, []byte{1, 2, 3, 4})
	require.True(t, ok)

	var buf bytes.Buffer
	dump.Dump(&buf, tl, false)

	out := buf.String()
	assert.Contains(t, out, "signature")
	assert.Contains(t, out, "Entry 0:")
	assert.Contains(t, out, "tag_id")
	assert.NotContains(t, out, "data       ")
}

func TestDumpVerboseIncludesPayload(t *testing.T) {
	region := make([]byte, 4096)
	tl, ok := transferlist.Init(region)
	require.True(t, ok)

	_, ok = tl.Add(transferlist.TagFDT, 4, []byte{1, 2, 3, 4})
	require.True(t, ok)

	var buf bytes.Buffer
	dump.Dump(&buf, tl, true)

	assert.Contains(t, buf.String(), "data       01 02 03 04")
}

func TestDumpHandlesNilList(t *testing.T) {
	var buf bytes.Buffer
	assert.NotPanics(t, func() { dump.Dump(&buf, nil, false) })
	assert.Empty(t, buf.String())
}
