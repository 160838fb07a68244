package transferlist_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	transferlist "github.com/tf-shared/transferlist"
)

const (
	testTLSize     = 4096
	testTLMaxSize  = 65536
	testTag        = transferlist.Tag(1)
	testDataUint32 = 0xdeadbeef
)

func testData() []byte {
	return []byte{0xef, 0xbe, 0xad, 0xde}
}

func TestInit(t *testing.T) {
	region := make([]byte, testTLSize)

	tl, ok := transferlist.Init(region)
	require.True(t, ok)

	assert.Equal(t, transferlist.Signature, tl.Signature())
	assert.Equal(t, transferlist.Version, tl.Version())
	assert.Equal(t, uint8(transferlist.HeaderSize), tl.HdrSize())
	assert.Equal(t, transferlist.InitMaxAlign, tl.Alignment())
	assert.Equal(t, uint32(transferlist.HeaderSize), tl.Size())
	assert.Equal(t, uint32(testTLSize), tl.MaxSize())
	assert.True(t, tl.HasChecksum())
	assert.True(t, tl.VerifyChecksum())
	assert.Equal(t, transferlist.CheckAll, transferlist.CheckHeader(tl))
}

func TestInitRejectsUnalignedMaxSize(t *testing.T) {
	region := make([]byte, testTLSize+1)
	_, ok := transferlist.Init(region)
	assert.False(t, ok)
}

func TestInitRejectsTooSmallRegion(t *testing.T) {
	region := make([]byte, 8)
	_, ok := transferlist.Init(region)
	assert.False(t, ok)
}

func TestInitAlignment(t *testing.T) {
	for _, size := range []int{24, 32, 64, 4096, 65536} {
		region := make([]byte, size)
		tl, ok := transferlist.Init(region)
		require.True(t, ok, "size %d", size)
		assert.Equal(t, uint32(size), tl.MaxSize())
	}
}

func TestCheckHeaderRejectsBadSignature(t *testing.T) {
	region := make([]byte, testTLSize)
	tl, ok := transferlist.Init(region)
	require.True(t, ok)

	raw := tl.Raw()
	raw[0] ^= 0xff

	assert.Equal(t, transferlist.CheckNone, transferlist.CheckHeader(tl))
}

func TestCheckHeaderRejectsBadChecksum(t *testing.T) {
	region := make([]byte, testTLSize)
	tl, ok := transferlist.Init(region)
	require.True(t, ok)

	raw := tl.Raw()
	raw[4] ^= 0xff

	assert.Equal(t, transferlist.CheckNone, transferlist.CheckHeader(tl))
}

func TestEnsureReusesValidList(t *testing.T) {
	region := make([]byte, testTLSize)
	tl, ok := transferlist.Init(region)
	require.True(t, ok)

	_, ok = tl.Add(testTag, uint32(len(testData())), testData())
	require.True(t, ok)

	ensured, ok := transferlist.Ensure(region)
	require.True(t, ok)
	assert.Equal(t, tl.Size(), ensured.Size())

	_, found := ensured.Find(testTag)
	assert.True(t, found)
}

func TestEnsureInitializesGarbage(t *testing.T) {
	region := make([]byte, testTLSize)
	for i := range region {
		region[i] = 0xaa
	}

	tl, ok := transferlist.Ensure(region)
	require.True(t, ok)
	assert.Equal(t, transferlist.CheckAll, transferlist.CheckHeader(tl))
}

func TestRelocate(t *testing.T) {
	region := make([]byte, testTLMaxSize)
	tl, ok := transferlist.Init(region)
	require.True(t, ok)

	e, ok := tl.Add(testTag, uint32(len(testData())), testData())
	require.True(t, ok)

	newRegion := make([]byte, testTLMaxSize)
	newTL, ok := transferlist.Relocate(tl, newRegion)
	require.True(t, ok)

	assert.Equal(t, transferlist.CheckAll, transferlist.CheckHeader(newTL))
	assert.Equal(t, tl.Size(), newTL.Size())

	found, ok := newTL.Find(testTag)
	require.True(t, ok)
	assert.Equal(t, e.Offset, found.Offset)
	assert.Equal(t, testData(), newTL.EntryData(found))
}

func TestRelocateRejectsTooSmallRegion(t *testing.T) {
	region := make([]byte, testTLMaxSize)
	tl, ok := transferlist.Init(region)
	require.True(t, ok)

	_, ok = tl.Add(testTag, uint32(len(testData())), testData())
	require.True(t, ok)

	tooSmall := make([]byte, transferlist.HeaderSize)
	_, ok = transferlist.Relocate(tl, tooSmall)
	assert.False(t, ok)
}

func TestRelocateRejectsZeroCapacityAndLeavesOriginalValid(t *testing.T) {
	region := make([]byte, testTLMaxSize)
	tl, ok := transferlist.Init(region)
	require.True(t, ok)

	_, ok = tl.Add(testTag, uint32(len(testData())), testData())
	require.True(t, ok)

	_, ok = transferlist.Relocate(tl, nil)
	assert.False(t, ok)

	assert.Equal(t, transferlist.CheckAll, transferlist.CheckHeader(tl))
	found, ok := tl.Find(testTag)
	require.True(t, ok)
	assert.Equal(t, testData(), tl.EntryData(found))
}
