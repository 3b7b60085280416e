package routes

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleConfig = `# SoundBlocks demo
7->t1,t2:1-4,9
3->ax,ay,az:7
3->azimuth:1
9<-t1:7@dfVolume[0,30]
   # node 1 plays when node 3 turns
1<-azimuth:3@dfPlayFolder[1,12]
9<-t2:7@dfSetEq[0,5]

free text without arrows is skipped
`

func TestCompile(t *testing.T) {
	table, err := CompileString(sampleConfig)
	require.NoError(t, err)

	assert.Equal(t, []NodeID{1, 3, 7, 9}, table.Order())

	assert.Equal(t, []SendRecord{
		{7, 0, 7, 7, 0, 0, 0, 0},
		{0x40, 0, 1, 1, 0, 0, 0, 0},
	}, table.SendRoutes(3))
	assert.Equal(t, []SendRecord{{0, 3, 1, 4, 9, 9, 0, 0}}, table.SendRoutes(7))
	assert.Empty(t, table.SendRoutes(9))

	assert.Equal(t, []ReceiveRecord{
		{0, 7, 3, 0, 30},
		{1, 7, 2, 0, 5},
	}, table.ReceiveRoutes(9))
	assert.Equal(t, []ReceiveRecord{{14, 3, 4, 1, 12}}, table.ReceiveRoutes(1))

	assert.Equal(t, 5, table.Messages(3))
	assert.Equal(t, 4, table.Messages(1))
}

func TestCompile_Nodes(t *testing.T) {
	table, err := CompileString("5->t1,ax:10-12\n2<-t1:5@dfPlay[0,1]\n")
	require.NoError(t, err)

	want := []NodeRoutes{
		{ID: 2, Receive: [][]int{{0, 5, 0, 0, 1}}},
		{ID: 5, Send: [][]int{{1, 1, 10, 12, 0, 0, 0, 0}}},
	}
	if diff := cmp.Diff(want, table.Nodes()); diff != "" {
		t.Errorf("Nodes() mismatch (-want +got):\n%s", diff)
	}
}

func TestCompile_OrderIsDeduplicatedUnion(t *testing.T) {
	table, err := CompileString("4<-t1:1@dfStop[0,1]\n4->t1:1\n2->t1:4\n4->t2:1\n")
	require.NoError(t, err)
	assert.Equal(t, []NodeID{2, 4}, table.Order())
}

func TestCompile_Immutable(t *testing.T) {
	table, err := CompileString("1->t1:2")
	require.NoError(t, err)

	order := table.Order()
	order[0] = 99
	recs := table.SendRoutes(1)
	recs[0][0] = 42

	assert.Equal(t, []NodeID{1}, table.Order())
	assert.Equal(t, 1, table.SendRoutes(1)[0][1])
	assert.Equal(t, 0, table.SendRoutes(1)[0][0])
}

func TestCompile_Empty(t *testing.T) {
	table, err := CompileString("")
	assert.Nil(t, table)
	assert.ErrorIs(t, err, ErrEmptyInput)

	// A single blank line is a line.
	table, err = CompileString("\n")
	require.NoError(t, err)
	assert.Empty(t, table.Order())
}

func TestCompile_FirstErrorWins(t *testing.T) {
	input := strings.Join([]string{
		"# header",
		"1->t1:2",
		"2->t1:1,2,3,4",
		"abc",
	}, "\r\n")

	table, err := CompileString(input)
	assert.Nil(t, table)
	require.Error(t, err)

	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 3, le.Line)
	assert.Equal(t, "2->t1:1,2,3,4", le.Text)
	assert.ErrorIs(t, err, ErrCapacity)
	assert.Equal(t, `maximum 3 ID ranges in line 3 "2->t1:1,2,3,4"`, err.Error())
}

func TestCompile_BareWord(t *testing.T) {
	_, err := CompileString("abc")
	var le *LineError
	require.True(t, errors.As(err, &le))
	assert.Equal(t, 1, le.Line)
	assert.Equal(t, "abc", le.Text)
	assert.ErrorIs(t, err, ErrSyntax)
}

func TestCompile_UnicodeBareWord(t *testing.T) {
	for _, line := range []string{"café", "naïve", "über"} {
		table, err := CompileString(line)
		assert.Nil(t, table, line)
		assert.ErrorIs(t, err, ErrSyntax, line)
	}
}

func TestCompile_ErrorQuotesLineVerbatim(t *testing.T) {
	line := "1->t1:\"2\"\t\\x"
	_, err := CompileString(line)
	require.Error(t, err)
	assert.Equal(t, "receive ID must be a number in line 1 \""+line+"\"", err.Error())
}

func TestCompile_BothArrowsRejected(t *testing.T) {
	for _, line := range []string{
		"1->t1:2#<-",
		"1->t1:2<-3",
		"<-1->t1:2",
	} {
		_, err := CompileString(line)
		assert.ErrorIs(t, err, ErrSyntax, line)
	}
}

func TestCompile_RangeCapacityBoundary(t *testing.T) {
	_, err := CompileString("1->t1:1,2,3")
	assert.NoError(t, err)

	_, err = CompileString("1->t1:1,2,3,4")
	assert.ErrorIs(t, err, ErrCapacity)
}
