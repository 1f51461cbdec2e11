package origerr

import (
	"bytes"
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"uncertainty-go/hyperellipse"
	"uncertainty-go/solution"
)

var center = hyperellipse.Location{Lat: 36, Lon: -112, Depth: 10, Time: 1262304000}

func boxSolution(id string) solution.Solution {
	return solution.Solution{
		ID:     id,
		Center: center,
		Axes: &hyperellipse.AxisMatrix{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 1, 0},
			{0, 0, 0, 1},
			{10, 5, 3, 2},
		},
		Stats: hyperellipse.Statistics{Nobs: 20, K: -1, AprioriVariance: 1, SumSqrWeightedResiduals: 16, Confidence: 0.9, Sdobs: 0.8},
	}
}

func stubConfig() hyperellipse.Config {
	cfg := hyperellipse.DefaultConfig()
	cfg.FStatistic = func(m, n, k int, p float64) float64 { return 2.889 }
	return cfg
}

func TestNewRecord(t *testing.T) {
	s := boxSolution("box")
	r, err := NewRecord(7, s.ID, s.Engine(stubConfig()))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, r.ID)
	assert.Equal(t, 7, r.Orid)
	assert.True(t, r.Valid)
	assert.InDelta(t, 100, r.Sxx, 1e-9)
	assert.InEpsilon(t, 17.0, r.Smajax, 0.01)
	assert.InDelta(t, 0, r.Strike, 1e-9)
	assert.InDelta(t, 0.8, r.Sdobs, 1e-12)
	assert.InEpsilon(t, 3.14159*r.Smajax*r.Sminax, r.Area, 1e-4)

	assert.InEpsilon(t, 10*1.6997, r.Ellipsoid[0].Length, 1e-3)
	assert.InEpsilon(t, 5*1.6997, r.Ellipsoid[1].Length, 1e-3)
	assert.InEpsilon(t, 3*1.6997, r.Ellipsoid[2].Length, 1e-3)
	assert.InDelta(t, 90, r.Ellipsoid[2].Plunge, 1e-3)
}

func TestNewRecordWithoutStatistics(t *testing.T) {
	s := boxSolution("none")
	s.Axes = nil
	r, err := NewRecord(1, s.ID, s.Engine(hyperellipse.DefaultConfig()))
	require.NoError(t, err)
	assert.False(t, r.Valid)
	for _, v := range []float64{r.Sxx, r.Stz, r.Smajax, r.Sminax, r.Strike, r.Sdepth, r.Stime, r.Area} {
		assert.Equal(t, hyperellipse.NA, v)
	}
	for _, a := range r.Ellipsoid {
		assert.Equal(t, naAxis, a)
	}
}

func TestFormatFlat(t *testing.T) {
	s := boxSolution("box")
	r, err := NewRecord(42, s.ID, s.Engine(stubConfig()))
	require.NoError(t, err)

	line := string(FormatFlat(r, time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)))
	assert.True(t, strings.HasSuffix(line, "2024-05-01 12:00:00\n"))
	assert.True(t, strings.HasPrefix(line, "      42        100.0000"))
	fields := strings.Fields(line)
	assert.Len(t, fields, 21)
	assert.Equal(t, "0.900", fields[17])
	assert.Equal(t, "-1", fields[18])
}

func TestWriteCSV(t *testing.T) {
	var recs []Record
	for i, id := range []string{"a", "b"} {
		s := boxSolution(id)
		r, err := NewRecord(i+1, id, s.Engine(stubConfig()))
		require.NoError(t, err)
		recs = append(recs, r)
	}
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, recs))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Header(), rows[0])
	for _, row := range rows[1:] {
		assert.Len(t, row, len(Header()))
	}
	assert.Equal(t, "b", rows[2][1])
	assert.Equal(t, "true", rows[2][len(rows[2])-1])

	buf.Reset()
	require.NoError(t, WriteFlat(&buf, recs, time.Unix(0, 0)))
	assert.Equal(t, 2, strings.Count(buf.String(), "\n"))
}

func TestComputeBatch(t *testing.T) {
	none := boxSolution("none")
	none.Axes = nil
	sols := []solution.Solution{boxSolution("e1"), none, boxSolution("e3")}

	results, err := ComputeBatch(context.Background(), sols, stubConfig(), 2)
	require.NoError(t, err)
	require.Len(t, results, 3)
	recs := Records(results)
	assert.Equal(t, []string{"e1", "none", "e3"}, []string{recs[0].EventID, recs[1].EventID, recs[2].EventID})
	assert.Equal(t, []int{1, 2, 3}, []int{recs[0].Orid, recs[1].Orid, recs[2].Orid})
	assert.InDelta(t, recs[0].Smajax, recs[2].Smajax, 1e-9)
	assert.NotEqual(t, recs[0].ID, recs[2].ID)
	assert.NotNil(t, results[0].Engine)
}

func TestComputeBatchSkipsBrokenEvents(t *testing.T) {
	cfg := stubConfig()
	cfg.SimplexMaxIterations = 1
	none := boxSolution("none")
	none.Axes = nil
	results, err := ComputeBatch(context.Background(), []solution.Solution{boxSolution("e1"), none}, cfg, 0)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "none", results[0].Record.EventID)
}

func TestComputeBatchCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ComputeBatch(ctx, []solution.Solution{boxSolution("e1")}, stubConfig(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
