package metrics

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FilipeMCruz/playlist-maker/maker"
	"github.com/FilipeMCruz/playlist-maker/maker/query"
	"github.com/FilipeMCruz/playlist-maker/maker/track"
)

func value(t *testing.T, c prometheus.Metric) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestObserver(t *testing.T) {
	matched := value(t, QueriesTotal.WithLabelValues("index", "matched"))
	empty := value(t, QueriesTotal.WithLabelValues("play", "empty"))
	failed := value(t, PartitionsFailed)

	var o Observer
	o.QueryEvaluated(&maker.Result{
		Query:  query.MustParse(`Index(Path("a"))`),
		Tracks: []track.Track{{Path: "a"}},
		Groups: 3,
	})
	o.QueryEvaluated(&maker.Result{
		Query:  query.MustParse(`Play(InPlaylist("x"))`),
		Groups: 2,
		Failed: 2,
	})

	assert.Equal(t, matched+1, value(t, QueriesTotal.WithLabelValues("index", "matched")))
	assert.Equal(t, empty+1, value(t, QueriesTotal.WithLabelValues("play", "empty")))
	assert.Equal(t, failed+2, value(t, PartitionsFailed))
}

func TestWriteTextfile(t *testing.T) {
	RecordCollect(maker.CollectStats{Scanned: 3, ScanFailed: 1})
	path := filepath.Join(t.TempDir(), "playlist_maker.prom")
	require.NoError(t, WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "playlist_maker_tracks_scanned_total")
	assert.Contains(t, string(data), "playlist_maker_scan_errors_total")
}
