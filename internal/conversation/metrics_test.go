package conversation_test

import (
	"context"
	"testing"

	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/TestingGuyz/hanuman/internal/conversation"
	"github.com/TestingGuyz/hanuman/internal/observe"
	"github.com/TestingGuyz/hanuman/pkg/provider/music"
	musicmock "github.com/TestingGuyz/hanuman/pkg/provider/music/mock"
	"github.com/TestingGuyz/hanuman/pkg/provider/search"
	searchmock "github.com/TestingGuyz/hanuman/pkg/provider/search/mock"
)

func TestProcess_RecordsCollaboratorLatency(t *testing.T) {
	t.Parallel()

	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })
	metrics, err := observe.NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}

	c := newController(&fakeChatter{reply: "summary"},
		conversation.WithSearcher(&searchmock.Searcher{Response: &search.Response{
			Results: []search.Result{{Title: "Dharma", URL: "https://example.com/dharma"}},
		}}),
		conversation.WithMusic(&musicmock.Searcher{
			Track: &music.Track{Title: "Hanuman Chalisa", URL: "https://www.youtube.com/watch?v=x"},
		}),
		conversation.WithMetrics(metrics),
	)

	st := conversation.NewState()
	st.Mode = conversation.ModeKhoj
	c.Process(context.Background(), st, "dharma meaning")

	st = conversation.NewState()
	st.Mode = conversation.ModeGandharva
	c.Process(context.Background(), st, "hanuman chalisa")

	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if got := histogramSamples(t, &rm, "hanuman.search.duration"); got != 1 {
		t.Errorf("search.duration samples = %d, want 1", got)
	}
	if got := histogramSamples(t, &rm, "hanuman.music.duration"); got != 1 {
		t.Errorf("music.duration samples = %d, want 1", got)
	}
}

// histogramSamples totals the sample counts of a float64 histogram.
func histogramSamples(t *testing.T, rm *metricdata.ResourceMetrics, name string) uint64 {
	t.Helper()
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			if m.Name != name {
				continue
			}
			h, ok := m.Data.(metricdata.Histogram[float64])
			if !ok {
				t.Fatalf("%s: unexpected data type %T", name, m.Data)
			}
			var total uint64
			for _, dp := range h.DataPoints {
				total += dp.Count
			}
			return total
		}
	}
	return 0
}
