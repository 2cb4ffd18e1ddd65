package output

import (
	"errors"
	"testing"

	"github.com/jeduden/arastat/internal/metrics"
)

func lookup(t *testing.T, name string) metrics.Definition {
	t.Helper()
	def, ok := metrics.Lookup(name)
	if !ok {
		t.Fatalf("metric %q not found", name)
	}
	return def
}

// sampleTable holds two analyzed texts and one failed text.
func sampleTable(t *testing.T) metrics.Table {
	t.Helper()
	return metrics.Table{
		Definitions: []metrics.Definition{
			lookup(t, "words"),
			lookup(t, "speech-speed"),
			lookup(t, "yules-k"),
		},
		Rows: []metrics.Row{
			{
				Index:  0,
				Source: "a.txt",
				Text:   "ذهب الولد\nإلى  المدرسة",
				Metrics: map[string]metrics.Value{
					"words":        metrics.AvailableValue(250),
					"speech-speed": metrics.AvailableValue(200),
					"yules-k":      metrics.AvailableValue(102.0408163),
				},
				Annotations: map[string]string{"dialect": "msa"},
			},
			{
				Index:  1,
				Source: "<b>.txt",
				Text:   "<i>",
				Metrics: map[string]metrics.Value{
					"words":        metrics.AvailableValue(0),
					"speech-speed": metrics.AvailableValue(0),
					"yules-k":      metrics.UnavailableValue(),
				},
			},
			{
				Index:  2,
				Source: "c.txt",
				Err:    errors.New("analyzing c.txt: boom"),
			},
		},
	}
}
