package classify

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jeduden/arastat/internal/metrics"
)

type fakeClassifier struct {
	name  string
	label func(text string) (string, error)
	calls atomic.Int32
}

func (f *fakeClassifier) Name() string { return f.name }

func (f *fakeClassifier) Predict(_ context.Context, text string) (string, error) {
	f.calls.Add(1)
	return f.label(text)
}

type fakeRecognizer struct{}

func (fakeRecognizer) Name() string { return "ner" }

func (fakeRecognizer) Recognize(_ context.Context, text string) ([]Entity, error) {
	var out []Entity
	for _, w := range strings.Fields(text) {
		if w == "القاهرة" {
			out = append(out, Entity{Word: w, Tag: "LOC"})
		}
	}
	return out, nil
}

func dialect() *fakeClassifier {
	return &fakeClassifier{name: "dialect", label: func(text string) (string, error) {
		if strings.Contains(text, "شلونك") {
			return "gulf", nil
		}
		return "msa", nil
	}}
}

func broken() *fakeClassifier {
	return &fakeClassifier{name: "broken", label: func(string) (string, error) {
		return "", errors.New("model unavailable")
	}}
}

func TestAnnotate_CollectsErrorsWithoutAborting(t *testing.T) {
	labels := Annotate(context.Background(), "شلونك اليوم", broken(), dialect())
	if len(labels) != 2 {
		t.Fatalf("len = %d, want 2", len(labels))
	}
	if labels[0].Name != "broken" || labels[0].Err == nil {
		t.Fatalf("label 0 = %+v, want error", labels[0])
	}
	if !strings.Contains(labels[0].Err.Error(), "model unavailable") {
		t.Fatalf("error = %v", labels[0].Err)
	}
	if labels[1].Name != "dialect" || labels[1].Value != "gulf" || labels[1].Err != nil {
		t.Fatalf("label 1 = %+v, want gulf", labels[1])
	}
}

func TestAnnotate_CancelledContext(t *testing.T) {
	c := dialect()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	labels := Annotate(ctx, "نص", c)
	if !errors.Is(labels[0].Err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", labels[0].Err)
	}
	if c.calls.Load() != 0 {
		t.Fatal("classifier should not run after cancellation")
	}
}

func TestEntities(t *testing.T) {
	c := Entities(fakeRecognizer{})
	if c.Name() != "ner" {
		t.Fatalf("name = %q", c.Name())
	}
	got, err := c.Predict(context.Background(), "سافر أحمد إلى القاهرة ثم القاهرة")
	if err != nil {
		t.Fatalf("Predict: %v", err)
	}
	if got != "القاهرة/LOC القاهرة/LOC" {
		t.Fatalf("label = %q", got)
	}
}

func TestAnnotateTable(t *testing.T) {
	inputs := []metrics.Input{
		{Source: "a", Text: "كيف حالك"},
		{Source: "b", Text: "شلونك"},
		{Source: "c", Text: "فشل"},
	}
	table := metrics.Table{Rows: []metrics.Row{
		{Index: 1, Source: "b"},
		{Index: 0, Source: "a"},
		{Index: 2, Source: "c", Err: errors.New("analysis failed")},
	}}

	c := dialect()
	errs := AnnotateTable(context.Background(), &table, inputs, 4, c, broken())

	if got := table.Rows[0].Annotations["dialect"]; got != "gulf" {
		t.Errorf("row b dialect = %q, want gulf", got)
	}
	if got := table.Rows[1].Annotations["dialect"]; got != "msa" {
		t.Errorf("row a dialect = %q, want msa", got)
	}
	if _, ok := table.Rows[1].Annotations["broken"]; ok {
		t.Error("failed classifier should leave no label")
	}
	if table.Rows[2].Annotations != nil {
		t.Error("failed rows should not be classified")
	}
	if c.calls.Load() != 2 {
		t.Errorf("classifier calls = %d, want 2", c.calls.Load())
	}

	if len(errs) != 2 {
		t.Fatalf("errors = %d, want 2", len(errs))
	}
	if errs[0].Source != "a" || errs[1].Source != "b" {
		t.Fatalf("errors not sorted by input index: %v", errs)
	}
	if !strings.HasPrefix(errs[0].Error(), "a: broken: ") {
		t.Fatalf("error text = %q", errs[0].Error())
	}
}

func TestAnnotateTable_NoClassifiers(t *testing.T) {
	table := metrics.Table{Rows: []metrics.Row{{Index: 0, Source: "a"}}}
	if errs := AnnotateTable(context.Background(), &table, []metrics.Input{{Text: "x"}}, 1); errs != nil {
		t.Fatalf("errs = %v", errs)
	}
	if table.Rows[0].Annotations != nil {
		t.Fatal("annotations should stay nil")
	}
}
