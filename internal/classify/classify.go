// Package classify attaches labels from external models to analyzed
// texts. Models plug in through the Classifier and EntityRecognizer
// interfaces; the metric computations never depend on them.
package classify

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/jeduden/arastat/internal/metrics"
)

// Classifier predicts one label for a text, such as a dialect or topic.
type Classifier interface {
	Name() string
	Predict(ctx context.Context, text string) (string, error)
}

// Entity is a named entity found in a text.
type Entity struct {
	Word string `json:"word"`
	Tag  string `json:"entity"`
}

// EntityRecognizer finds named entities in a text.
type EntityRecognizer interface {
	Name() string
	Recognize(ctx context.Context, text string) ([]Entity, error)
}

// Label is the outcome of one classifier on one text.
type Label struct {
	Name  string
	Value string
	Err   error
}

// Annotate runs every classifier on text. A failing classifier yields a
// Label with Err set and does not stop the others. Labels are returned
// in classifier order.
func Annotate(ctx context.Context, text string, classifiers ...Classifier) []Label {
	labels := make([]Label, len(classifiers))
	for i, c := range classifiers {
		labels[i].Name = c.Name()
		if err := ctx.Err(); err != nil {
			labels[i].Err = err
			continue
		}
		value, err := c.Predict(ctx, text)
		if err != nil {
			labels[i].Err = fmt.Errorf("%s: %w", c.Name(), err)
			continue
		}
		labels[i].Value = value
	}
	return labels
}

// Entities adapts an EntityRecognizer to a Classifier whose label lists
// the entities as "word/TAG" separated by spaces.
func Entities(r EntityRecognizer) Classifier {
	return entityClassifier{r}
}

type entityClassifier struct {
	r EntityRecognizer
}

func (e entityClassifier) Name() string {
	return e.r.Name()
}

func (e entityClassifier) Predict(ctx context.Context, text string) (string, error) {
	entities, err := e.r.Recognize(ctx, text)
	if err != nil {
		return "", err
	}
	parts := make([]string, 0, len(entities))
	for _, ent := range entities {
		parts = append(parts, ent.Word+"/"+ent.Tag)
	}
	return strings.Join(parts, " "), nil
}

// RowError reports a classifier failure on one text.
type RowError struct {
	Source string
	Err    error
}

func (e RowError) Error() string {
	return fmt.Sprintf("%s: %v", e.Source, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// AnnotateTable runs the classifiers over every successfully analyzed row
// of table, using inputs[row.Index] as the text, with at most workers
// texts in flight. Successful labels are stored in row.Annotations.
// Failures are returned sorted by row index and leave the label unset.
func AnnotateTable(ctx context.Context, table *metrics.Table, inputs []metrics.Input, workers int, classifiers ...Classifier) []RowError {
	if len(classifiers) == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}

	type failure struct {
		index int
		err   RowError
	}
	var (
		mu       sync.Mutex
		failures []failure
		wg       sync.WaitGroup
	)
	sem := make(chan struct{}, workers)

	for i := range table.Rows {
		row := &table.Rows[i]
		if row.Err != nil || row.Index < 0 || row.Index >= len(inputs) {
			continue
		}
		sem <- struct{}{}
		wg.Add(1)
		go func(row *metrics.Row) {
			defer wg.Done()
			defer func() { <-sem }()

			labels := Annotate(ctx, inputs[row.Index].Text, classifiers...)
			annotations := make(map[string]string, len(labels))
			var errs []failure
			for _, l := range labels {
				if l.Err != nil {
					errs = append(errs, failure{row.Index, RowError{Source: row.Source, Err: l.Err}})
					continue
				}
				annotations[l.Name] = l.Value
			}
			row.Annotations = annotations

			if len(errs) > 0 {
				mu.Lock()
				failures = append(failures, errs...)
				mu.Unlock()
			}
		}(row)
	}
	wg.Wait()

	sort.SliceStable(failures, func(i, j int) bool {
		return failures[i].index < failures[j].index
	})
	out := make([]RowError, len(failures))
	for i, f := range failures {
		out[i] = f.err
	}
	return out
}
