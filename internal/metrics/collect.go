package metrics

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strconv"
	"sync"

	"github.com/jeduden/arastat/internal/textstats"
)

// Input is one text to analyze. Source names where it came from
// (a file path, "stdin", "path:line") and is carried through unchanged.
type Input struct {
	Source string
	Text   string
}

// Row holds computed metric values for a single text.
type Row struct {
	// Index is the position of the text in the input sequence.
	Index  int
	Source string
	// Text is the analyzed input text.
	Text    string
	Metrics map[string]Value
	// Annotations holds classifier labels keyed by classifier name.
	Annotations map[string]string
	// Err is set when the text could not be analyzed. Metrics is empty
	// in that case and every value renders as unavailable.
	Err error
}

// Value returns the row's value for def, unavailable when missing.
func (r Row) Value(def Definition) Value {
	v, ok := r.Metrics[def.Name]
	if !ok {
		return UnavailableValue()
	}
	return v
}

// Table is the aggregated result: one row per input text, in input order.
type Table struct {
	Definitions []Definition
	Rows        []Row
}

// Aggregate computes every metric for each text with the given options.
func Aggregate(ctx context.Context, texts []string, opts Options) (Table, error) {
	a, err := NewAnalyzer(opts)
	if err != nil {
		return Table{}, err
	}
	inputs := make([]Input, len(texts))
	for i, text := range texts {
		inputs[i] = Input{Source: strconv.Itoa(i + 1), Text: text}
	}
	return a.Collect(ctx, inputs, All())
}

// Collect computes the selected metrics for each input on a bounded pool
// of workers. Rows are stored by index so their order equals input order.
// A panic while analyzing one text is recorded in that row's Err and does
// not affect the others. If ctx is cancelled, scheduling stops and
// ctx.Err() is returned.
func (a *Analyzer) Collect(ctx context.Context, inputs []Input, defs []Definition) (Table, error) {
	rows := make([]Row, len(inputs))
	sem := make(chan struct{}, a.workers)
	var wg sync.WaitGroup

	var cancelErr error
	for i, in := range inputs {
		if err := ctx.Err(); err != nil {
			cancelErr = err
			break
		}
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
			cancelErr = ctx.Err()
		}
		if cancelErr != nil {
			break
		}

		wg.Add(1)
		go func(i int, in Input) {
			defer wg.Done()
			defer func() { <-sem }()
			rows[i] = a.analyze(i, in, defs)
		}(i, in)
	}
	wg.Wait()

	if cancelErr != nil {
		return Table{}, cancelErr
	}
	return Table{Definitions: defs, Rows: rows}, nil
}

func (a *Analyzer) analyze(index int, in Input, defs []Definition) (row Row) {
	row = Row{Index: index, Source: in.Source, Text: in.Text}
	defer func() {
		if r := recover(); r != nil {
			row.Metrics = nil
			row.Err = fmt.Errorf("analyzing %s: %v", in.Source, r)
		}
	}()

	doc := a.NewDocument(in.Source, in.Text)
	values := make(map[string]Value, len(defs))
	for _, def := range defs {
		values[def.Name] = def.Compute(doc)
	}
	row.Metrics = values
	return row
}

// Texts returns the input texts as a slice of Inputs named by source.
func Texts(sources, texts []string) []Input {
	inputs := make([]Input, len(texts))
	for i, text := range texts {
		source := strconv.Itoa(i + 1)
		if i < len(sources) {
			source = sources[i]
		}
		inputs[i] = Input{Source: source, Text: text}
	}
	return inputs
}

// Failed returns the rows whose analysis failed.
func (t Table) Failed() []Row {
	var failed []Row
	for _, row := range t.Rows {
		if row.Err != nil {
			failed = append(failed, row)
		}
	}
	return failed
}

// SortRows sorts rows deterministically by a metric with input-index
// tiebreaker.
func SortRows(rows []Row, by Definition, order Order) {
	sort.SliceStable(rows, func(i, j int) bool {
		a := rows[i].Value(by)
		b := rows[j].Value(by)

		// Available values sort before unavailable values.
		if a.Available != b.Available {
			return a.Available
		}

		if a.Available && b.Available {
			diff := a.Number - b.Number
			if math.Abs(diff) > 1e-9 {
				if order == OrderAsc {
					return diff < 0
				}
				return diff > 0
			}
		}

		return rows[i].Index < rows[j].Index
	})
}

// LimitRows returns at most top rows (if top > 0).
func LimitRows(rows []Row, top int) []Row {
	if top <= 0 || top >= len(rows) {
		return rows
	}
	return rows[:top]
}

// FormatValue renders a metric value for text output.
func FormatValue(def Definition, value Value) string {
	v := JSONValue(def, value)
	if v == nil {
		return "-"
	}

	switch n := v.(type) {
	case int64:
		return strconv.FormatInt(n, 10)
	case float64:
		return strconv.FormatFloat(n, 'f', def.Precision, 64)
	case string:
		return n
	default:
		return "-"
	}
}

// JSONValue converts a metric value into a JSON-safe scalar.
// Unavailable and non-finite values return nil.
func JSONValue(def Definition, value Value) any {
	if !value.Available || math.IsNaN(value.Number) || math.IsInf(value.Number, 0) {
		return nil
	}

	switch def.Kind {
	case KindInteger:
		return int64(math.Round(value.Number))
	case KindDuration:
		return textstats.FormatClock(value.Number)
	case KindFloat:
		if def.Precision < 0 {
			return value.Number
		}
		scale := math.Pow10(def.Precision)
		return math.Round(value.Number*scale) / scale
	default:
		return value.Number
	}
}
