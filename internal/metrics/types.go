package metrics

import (
	"fmt"
	"strings"
)

// Group names the extractor a metric belongs to.
type Group string

const (
	// GroupStatistics holds coarse text statistics.
	GroupStatistics Group = "statistics"
	// GroupLexical holds lexical complexity features.
	GroupLexical Group = "lexical"
	// GroupRichness holds vocabulary-richness indices.
	GroupRichness Group = "richness"
	// GroupReadability holds readability scores.
	GroupReadability Group = "readability"
)

// Groups lists the metric groups in column order.
var Groups = []Group{GroupStatistics, GroupLexical, GroupRichness, GroupReadability}

// ParseGroup parses a user-provided group name.
func ParseGroup(raw string) (Group, error) {
	g := Group(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Groups {
		if g == known {
			return g, nil
		}
	}
	return "", fmt.Errorf("unknown group %q (supported: statistics, lexical, richness, readability)", raw)
}

// Order defines metric sort order.
type Order string

const (
	// OrderAsc sorts from smallest to largest.
	OrderAsc Order = "asc"
	// OrderDesc sorts from largest to smallest.
	OrderDesc Order = "desc"
)

// ParseOrder parses a user-provided sort order.
func ParseOrder(raw string) (Order, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", string(OrderDesc):
		return OrderDesc, nil
	case string(OrderAsc):
		return OrderAsc, nil
	default:
		return "", fmt.Errorf("unknown order %q (supported: asc, desc)", raw)
	}
}

// ValueKind describes how to render a numeric metric value.
type ValueKind string

const (
	// KindInteger renders values as rounded integers.
	KindInteger ValueKind = "integer"
	// KindFloat renders values with fixed decimal precision.
	KindFloat ValueKind = "float"
	// KindDuration renders a number of seconds as HH:MM:SS.
	KindDuration ValueKind = "duration"
)

// Value is a computed numeric metric value.
type Value struct {
	Number    float64
	Available bool
}

// AvailableValue constructs an available metric value.
func AvailableValue(n float64) Value {
	return Value{
		Number:    n,
		Available: true,
	}
}

// UnavailableValue constructs an unavailable metric value.
func UnavailableValue() Value {
	return Value{}
}

// Definition describes a metric and how to compute it.
type Definition struct {
	ID           string
	Name         string
	Column       string
	Description  string
	Group        Group
	Kind         ValueKind
	Precision    int
	DefaultOrder Order
	Compute      func(doc *Document) Value
}
