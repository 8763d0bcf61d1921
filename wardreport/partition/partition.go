// Package partition provides the predicate partitioning primitives the
// report aggregation is built on.
package partition

import "fmt"

// UnclassifiedItemError is returned by MultiPartition when an item matches
// none of the supplied predicates. It signals a predicate-set bug or an
// unexpected data shape and always aborts the run.
type UnclassifiedItemError struct {
	Index int
}

func (e *UnclassifiedItemError) Error() string {
	return fmt.Sprintf("item at index %d did not match any predicates", e.Index)
}

// Partition splits items into the entries matching pred and the entries that
// do not. Both outputs preserve input order; items is never modified.
func Partition[T any](pred func(T) bool, items []T) (matching, rest []T) {
	for _, item := range items {
		if pred(item) {
			matching = append(matching, item)
		} else {
			rest = append(rest, item)
		}
	}
	return matching, rest
}

// MultiPartition splits items into one bucket per predicate. Predicates are
// evaluated in order and an item lands in the bucket of the first predicate
// it satisfies, so an item matching several predicates is never duplicated.
// An item satisfying none of them aborts the whole call with an
// UnclassifiedItemError; callers append a catch-all predicate when
// exhaustiveness cannot otherwise be guaranteed.
func MultiPartition[T any](preds []func(T) bool, items []T) ([][]T, error) {
	buckets := make([][]T, len(preds))
	for idx, item := range items {
		matched := false
		for i, pred := range preds {
			if pred(item) {
				buckets[i] = append(buckets[i], item)
				matched = true
				break
			}
		}
		if !matched {
			return nil, &UnclassifiedItemError{Index: idx}
		}
	}
	return buckets, nil
}
