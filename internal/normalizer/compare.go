package normalizer

import (
	"fmt"

	"github.com/mcncl/jsonnorm/internal/errors"
	"github.com/mcncl/jsonnorm/internal/models"
)

// Compare orders two objects by the configured attributes, in priority order.
// The first attribute that differs decides; if all tie the result is 0.
func (n *Normalizer) Compare(o1, o2 *models.JSONObject) (int, error) {
	for _, key := range n.opts.SortArraysBy {
		a, _ := o1.Get(key)
		b, _ := o2.Get(key)
		c, err := n.compareValues(key, a, b)
		if err != nil {
			return 0, err
		}
		if c != 0 {
			return c, nil
		}
	}
	return 0, nil
}

// compareValues orders two attribute values. Absent and null are the same and
// sort after anything present. Numbers compare numerically and strings by
// collation. Any other pairing compares equal unless StrictCompare is set.
func (n *Normalizer) compareValues(key string, a, b models.JSONValue) (int, error) {
	switch {
	case a == nil && b == nil:
		return 0, nil
	case a == nil:
		return 1, nil
	case b == nil:
		return -1, nil
	}

	switch av := a.(type) {
	case float64:
		if bv, ok := b.(float64); ok {
			return compareNumbers(av, bv), nil
		}
	case string:
		if bv, ok := b.(string); ok {
			return n.collator.CompareString(av, bv), nil
		}
	}

	if n.opts.StrictCompare {
		return 0, errors.NewNormalizeError(
			fmt.Sprintf("cannot compare attribute %q: %s and %s", key, models.KindOf(a), models.KindOf(b)),
			errors.ErrIncomparable,
		)
	}
	return 0, nil
}

// compareNumbers follows the sign of a-b; a NaN difference counts as equal.
func compareNumbers(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
