// Package normalizer rewrites a parsed JSON tree into a deterministic shape:
// object keys optionally sorted, arrays of objects optionally sorted by an
// ordered list of attributes.
package normalizer

import (
	"slices"

	"github.com/mcncl/jsonnorm/internal/models"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// DefaultLocale is used for string collation when Options.Locale is unset.
var DefaultLocale = language.English

// Options configures a Normalizer.
type Options struct {
	// SortKeys sorts object keys by code point at every level.
	SortKeys bool
	// SortArraysBy lists the attributes used to order arrays whose elements
	// are all objects. Empty disables array sorting.
	SortArraysBy []string
	// Locale selects the collation used to compare string attributes.
	Locale language.Tag
	// StrictCompare turns attribute pairs that cannot be ordered into an
	// error instead of treating them as equal.
	StrictCompare bool
}

// Normalizer applies Options to JSON trees. It is not safe for concurrent use.
type Normalizer struct {
	opts     Options
	collator *collate.Collator
}

// New creates a Normalizer for opts.
func New(opts Options) *Normalizer {
	locale := opts.Locale
	if locale == language.Und {
		locale = DefaultLocale
	}
	opts.Locale = locale
	return &Normalizer{
		opts:     opts,
		collator: collate.New(locale),
	}
}

// Normalize returns v with its arrays and object keys reordered. v itself is
// left untouched. An error is only possible with Options.StrictCompare.
func Normalize(v models.JSONValue, sortKeys bool, sortArraysBy []string) models.JSONValue {
	out, _ := New(Options{SortKeys: sortKeys, SortArraysBy: sortArraysBy}).Normalize(v)
	return out
}

// Normalize returns a normalized copy of v.
func (n *Normalizer) Normalize(v models.JSONValue) (models.JSONValue, error) {
	switch val := v.(type) {
	case models.JSONArray:
		return n.normalizeArray(val)
	case *models.JSONObject:
		return n.normalizeObject(val)
	default:
		return v, nil
	}
}

func (n *Normalizer) normalizeArray(arr models.JSONArray) (models.JSONValue, error) {
	elems := []models.JSONValue(arr)
	if len(n.opts.SortArraysBy) > 0 && allObjects(arr) {
		sorted, err := n.sortObjects(arr)
		if err != nil {
			return nil, err
		}
		elems = sorted
	}

	out := make(models.JSONArray, len(elems))
	for i, elem := range elems {
		normalized, err := n.Normalize(elem)
		if err != nil {
			return nil, err
		}
		out[i] = normalized
	}
	return out, nil
}

func (n *Normalizer) normalizeObject(obj *models.JSONObject) (models.JSONValue, error) {
	keys := obj.Keys()
	if n.opts.SortKeys {
		slices.Sort(keys)
	}

	out := models.NewJSONObject(len(keys))
	for _, key := range keys {
		value, _ := obj.Get(key)
		normalized, err := n.Normalize(value)
		if err != nil {
			return nil, err
		}
		out.Set(key, normalized)
	}
	return out, nil
}

// allObjects reports whether every element of arr is an object.
func allObjects(arr models.JSONArray) bool {
	for _, elem := range arr {
		if _, ok := elem.(*models.JSONObject); !ok {
			return false
		}
	}
	return true
}

// sortObjects returns a stably sorted copy of arr, which holds only objects.
func (n *Normalizer) sortObjects(arr models.JSONArray) ([]models.JSONValue, error) {
	sorted := slices.Clone([]models.JSONValue(arr))
	var firstErr error
	slices.SortStableFunc(sorted, func(a, b models.JSONValue) int {
		c, err := n.Compare(a.(*models.JSONObject), b.(*models.JSONObject))
		if err != nil && firstErr == nil {
			firstErr = err
		}
		return c
	})
	if firstErr != nil {
		return nil, firstErr
	}
	return sorted, nil
}
