// Package executor implements the generic create/choose/iterate/reduce/
// destroy vtable spec §6 describes for KEY/FILTER/RANGE-style executors: a
// named executor value wraps a source collection and the parsed mini-
// grammar AST (package mgrammar/{key,filter,formula,match}) that decides
// which elements it yields. Grounded on the teacher's PSL verb dispatch
// table (src/stdlib.go) generalized from "one Go func per verb name" to
// "one Engine per executor instance, four lifecycle methods".
package executor

import "github.com/purc-go/purc/variant"

// Predicate decides whether one source element should be yielded; it
// wraps whichever mini-grammar AST (mgrammar/filter.Rule, mgrammar/key.Path
// navigation, mgrammar/match.Clause, ...) backs a particular executor rule.
type Predicate func(elem *variant.Value) bool

// Engine is one running executor instance: Create binds it to a source
// collection and rule, Choose/Iterate yield matching elements one at a
// time, Reduce folds them, and Destroy releases any resources Create
// allocated (spec §6).
type Engine struct {
	source    []*variant.Value
	predicate Predicate
	idx       int
}

// Create binds an Engine to source, filtering through predicate (spec §6's
// "create" lifecycle step: parse the rule, bind the source, no elements
// consumed yet).
func Create(source *variant.Value, predicate Predicate) *Engine {
	return &Engine{source: collectionItems(source), predicate: predicate}
}

func collectionItems(v *variant.Value) []*variant.Value {
	if v.Kind() != variant.Array {
		return []*variant.Value{v}
	}
	n := v.ArrayLen()
	items := make([]*variant.Value, n)
	for i := 0; i < n; i++ {
		items[i] = v.ArrayGet(i)
	}
	return items
}

// Choose returns the first remaining element matching the predicate, or
// (nil, false) once the source is exhausted (spec §6's single-shot form).
func (e *Engine) Choose() (*variant.Value, bool) {
	for e.idx < len(e.source) {
		elem := e.source[e.idx]
		e.idx++
		if e.predicate == nil || e.predicate(elem) {
			return elem, true
		}
	}
	return nil, false
}

// Iterate returns every remaining matching element in one pass, advancing
// the cursor to the end (spec §6's bulk form).
func (e *Engine) Iterate() []*variant.Value {
	var out []*variant.Value
	for {
		elem, ok := e.Choose()
		if !ok {
			break
		}
		out = append(out, elem)
	}
	return out
}

// Reduce folds every remaining matching element through fn, seeded by
// initial (spec §6's <reduce> form).
func (e *Engine) Reduce(initial *variant.Value, fn func(acc, elem *variant.Value) *variant.Value) *variant.Value {
	acc := initial
	for {
		elem, ok := e.Choose()
		if !ok {
			break
		}
		acc = fn(acc, elem)
	}
	return acc
}

// Destroy drops the engine's source slice and predicate, so later Choose
// calls yield nothing. The Engine holds no ref'd variants of its own (it
// only borrows from the source array, per the snapshot-by-index discipline
// in package variant), so nothing is unref'd here.
func (e *Engine) Destroy() {
	e.source = nil
	e.predicate = nil
}
