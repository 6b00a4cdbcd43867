// Package exprcache implements the constant-expression cache referenced in
// spec §9's open question: whether a VCM tree with no `$`-prefixed
// references may have its evaluated result cached across reruns of the
// same frame. Decided (DESIGN.md): yes, keyed by a hash of the scope-chain
// fingerprint plus the expression tree's own address, computed with
// github.com/cnf/structhash the way a content-addressed cache would in the
// rest of the pack.
package exprcache

import (
	"fmt"

	"github.com/cnf/structhash"

	"github.com/purc-go/purc/variant"
)

// key is hashed via structhash rather than compared directly so that two
// different scope-chain shapes that happen to fingerprint identically
// (vanishingly unlikely, but the hash is deliberately structural rather
// than pointer-based) still collide predictably instead of silently
// aliasing on pointer reuse after GC.
type key struct {
	ScopeFingerprint []uint64
	ExprAddr         uint64
}

// Cache memoizes evaluated results for constant (no free-variable)
// expression trees.
type Cache struct {
	entries map[string]*variant.Value
}

func New() *Cache {
	return &Cache{entries: map[string]*variant.Value{}}
}

// Get looks up a previously cached result for (scopeChain, exprAddr).
func (c *Cache) Get(scopeChain []uintptr, exprAddr uintptr) (*variant.Value, bool) {
	h := hashKey(scopeChain, exprAddr)
	v, ok := c.entries[h]
	return v, ok
}

// Put stores result for (scopeChain, exprAddr), ref'ing it so the cache
// owns a handle independent of the caller's frame lifetime.
func (c *Cache) Put(scopeChain []uintptr, exprAddr uintptr, result *variant.Value) {
	h := hashKey(scopeChain, exprAddr)
	c.entries[h] = variant.Ref(result)
}

func hashKey(scopeChain []uintptr, exprAddr uintptr) string {
	fp := make([]uint64, len(scopeChain))
	for i, p := range scopeChain {
		fp[i] = uint64(p)
	}
	k := key{ScopeFingerprint: fp, ExprAddr: uint64(exprAddr)}
	hash, err := structhash.Hash(k, 1)
	if err != nil {
		return fmt.Sprintf("%v:%d", scopeChain, exprAddr)
	}
	return hash
}

// Release unrefs every cached entry, for use when a coroutine (and its
// frame stack, and thus every scope fingerprint it could ever produce)
// tears down.
func (c *Cache) Release() {
	for k, v := range c.entries {
		variant.Unref(v)
		delete(c.entries, k)
	}
}
