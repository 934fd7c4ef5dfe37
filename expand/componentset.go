package expand

import "github.com/injectkit/injectkit/entry"

// componentSet tracks ComponentKeys, bucketed by factory function pointer
// since that is cheap to compare, and linearly scanned within a bucket for
// the structural (fn, args) equality required of with-args lazy
// component identity.
type componentSet struct {
	buckets map[uintptr][]entry.ComponentKey
}

func newComponentSet() *componentSet {
	return &componentSet{buckets: make(map[uintptr][]entry.ComponentKey)}
}

func (s *componentSet) Contains(k entry.ComponentKey) bool {
	for _, o := range s.buckets[k.FuncPtr] {
		if k.Equal(o) {
			return true
		}
	}
	return false
}

func (s *componentSet) Add(k entry.ComponentKey) {
	if s.Contains(k) {
		return
	}
	s.buckets[k.FuncPtr] = append(s.buckets[k.FuncPtr], k)
}

func (s *componentSet) Remove(k entry.ComponentKey) {
	bucket := s.buckets[k.FuncPtr]
	for i, o := range bucket {
		if k.Equal(o) {
			s.buckets[k.FuncPtr] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// componentReplacements maps ComponentKeys to the Entry that should be
// expanded in their place, with the same bucketed-then-linear-scan lookup
// as componentSet.
type componentReplacements struct {
	buckets map[uintptr][]keyedReplacement
}

type keyedReplacement struct {
	key   entry.ComponentKey
	value entry.Entry
}

func newComponentReplacements() *componentReplacements {
	return &componentReplacements{buckets: make(map[uintptr][]keyedReplacement)}
}

func (r *componentReplacements) Get(k entry.ComponentKey) (entry.Entry, bool) {
	for _, kr := range r.buckets[k.FuncPtr] {
		if k.Equal(kr.key) {
			return kr.value, true
		}
	}
	return nil, false
}

// Remove deletes k's recorded replacement, if any.
func (r *componentReplacements) Remove(k entry.ComponentKey) {
	bucket := r.buckets[k.FuncPtr]
	for i, kr := range bucket {
		if k.Equal(kr.key) {
			r.buckets[k.FuncPtr] = append(bucket[:i], bucket[i+1:]...)
			return
		}
	}
}

// Set records v as the replacement for k, overwriting whatever was there.
// Callers that care about conflicting with an existing replacement should
// Get first.
func (r *componentReplacements) Set(k entry.ComponentKey, v entry.Entry) {
	bucket := r.buckets[k.FuncPtr]
	for i, kr := range bucket {
		if k.Equal(kr.key) {
			bucket[i].value = v
			return
		}
	}
	r.buckets[k.FuncPtr] = append(bucket, keyedReplacement{key: k, value: v})
}
