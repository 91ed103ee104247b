package set

import (
	"fmt"
	"sort"
	"strings"
)

type Set[E comparable] map[E]struct{}

func Make[E comparable](elements ...E) Set[E] {
	S := Set[E]{}
	for _, e := range elements {
		S.Add(e)
	}
	return S
}

func (S Set[E]) Add(e E) {
	S[e] = struct{}{}
}

func (S Set[E]) Contains(e E) bool {
	_, found := S[e]
	return found
}

// Adds the element, returning false if it was already there.
func (S Set[E]) Insert(e E) bool {
	if S.Contains(e) {
		return false
	}
	S.Add(e)
	return true
}

func (S Set[E]) Len() int {
	return len(S)
}

// The elements in order of their printed form, so that the result is the same from one
// run to the next.
func (S Set[E]) String() string {
	strs := make([]string, 0, len(S))
	for e := range S {
		strs = append(strs, fmt.Sprint(e))
	}
	sort.Strings(strs)
	return "{" + strings.Join(strs, ", ") + "}"
}
