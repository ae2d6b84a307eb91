package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConcat2(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"one": 1}
	b := map[string]int{"two": 2, "three": 3}

	got := maps.Collect(Concat2(maps.All(a), maps.All(b)))
	assert.Equal(map[string]int{"one": 1, "two": 2, "three": 3}, got)

	// Early stop
	count := 0
	for range Concat2(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestSorted2(t *testing.T) {
	assert := assert.New(t)

	m := map[string]int{"b": 2, "c": 3, "a": 1}

	var keys []string
	for key := range Sorted2(maps.All(m)) {
		keys = append(keys, key)
	}
	assert.Equal([]string{"a", "b", "c"}, keys)
	assert.True(slices.IsSorted(keys))
}
