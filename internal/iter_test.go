package internal

import (
	"maps"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := slices.All([]string{"a", "b"})
	b := slices.All([]string{"c"})

	var keys []int
	var values []string
	for k, v := range IterSeq2Concat(a, b) {
		keys = append(keys, k)
		values = append(values, v)
	}
	assert.Equal([]int{0, 1, 0}, keys)
	assert.Equal([]string{"a", "b", "c"}, values)

	// Early exit stops every sequence.
	count := 0
	for range IterSeq2Concat(maps.All(map[int]string{1: "x"}), b) {
		count++
		break
	}
	assert.Equal(1, count)
}
