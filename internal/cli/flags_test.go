package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToConfigFlags(t *testing.T) {
	f := Flags{
		Source:     "cases.xlsx",
		Only:       []string{"Pos_Fun_0001,Pos_Fun_0002", "Neg_Fun_0001"},
		Headed:     true,
		OnlyFailed: true,
		Shard:      "1/2",
		Verbosity:  2,
	}

	got := f.ToConfigFlags()

	assert.Equal(t, "cases.xlsx", got.Source)
	assert.Equal(t, []string{"Pos_Fun_0001", "Pos_Fun_0002", "Neg_Fun_0001"}, got.Only)
	assert.True(t, got.Headed)
	assert.True(t, got.OnlyFailed)
	assert.Equal(t, "1/2", got.Shard)
	assert.Equal(t, 2, got.Verbosity)
}

func TestToConfigFlags_Empty(t *testing.T) {
	var f Flags
	got := f.ToConfigFlags()
	assert.Nil(t, got.Only)
	assert.Empty(t, got.Source)
}
