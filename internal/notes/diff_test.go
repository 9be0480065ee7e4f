package notes

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLineDiff(t *testing.T) {
	assert.Empty(t, LineDiff("same\n", "same\n"))

	got := LineDiff("a\nb\nc\n", "a\nx\nc\n")
	assert.Equal(t, "  a\n- b\n+ x\n  c\n", got)
}

func TestLineDiffStripsCarriageReturns(t *testing.T) {
	got := LineDiff("a\r\nb\r\n", "a\r\n")
	assert.Equal(t, "  a\n- b\n", got)
}
