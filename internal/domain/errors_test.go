package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPage(t *testing.T) {
	page, limit, offset := Page(0, 0)
	assert.Equal(t, []int{1, 50, 0}, []int{page, limit, offset})

	page, limit, offset = Page(3, 20)
	assert.Equal(t, []int{3, 20, 40}, []int{page, limit, offset})

	_, limit, _ = Page(1, 500)
	assert.Equal(t, 50, limit)
}
