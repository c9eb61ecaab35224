package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginatorAdvancesWithinPage(t *testing.T) {
	pg := NewPaginator(100, 10, 20)

	broke := pg.Advance(30)

	assert.False(t, broke)
	assert.Equal(t, 40.0, pg.Y())
	assert.Equal(t, 0, pg.Breaks())
}

func TestPaginatorBreaksWhenLineWouldCrossBottomMargin(t *testing.T) {
	pg := NewPaginator(100, 10, 20)

	pg.Advance(30) // y = 40
	pg.Advance(30) // y = 70
	broke := pg.Advance(30) // 70+30 > 80, break, y = 10+30

	assert.True(t, broke)
	assert.Equal(t, 40.0, pg.Y())
	assert.Equal(t, 1, pg.Breaks())
}

func TestPaginatorExactFitDoesNotBreak(t *testing.T) {
	pg := NewPaginator(100, 10, 20)

	pg.Advance(30) // y = 40
	broke := pg.Advance(40) // 40+40 == 80, fits exactly

	assert.False(t, broke)
	assert.Equal(t, 80.0, pg.Y())
}

func TestPaginatorCountsEveryBreak(t *testing.T) {
	pg := NewPaginator(100, 10, 20)

	for i := 0; i < 10; i++ {
		pg.Advance(25)
	}

	// 2 lines of 25 fit per page (10+25+25 = 60, a third would hit 85 > 80).
	assert.Equal(t, 4, pg.Breaks())
}
