package formatter

// Paginator tracks a vertical cursor over fixed-height pages. When advancing
// a line would leave less than the bottom margin of space, the cursor breaks
// to a new page and resets to the top margin.
type Paginator struct {
	pageHeight   float64
	topMargin    float64
	bottomMargin float64
	y            float64
	breaks       int
}

func NewPaginator(pageHeight, topMargin, bottomMargin float64) *Paginator {
	return &Paginator{
		pageHeight:   pageHeight,
		topMargin:    topMargin,
		bottomMargin: bottomMargin,
		y:            topMargin,
	}
}

// Advance moves the cursor down by height and reports whether a page break
// was inserted first.
func (p *Paginator) Advance(height float64) bool {
	broke := false
	if p.y+height > p.pageHeight-p.bottomMargin {
		p.breaks++
		p.y = p.topMargin
		broke = true
	}
	p.y += height
	return broke
}

// Y is the current vertical cursor position on the current page.
func (p *Paginator) Y() float64 {
	return p.y
}

// Breaks is the number of page breaks inserted so far.
func (p *Paginator) Breaks() int {
	return p.breaks
}
