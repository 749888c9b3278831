package session

// Rect is a rectangle in viewport coordinates.
type Rect struct {
	Top    int
	Left   int
	Width  int
	Height int
}

func (r Rect) Bottom() int { return r.Top + r.Height }
func (r Rect) Right() int  { return r.Left + r.Width }

// Viewport describes the visible window and its scroll offset.
type Viewport struct {
	Width   int
	Height  int
	ScrollX int
	ScrollY int
}

// Point is a card anchor in page coordinates (scroll included).
type Point struct {
	Top  int
	Left int
}

// DefaultCardSize is the width/height estimate used before the card has
// rendered and reported its real dimensions.
const DefaultCardSize = 400

const (
	edgeMargin = 10
	anchorGap  = 5
)

// CardPosition computes where to place the card for a selection. The
// card goes directly below the selection; when there is not enough room
// below and more room above, it goes above instead. The result is
// clamped so the card never extends past a viewport edge. cardWidth and
// cardHeight may be zero before first render, in which case the default
// estimate is used.
func CardPosition(sel Rect, cardWidth, cardHeight int, vp Viewport) Point {
	if cardWidth <= 0 {
		cardWidth = DefaultCardSize
	}
	if cardHeight <= 0 {
		cardHeight = DefaultCardSize
	}

	top := vp.ScrollY + sel.Bottom() + anchorGap
	left := vp.ScrollX + sel.Left

	spaceBelow := vp.Height - sel.Bottom()
	spaceAbove := sel.Top

	if spaceBelow < cardHeight && spaceAbove > spaceBelow {
		top = vp.ScrollY + sel.Top - cardHeight - anchorGap
		if top < vp.ScrollY {
			top = vp.ScrollY + edgeMargin
		}
	} else {
		maxTop := vp.ScrollY + vp.Height - cardHeight - edgeMargin
		if top > maxTop {
			top = maxTop
		}
	}

	if left+cardWidth > vp.ScrollX+vp.Width {
		left = vp.ScrollX + vp.Width - cardWidth - edgeMargin
	}
	if left < vp.ScrollX+edgeMargin {
		left = vp.ScrollX + edgeMargin
	}

	return Point{Top: top, Left: left}
}
