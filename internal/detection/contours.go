package detection

import (
	"math"

	"github.com/ironsheep/cemetery-detector/internal/imaging"
)

// Point represents a 2D coordinate in pixel space.
type Point struct {
	X int `json:"x"` // Horizontal position (0 = leftmost)
	Y int `json:"y"` // Vertical position (0 = topmost)
}

// Bounds represents a bounding box in pixel coordinates.
//
// Both corners are inclusive: a single pixel at (3,4) has bounds (3,4)-(3,4).
type Bounds struct {
	X1 int `json:"x1"` // Left edge (inclusive)
	Y1 int `json:"y1"` // Top edge (inclusive)
	X2 int `json:"x2"` // Right edge (inclusive)
	Y2 int `json:"y2"` // Bottom edge (inclusive)
}

// Contour is the closed outer boundary of one foreground region, listed
// clockwise (with Y pointing down) starting from its top-left pixel.
type Contour struct {
	Points []Point `json:"points"`
	Bounds Bounds  `json:"bounds"`
}

// FindExternalContours traces the outer boundary of every outermost
// foreground region in mask. A pixel is foreground when its value is
// non-zero.
//
// # Algorithm
//
//  1. Labeling: flood-fill groups foreground pixels into 8-connected
//     components.
//  2. Outside background: a second flood-fill marks every background pixel
//     4-connected to the image border.
//  3. External test: a component is outermost if it touches the image border
//     or is 4-adjacent to outside background. Components sitting in the hole
//     of another component are skipped.
//  4. Tracing: Moore-neighbour tracing walks the boundary clockwise from the
//     component's first pixel in raster order, stopping when it re-enters the
//     start pixel the same way it first left it.
//
// Contours are returned in raster order of their start pixels.
func FindExternalContours(mask *imaging.Plane) []Contour {
	width, height := mask.Width, mask.Height
	if width <= 0 || height <= 0 {
		return nil
	}

	labels, starts := labelComponents(mask)
	outside := outsideBackground(mask)

	external := make([]bool, len(starts)+1)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			label := labels[y*width+x]
			if label == 0 || external[label] {
				continue
			}
			if x == 0 || y == 0 || x == width-1 || y == height-1 {
				external[label] = true
				continue
			}
			i := y*width + x
			if outside[i-1] || outside[i+1] || outside[i-width] || outside[i+width] {
				external[label] = true
			}
		}
	}

	contours := make([]Contour, 0)
	for idx, start := range starts {
		label := idx + 1
		if !external[label] {
			continue
		}
		points := traceBoundary(labels, width, height, label, start)
		contours = append(contours, Contour{
			Points: points,
			Bounds: boundsOf(points),
		})
	}
	return contours
}

// labelComponents assigns 8-connected component labels starting at 1 and
// returns the first pixel of each component in raster order.
func labelComponents(mask *imaging.Plane) ([]int, []Point) {
	width, height := mask.Width, mask.Height
	labels := make([]int, width*height)
	starts := make([]Point, 0)

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			i := y*width + x
			if mask.Pix[i] == 0 || labels[i] != 0 {
				continue
			}
			starts = append(starts, Point{X: x, Y: y})
			floodFill(labels, width, height, x, y, len(starts), func(j int) bool {
				return mask.Pix[j] != 0
			}, true)
		}
	}
	return labels, starts
}

// outsideBackground marks background pixels 4-connected to the image border.
func outsideBackground(mask *imaging.Plane) []bool {
	width, height := mask.Width, mask.Height
	marks := make([]int, width*height)
	isBackground := func(j int) bool { return mask.Pix[j] == 0 }

	seed := func(x, y int) {
		i := y*width + x
		if isBackground(i) && marks[i] == 0 {
			floodFill(marks, width, height, x, y, 1, isBackground, false)
		}
	}
	for x := 0; x < width; x++ {
		seed(x, 0)
		seed(x, height-1)
	}
	for y := 0; y < height; y++ {
		seed(0, y)
		seed(width-1, y)
	}

	outside := make([]bool, width*height)
	for i, m := range marks {
		outside[i] = m != 0
	}
	return outside
}

// floodFill performs iterative flood-fill from a starting point, writing
// label into every reachable pixel accepted by member.
//
// Uses a stack-based approach (not recursive) to avoid stack overflow on
// large regions. diagonal selects 8-connectivity instead of 4-connectivity.
func floodFill(labels []int, width, height, startX, startY, label int, member func(int) bool, diagonal bool) {
	stack := []Point{{X: startX, Y: startY}}

	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if p.X < 0 || p.X >= width || p.Y < 0 || p.Y >= height {
			continue
		}
		i := p.Y*width + p.X
		if labels[i] != 0 || !member(i) {
			continue
		}
		labels[i] = label

		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if !diagonal && dx != 0 && dy != 0 {
					continue
				}
				stack = append(stack, Point{X: p.X + dx, Y: p.Y + dy})
			}
		}
	}
}

// Moore neighbourhood in clockwise order (Y down), starting east.
var (
	mooreDX = [8]int{1, 1, 0, -1, -1, -1, 0, 1}
	mooreDY = [8]int{0, 1, 1, 1, 0, -1, -1, -1}
)

func directionOf(dx, dy int) int {
	for d := 0; d < 8; d++ {
		if mooreDX[d] == dx && mooreDY[d] == dy {
			return d
		}
	}
	return 4
}

// traceBoundary walks the outer boundary of the component with the given
// label. start must be the component's first pixel in raster order, so its
// west neighbour is guaranteed to lie outside the component.
func traceBoundary(labels []int, width, height, label int, start Point) []Point {
	inside := func(x, y int) bool {
		return x >= 0 && x < width && y >= 0 && y < height && labels[y*width+x] == label
	}

	// next scans clockwise around cur beginning just after the backtrack
	// direction and returns the first member pixel plus the new backtrack
	// direction as seen from that pixel.
	next := func(cur Point, back int) (Point, int, bool) {
		for i := 1; i <= 8; i++ {
			d := (back + i) % 8
			n := Point{X: cur.X + mooreDX[d], Y: cur.Y + mooreDY[d]}
			if !inside(n.X, n.Y) {
				continue
			}
			prev := (d + 7) % 8
			bx, by := cur.X+mooreDX[prev], cur.Y+mooreDY[prev]
			return n, directionOf(bx-n.X, by-n.Y), true
		}
		return Point{}, 0, false
	}

	points := []Point{start}
	first, back, ok := next(start, 4)
	if !ok {
		return points
	}

	cur := first
	limit := 4*len(labels) + 8
	for steps := 0; steps < limit; steps++ {
		if cur == start {
			n, _, _ := next(cur, back)
			if n == first {
				break
			}
		}
		points = append(points, cur)
		cur, back, _ = next(cur, back)
	}
	return points
}

func boundsOf(points []Point) Bounds {
	b := Bounds{X1: math.MaxInt, Y1: math.MaxInt, X2: math.MinInt, Y2: math.MinInt}
	for _, p := range points {
		b.X1 = min(b.X1, p.X)
		b.Y1 = min(b.Y1, p.Y)
		b.X2 = max(b.X2, p.X)
		b.Y2 = max(b.Y2, p.Y)
	}
	return b
}

// ArcLength returns the perimeter of the closed polygon through points.
func ArcLength(points []Point) float64 {
	if len(points) < 2 {
		return 0
	}
	var length float64
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		length += math.Hypot(float64(b.X-a.X), float64(b.Y-a.Y))
	}
	return length
}

// Area returns the area enclosed by the closed polygon through points using
// the shoelace formula. Pixel centres are used as vertices, so the traced
// boundary of a filled w x h box encloses (w-1)*(h-1).
func Area(points []Point) float64 {
	if len(points) < 3 {
		return 0
	}
	var sum float64
	for i := range points {
		a := points[i]
		b := points[(i+1)%len(points)]
		sum += float64(a.X*b.Y - b.X*a.Y)
	}
	return math.Abs(sum) / 2
}

// ApproxPolygon simplifies a closed contour with the Douglas–Peucker
// algorithm. Points farther than epsilon from the simplified outline are
// kept as vertices.
//
// The contour is split at its first point and the point farthest from it,
// and each half is simplified independently.
func ApproxPolygon(points []Point, epsilon float64) []Point {
	n := len(points)
	if n < 3 {
		out := make([]Point, n)
		copy(out, points)
		return out
	}

	far, farDist := 0, -1.0
	for i, p := range points {
		if d := math.Hypot(float64(p.X-points[0].X), float64(p.Y-points[0].Y)); d > farDist {
			far, farDist = i, d
		}
	}
	if far == 0 {
		return []Point{points[0]}
	}

	firstHalf := simplifyChain(points[:far+1], epsilon)
	secondChain := append(append([]Point{}, points[far:]...), points[0])
	secondHalf := simplifyChain(secondChain, epsilon)

	// Both halves repeat the split points; drop the duplicates.
	out := append([]Point{}, firstHalf[:len(firstHalf)-1]...)
	out = append(out, secondHalf[:len(secondHalf)-1]...)
	return out
}

// simplifyChain is open-chain Douglas–Peucker. The first and last points are
// always kept.
func simplifyChain(points []Point, epsilon float64) []Point {
	if len(points) < 3 {
		return append([]Point{}, points...)
	}

	a, b := points[0], points[len(points)-1]
	maxDist, idx := 0.0, 0
	for i := 1; i < len(points)-1; i++ {
		if d := lineDistance(points[i], a, b); d > maxDist {
			maxDist, idx = d, i
		}
	}

	if maxDist <= epsilon {
		return []Point{a, b}
	}

	left := simplifyChain(points[:idx+1], epsilon)
	right := simplifyChain(points[idx:], epsilon)
	return append(left[:len(left)-1], right...)
}

// lineDistance is the perpendicular distance from p to the line through a
// and b, or the distance to a when a and b coincide.
func lineDistance(p, a, b Point) float64 {
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	length := math.Hypot(dx, dy)
	if length == 0 {
		return math.Hypot(float64(p.X-a.X), float64(p.Y-a.Y))
	}
	return math.Abs(dy*float64(p.X-a.X)-dx*float64(p.Y-a.Y)) / length
}
