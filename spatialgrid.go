package feather2d

import (
	"math"
	"slices"

	"github.com/akmonengine/feather2d/actor"
	"github.com/go-gl/mathgl/mgl64"
)

// ============================================================================
// Types
// ============================================================================

// CellKey is the coordinate of a grid cell
type CellKey struct {
	X, Y int
}

// Cell holds the indices of the bodies overlapping it
type Cell struct {
	bodyIndices []int
}

// Pair is a pair of bodies that may collide, BodyA always precedes BodyB in the world
type Pair struct {
	BodyA *actor.RigidBody
	BodyB *actor.RigidBody
}

// SpatialGrid is a uniform hashed grid used as an optional broad phase.
// For a given body list it returns exactly the pairs of the brute-force scan, in the same order.
type SpatialGrid struct {
	cellSize float64
	cells    []Cell
	cellMask int
}

// ============================================================================
// Constructor
// ============================================================================

// NewSpatialGrid creates a grid of cellSize wide cells, hashed into numCells buckets
// (rounded up to a power of two).
func NewSpatialGrid(cellSize float64, numCells int) *SpatialGrid {
	numCells = nextPowerOfTwo(numCells)

	cells := make([]Cell, numCells)
	for i := range cells {
		cells[i].bodyIndices = make([]int, 0, 8)
	}

	return &SpatialGrid{
		cellSize: cellSize,
		cells:    cells,
		cellMask: numCells - 1,
	}
}

func nextPowerOfTwo(n int) int {
	if n <= 0 {
		return 1
	}
	n--
	n |= n >> 1
	n |= n >> 2
	n |= n >> 4
	n |= n >> 8
	n |= n >> 16
	n++
	return n
}

// Insert adds a body to every cell its AABB covers.
// Reading the AABB here also refreshes the body's cache, so later concurrent reads are safe.
func (sg *SpatialGrid) Insert(bodyIndex int, body *actor.RigidBody) {
	aabb := body.GetAABB()
	minCell := sg.worldToCell(aabb.Min)
	maxCell := sg.worldToCell(aabb.Max)

	for x := minCell.X; x <= maxCell.X; x++ {
		for y := minCell.Y; y <= maxCell.Y; y++ {
			cellIdx := sg.hashCell(CellKey{x, y})
			cell := &sg.cells[cellIdx]

			// hash collisions can put the same body twice in a bucket
			if n := len(cell.bodyIndices); n > 0 && cell.bodyIndices[n-1] == bodyIndex {
				continue
			}
			cell.bodyIndices = append(cell.bodyIndices, bodyIndex)
		}
	}
}

func (sg *SpatialGrid) Clear() {
	for i := range sg.cells {
		sg.cells[i].bodyIndices = sg.cells[i].bodyIndices[:0]
	}
}

// FindPairs is the sequential pair search
func (sg *SpatialGrid) FindPairs(bodies []*actor.RigidBody) []Pair {
	seen := make([]bool, len(bodies))
	return sg.findPairsRange(bodies, 0, len(bodies), seen, nil)
}

// FindPairsParallel splits the bodies into contiguous ranges, one per worker,
// and concatenates the results in range order so the output matches FindPairs.
func (sg *SpatialGrid) FindPairsParallel(bodies []*actor.RigidBody, numWorkers int) []Pair {
	if numWorkers <= 1 || len(bodies) < 2 {
		return sg.FindPairs(bodies)
	}

	bodiesPerWorker := (len(bodies) + numWorkers - 1) / numWorkers
	ranges := make([]int, 0, numWorkers)
	for start := 0; start < len(bodies); start += bodiesPerWorker {
		ranges = append(ranges, start)
	}

	results := make([][]Pair, len(ranges))
	task(numWorkers, ranges, func(start int) {
		end := min(start+bodiesPerWorker, len(bodies))
		seen := make([]bool, len(bodies))
		results[start/bodiesPerWorker] = sg.findPairsRange(bodies, start, end, seen, nil)
	})

	return slices.Concat(results...)
}

// findPairsRange finds the pairs whose first body index lies in [start, end).
// Candidates of one body are sorted so the pair order follows the body order.
func (sg *SpatialGrid) findPairsRange(bodies []*actor.RigidBody, start, end int, seen []bool, pairs []Pair) []Pair {
	candidates := make([]int, 0, 16)

	for bodyIdx := start; bodyIdx < end; bodyIdx++ {
		bodyA := bodies[bodyIdx]
		aabb := bodyA.GetAABB()
		minCell := sg.worldToCell(aabb.Min)
		maxCell := sg.worldToCell(aabb.Max)

		candidates = candidates[:0]
		for x := minCell.X; x <= maxCell.X; x++ {
			for y := minCell.Y; y <= maxCell.Y; y++ {
				cellIdx := sg.hashCell(CellKey{x, y})

				for _, otherIdx := range sg.cells[cellIdx].bodyIndices {
					if otherIdx <= bodyIdx || seen[otherIdx] {
						continue
					}
					seen[otherIdx] = true
					candidates = append(candidates, otherIdx)
				}
			}
		}

		slices.Sort(candidates)
		for _, otherIdx := range candidates {
			seen[otherIdx] = false

			bodyB := bodies[otherIdx]
			if CanCollide(bodyA, bodyB) {
				pairs = append(pairs, Pair{BodyA: bodyA, BodyB: bodyB})
			}
		}
	}

	return pairs
}

func (sg *SpatialGrid) worldToCell(pos mgl64.Vec2) CellKey {
	return CellKey{
		X: int(math.Floor(pos.X() / sg.cellSize)),
		Y: int(math.Floor(pos.Y() / sg.cellSize)),
	}
}

func (sg *SpatialGrid) hashCell(key CellKey) int {
	h := (key.X * 73856093) ^ (key.Y * 19349663)
	return h & sg.cellMask
}
