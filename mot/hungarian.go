package mot

import (
	"math"

	"github.com/pkg/errors"
)

// errNegativeCost is returned when the Hungarian solver is given a cost
// matrix containing a negative entry; the algorithm's reduction steps only
// make sense over nonnegative costs.
var errNegativeCost = errors.New("mot: cost matrix contains a negative entry")

// solveAssignment runs the Kuhn-Munkres algorithm on a rectangular
// nonnegative cost matrix cost[row][col] and returns, for each row, the
// assigned column index, or -1 if that row was left unassigned (only
// possible when rows outnumber columns). It also returns the total cost of
// the returned assignment.
func solveAssignment(cost [][]float64) ([]int, float64, error) {
	nRows := len(cost)
	if nRows == 0 {
		return nil, 0, nil
	}
	nCols := len(cost[0])
	if nCols == 0 {
		assignment := make([]int, nRows)
		for i := range assignment {
			assignment[i] = -1
		}
		return assignment, 0, nil
	}

	// working copy, row-major
	m := make([]float64, nRows*nCols)
	at := func(r, c int) float64 { return m[r*nCols+c] }
	set := func(r, c int, v float64) { m[r*nCols+c] = v }

	for r := 0; r < nRows; r++ {
		if len(cost[r]) != nCols {
			return nil, 0, errors.New("mot: cost matrix rows have inconsistent length")
		}
		for c := 0; c < nCols; c++ {
			v := cost[r][c]
			if v < 0 {
				return nil, 0, errNegativeCost
			}
			set(r, c, v)
		}
	}

	starred := make([]bool, nRows*nCols)
	primed := make([]bool, nRows*nCols)
	coveredRows := make([]bool, nRows)
	coveredCols := make([]bool, nCols)

	minDim := nRows
	if nCols < minDim {
		minDim = nCols
	}

	if nRows <= nCols {
		for r := 0; r < nRows; r++ {
			minVal := at(r, 0)
			for c := 1; c < nCols; c++ {
				if v := at(r, c); v < minVal {
					minVal = v
				}
			}
			for c := 0; c < nCols; c++ {
				set(r, c, at(r, c)-minVal)
			}
		}
		for r := 0; r < nRows; r++ {
			for c := 0; c < nCols; c++ {
				if at(r, c) == 0 && !coveredCols[c] {
					starred[r*nCols+c] = true
					coveredCols[c] = true
					break
				}
			}
		}
	} else {
		for c := 0; c < nCols; c++ {
			minVal := at(0, c)
			for r := 1; r < nRows; r++ {
				if v := at(r, c); v < minVal {
					minVal = v
				}
			}
			for r := 0; r < nRows; r++ {
				set(r, c, at(r, c)-minVal)
			}
		}
		for c := 0; c < nCols; c++ {
			for r := 0; r < nRows; r++ {
				if at(r, c) == 0 && !coveredRows[r] {
					starred[r*nCols+c] = true
					coveredCols[c] = true
					coveredRows[r] = true
					break
				}
			}
		}
		for r := range coveredRows {
			coveredRows[r] = false
		}
	}

	newStarred := make([]bool, nRows*nCols)

	coverStarredColumns := func() {
		for c := 0; c < nCols; c++ {
			for r := 0; r < nRows; r++ {
				if starred[r*nCols+c] {
					coveredCols[c] = true
					break
				}
			}
		}
	}
	coverStarredColumns()

	countCoveredCols := func() int {
		n := 0
		for _, v := range coveredCols {
			if v {
				n++
			}
		}
		return n
	}

	// step3/step4: find an uncovered zero, prime it, and either augment
	// (no starred zero in its row) or cover the row / uncover the star's
	// column and keep looking.
	step3 := func() {
		for {
			if countCoveredCols() == minDim {
				return
			}

			row, col, found := -1, -1, false
		search:
			for r := 0; r < nRows; r++ {
				if coveredRows[r] {
					continue
				}
				for c := 0; c < nCols; c++ {
					if coveredCols[c] {
						continue
					}
					if at(r, c) == 0 {
						row, col, found = r, c, true
						break search
					}
				}
			}

			if !found {
				// step5: adjust by the minimum uncovered entry.
				h := math.Inf(1)
				for r := 0; r < nRows; r++ {
					if coveredRows[r] {
						continue
					}
					for c := 0; c < nCols; c++ {
						if coveredCols[c] {
							continue
						}
						if v := at(r, c); v < h {
							h = v
						}
					}
				}
				for r := 0; r < nRows; r++ {
					if coveredRows[r] {
						for c := 0; c < nCols; c++ {
							set(r, c, at(r, c)+h)
						}
					}
				}
				for c := 0; c < nCols; c++ {
					if !coveredCols[c] {
						for r := 0; r < nRows; r++ {
							set(r, c, at(r, c)-h)
						}
					}
				}
				continue
			}

			primed[row*nCols+col] = true

			starCol := -1
			for c := 0; c < nCols; c++ {
				if starred[row*nCols+c] {
					starCol = c
					break
				}
			}
			if starCol == -1 {
				// step4: augmenting alternating path starting at (row, col).
				copy(newStarred, starred)
				newStarred[row*nCols+col] = true

				starRow, sCol := -1, col
				for r := 0; r < nRows; r++ {
					if starred[r*nCols+sCol] {
						starRow = r
						break
					}
				}
				for starRow != -1 {
					newStarred[starRow*nCols+sCol] = false

					primeCol := -1
					for c := 0; c < nCols; c++ {
						if primed[starRow*nCols+c] {
							primeCol = c
							break
						}
					}
					newStarred[starRow*nCols+primeCol] = true

					sCol = primeCol
					starRow = -1
					for r := 0; r < nRows; r++ {
						if starred[r*nCols+sCol] {
							starRow = r
							break
						}
					}
				}

				copy(starred, newStarred)
				for i := range primed {
					primed[i] = false
				}
				for r := range coveredRows {
					coveredRows[r] = false
				}
				for c := range coveredCols {
					coveredCols[c] = false
				}
				coverStarredColumns()
			} else {
				coveredRows[row] = true
				coveredCols[starCol] = false
			}
		}
	}
	step3()

	assignment := make([]int, nRows)
	for r := range assignment {
		assignment[r] = -1
	}
	for r := 0; r < nRows; r++ {
		for c := 0; c < nCols; c++ {
			if starred[r*nCols+c] {
				assignment[r] = c
				break
			}
		}
	}

	total := 0.0
	for r, c := range assignment {
		if c >= 0 {
			total += cost[r][c]
		}
	}

	return assignment, total, nil
}
