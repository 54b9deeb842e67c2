package mot

import "testing"

func TestSolveAssignmentSquare(t *testing.T) {
	cost := [][]float64{
		{1, 2, 3},
		{2, 4, 6},
		{3, 6, 9},
	}
	assignment, total, err := solveAssignment(cost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 10 {
		t.Fatalf("expected total cost 10, got %f", total)
	}
	for r, c := range assignment {
		if c < 0 || c >= len(cost[0]) {
			t.Fatalf("row %d left unassigned or out of range: %d", r, c)
		}
	}
	seen := make(map[int]bool)
	for _, c := range assignment {
		if seen[c] {
			t.Fatalf("column %d assigned twice", c)
		}
		seen[c] = true
	}
}

func TestSolveAssignmentMoreRowsThanCols(t *testing.T) {
	cost := [][]float64{
		{1, 5},
		{5, 1},
		{3, 3},
	}
	assignment, _, err := solveAssignment(cost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	unassigned := 0
	for _, c := range assignment {
		if c == -1 {
			unassigned++
		}
	}
	if unassigned != 1 {
		t.Fatalf("expected exactly one unassigned row, got %d", unassigned)
	}
}

func TestSolveAssignmentRejectsNegative(t *testing.T) {
	cost := [][]float64{{1, -1}, {2, 3}}
	if _, _, err := solveAssignment(cost); err == nil {
		t.Fatal("expected an error for a negative cost entry")
	}
}

func TestSolveAssignmentEmpty(t *testing.T) {
	assignment, total, err := solveAssignment(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if assignment != nil || total != 0 {
		t.Fatalf("expected empty result, got %v, %f", assignment, total)
	}
}

func TestSolveAssignmentNoColumns(t *testing.T) {
	cost := [][]float64{{}, {}}
	assignment, total, err := solveAssignment(cost)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if total != 0 {
		t.Fatalf("expected zero cost, got %f", total)
	}
	for _, c := range assignment {
		if c != -1 {
			t.Fatalf("expected all rows unassigned, got %d", c)
		}
	}
}
