package field

// SolveLinearSystem returns the unique x with matrix·x = rhs over f, using Gauss-Jordan
// elimination with partial pivoting. The inputs are not modified.
//
// A *SingularSystemError is returned when some column has no nonzero pivot at or below
// the diagonal; a *DimensionError when matrix is not n×n or rhs is not of length n.
func (f PrimeField) SolveLinearSystem(matrix [][]Element, rhs []Element) ([]Element, error) {
	n := len(matrix)
	if len(rhs) != n {
		return nil, &DimensionError{Rows: n, RHS: len(rhs), Row: -1}
	}

	// Augmented copy [A | b], reduced into the field.
	aug := make([][]Element, n)
	for i, row := range matrix {
		if len(row) != n {
			return nil, &DimensionError{Rows: n, Cols: len(row), RHS: len(rhs), Row: i}
		}
		aug[i] = make([]Element, n+1)
		for j, v := range row {
			aug[i][j] = f.Reduce(v)
		}
		aug[i][n] = f.Reduce(rhs[i])
	}

	for col := 0; col < n; col++ {
		pivot := -1
		for r := col; r < n; r++ {
			if aug[r][col] != 0 {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			return nil, &SingularSystemError{Column: col}
		}
		if pivot != col {
			aug[col], aug[pivot] = aug[pivot], aug[col]
		}

		inv, err := f.Inverse(aug[col][col])
		if err != nil {
			return nil, err
		}
		for j := col; j <= n; j++ {
			aug[col][j] = f.Mul(aug[col][j], inv)
		}

		for r := 0; r < n; r++ {
			if r == col || aug[r][col] == 0 {
				continue
			}
			factor := aug[r][col]
			for j := col; j <= n; j++ {
				aug[r][j] = f.Sub(aug[r][j], f.Mul(factor, aug[col][j]))
			}
		}
	}

	solution := make([]Element, n)
	for i := range aug {
		solution[i] = aug[i][n]
	}
	return solution, nil
}

// MatVec returns matrix·x over f. Rows shorter than x are treated as zero-padded.
func (f PrimeField) MatVec(matrix [][]Element, x []Element) []Element {
	out := make([]Element, len(matrix))
	for i, row := range matrix {
		var sum Element
		for j, v := range row {
			if j >= len(x) {
				break
			}
			sum = f.Add(sum, f.Mul(v, x[j]))
		}
		out[i] = sum
	}
	return out
}
