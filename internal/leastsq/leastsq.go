// Package leastsq solves weighted, optionally ridge-regularized
// least-squares systems for the periodogram engines.
//
// The solver operates on pre-weighted inputs: callers scale each design
// column and the target vector by 1/uncertainty before calling Solve, so
// the minimized quantity is the heteroscedastic chi-square
//
//	chi2(beta) = sum_i (yw[i] - sum_j Xw[i][j]*beta[j])^2 + sum_j reg[j]*beta[j]^2
//
// Ridge penalties are injected by row augmentation: each column j with
// reg[j] > 0 contributes one extra row with sqrt(reg[j]) on its diagonal
// position and a zero target entry. The augmented system is then solved
// through a QR factorization, which keeps the solve numerically stable
// when columns are nearly collinear (high harmonic counts relative to
// per-band sample counts produce exactly that).
package leastsq

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
)

// ErrSingular reports that the (regularized) system has no stable unique
// solution. Callers should reduce the harmonic order or request
// regularization rather than trust the coefficients.
var ErrSingular = errors.New("leastsq: singular or ill-conditioned system")

// ErrShape reports inconsistent input dimensions.
var ErrShape = errors.New("leastsq: inconsistent system dimensions")

// Solve minimizes ||yw - Xw*beta||^2 + sum_j reg[j]*beta[j]^2.
//
// cols holds the design matrix column-wise: cols[j][i] is row i of column
// j, already weighted by 1/uncertainty. yw is the weighted target vector.
// reg is either nil (unregularized) or one non-negative penalty per
// column. Returns the coefficient vector and the residual sum of squares
// at the optimum (penalty terms excluded, so the result is the model
// chi-square).
func Solve(cols [][]float64, yw []float64, reg []float64) (beta []float64, rss float64, err error) {
	nCols := len(cols)
	nRows := len(yw)
	if nCols == 0 || nRows == 0 {
		return nil, 0, ErrShape
	}
	for _, c := range cols {
		if len(c) != nRows {
			return nil, 0, ErrShape
		}
	}
	if reg != nil && len(reg) != nCols {
		return nil, 0, ErrShape
	}
	if nRows < nCols {
		return nil, 0, ErrShape
	}

	nAug := nRows
	if reg != nil {
		nAug += nCols
	}

	// Pack the column slices into a row-major dense matrix, appending the
	// sqrt-penalty rows when regularization is requested.
	data := make([]float64, nAug*nCols)
	for j, c := range cols {
		for i, v := range c {
			data[i*nCols+j] = v
		}
	}
	target := make([]float64, nAug)
	copy(target, yw)
	if reg != nil {
		for j, r := range reg {
			if r < 0 {
				return nil, 0, ErrShape
			}
			data[(nRows+j)*nCols+j] = math.Sqrt(r)
		}
	}

	a := mat.NewDense(nAug, nCols, data)
	b := mat.NewVecDense(nAug, target)

	var qr mat.QR
	qr.Factorize(a)

	var sol mat.VecDense
	if err := qr.SolveVecTo(&sol, false, b); err != nil {
		// gonum reports a mat.Condition error when the factorization is
		// ill-conditioned beyond mat.ConditionTolerance; any such system
		// is treated as singular rather than returning unstable numbers.
		return nil, 0, ErrSingular
	}

	beta = make([]float64, nCols)
	for j := range beta {
		beta[j] = sol.AtVec(j)
	}
	if !allFinite(beta) {
		return nil, 0, ErrSingular
	}

	// Residual sum of squares over the observation rows only.
	for i := 0; i < nRows; i++ {
		r := yw[i]
		for j, c := range cols {
			r -= c[i] * beta[j]
		}
		rss += r * r
	}
	return beta, rss, nil
}

func allFinite(x []float64) bool {
	for _, v := range x {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
