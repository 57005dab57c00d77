// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package fem

import (
	"math"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/la"
	"github.com/cpmech/gosl/utl"
)

// MatVec computes a (possibly distributed) matrix-vector product v = A ⋅ u.
// Implementations must not modify u and must fill v completely.
type MatVec func(v, u la.Vector)

// Jacobi is a diagonal smoother/preconditioner
type Jacobi struct {
	idiag la.Vector // inverse of the assembled diagonal
}

// NewJacobi allocates a diagonal smoother given the assembled diagonal
func NewJacobi(diag la.Vector) (o *Jacobi, err error) {
	o = new(Jacobi)
	o.idiag = la.NewVector(len(diag))
	for i, d := range diag {
		if d == 0 {
			return nil, chk.Err("Jacobi smoother: zero diagonal entry at row %d", i)
		}
		o.idiag[i] = 1.0 / d
	}
	return
}

// Apply computes v = D⁻¹ ⋅ u
func (o *Jacobi) Apply(v, u la.Vector) {
	for i, ui := range u {
		v[i] = o.idiag[i] * ui
	}
}

// Gmres solves A ⋅ x = b with the restarted generalised minimal residual
// method, right-preconditioned with the (optional) Jacobi smoother.
// x holds the initial guess on input and the solution on output.
func Gmres(x, b la.Vector, mv MatVec, prec *Jacobi, tol float64, maxit int) (iters int, err error) {

	// allocate workspace
	const m = 30 // restart length
	n := len(b)
	V := utl.Alloc(m+1, n)
	H := utl.Alloc(m+1, m)
	cs := make([]float64, m)
	sn := make([]float64, m)
	g := la.NewVector(m + 1)
	y := make([]float64, m)
	r := la.NewVector(n)
	w := la.NewVector(n)
	z := la.NewVector(n)

	bnorm := b.Norm()
	if bnorm == 0 {
		x.Fill(0)
		return 0, nil
	}

	for iters < maxit {

		// residual of the outer iteration
		mv(r, x)
		for i := 0; i < n; i++ {
			r[i] = b[i] - r[i]
		}
		beta := r.Norm()
		if beta <= tol*bnorm {
			return iters, nil
		}
		for i := 0; i < n; i++ {
			V[0][i] = r[i] / beta
		}
		g.Fill(0)
		g[0] = beta

		// Arnoldi process with modified Gram-Schmidt
		k := 0
		for ; k < m && iters < maxit; k++ {
			iters++

			// w = A ⋅ M⁻¹ ⋅ vₖ
			if prec != nil {
				prec.Apply(z, V[k])
				mv(w, z)
			} else {
				mv(w, V[k])
			}
			for i := 0; i <= k; i++ {
				H[i][k] = la.VecDot(w, V[i])
				for j := 0; j < n; j++ {
					w[j] -= H[i][k] * V[i][j]
				}
			}
			H[k+1][k] = w.Norm()
			if H[k+1][k] > 0 {
				for j := 0; j < n; j++ {
					V[k+1][j] = w[j] / H[k+1][k]
				}
			}

			// previous Givens rotations
			for i := 0; i < k; i++ {
				t := cs[i]*H[i][k] + sn[i]*H[i+1][k]
				H[i+1][k] = -sn[i]*H[i][k] + cs[i]*H[i+1][k]
				H[i][k] = t
			}

			// new Givens rotation annihilating H[k+1][k]
			d := math.Hypot(H[k][k], H[k+1][k])
			if d == 0 {
				return iters, chk.Err("Gmres: breakdown at iteration %d", iters)
			}
			cs[k] = H[k][k] / d
			sn[k] = H[k+1][k] / d
			H[k][k] = d
			H[k+1][k] = 0
			g[k+1] = -sn[k] * g[k]
			g[k] = cs[k] * g[k]

			if math.Abs(g[k+1]) <= tol*bnorm {
				k++
				break
			}
		}

		// back substitution and update
		for i := k - 1; i >= 0; i-- {
			y[i] = g[i]
			for j := i + 1; j < k; j++ {
				y[i] -= H[i][j] * y[j]
			}
			y[i] /= H[i][i]
		}
		z.Fill(0)
		for j := 0; j < k; j++ {
			for i := 0; i < n; i++ {
				z[i] += y[j] * V[j][i]
			}
		}
		if prec != nil {
			prec.Apply(w, z)
			copy(z, w)
		}
		for i := 0; i < n; i++ {
			x[i] += z[i]
		}
		if math.Abs(g[k]) <= tol*bnorm {
			return iters, nil
		}
	}

	// verify the final residual before giving up
	mv(r, x)
	for i := 0; i < n; i++ {
		r[i] = b[i] - r[i]
	}
	if r.Norm() <= tol*bnorm {
		return iters, nil
	}
	return iters, chk.Err("Gmres did not converge after %d iterations", iters)
}

// Minres solves A ⋅ x = b for symmetric (possibly indefinite) A with the
// minimal residual method of Paige and Saunders, preconditioned with the
// Jacobi smoother. x holds the initial guess on input and the solution on
// output.
func Minres(x, b la.Vector, mv MatVec, prec *Jacobi, tol float64, maxit int) (iters int, err error) {

	n := len(b)
	r1 := la.NewVector(n)
	r2 := la.NewVector(n)
	y := la.NewVector(n)
	v := la.NewVector(n)
	w := la.NewVector(n)
	w1 := la.NewVector(n)
	w2 := la.NewVector(n)

	// initial residual
	mv(r1, x)
	for i := 0; i < n; i++ {
		r1[i] = b[i] - r1[i]
	}
	if prec != nil {
		prec.Apply(y, r1)
	} else {
		copy(y, r1)
	}
	beta1 := la.VecDot(r1, y)
	if beta1 < 0 {
		return 0, chk.Err("Minres: smoother is not positive definite")
	}
	if beta1 == 0 {
		return 0, nil
	}
	beta1 = math.Sqrt(beta1)

	var oldb, epsln, phi float64
	beta := beta1
	dbar := 0.0
	phibar := beta1
	cs := -1.0
	sn := 0.0
	copy(r2, r1)

	for iters = 1; iters <= maxit; iters++ {

		// Lanczos step
		s := 1.0 / beta
		for i := 0; i < n; i++ {
			v[i] = s * y[i]
		}
		mv(y, v)
		if iters >= 2 {
			c := beta / oldb
			for i := 0; i < n; i++ {
				y[i] -= c * r1[i]
			}
		}
		alfa := la.VecDot(v, y)
		c := alfa / beta
		for i := 0; i < n; i++ {
			y[i] -= c * r2[i]
		}
		copy(r1, r2)
		copy(r2, y)
		if prec != nil {
			prec.Apply(y, r2)
		} else {
			copy(y, r2)
		}
		oldb = beta
		beta = la.VecDot(r2, y)
		if beta < 0 {
			return iters, chk.Err("Minres: smoother is not positive definite")
		}
		beta = math.Sqrt(beta)

		// apply previous rotation
		oldeps := epsln
		delta := cs*dbar + sn*alfa
		gbar := sn*dbar - cs*alfa
		epsln = sn * beta
		dbar = -cs * beta

		// compute next rotation
		gamma := math.Hypot(gbar, beta)
		if gamma == 0 {
			gamma = math.SmallestNonzeroFloat64
		}
		cs = gbar / gamma
		sn = beta / gamma
		phi = cs * phibar
		phibar = sn * phibar

		// update solution
		denom := 1.0 / gamma
		copy(w1, w2)
		copy(w2, w)
		for i := 0; i < n; i++ {
			w[i] = (v[i] - oldeps*w1[i] - delta*w2[i]) * denom
			x[i] += phi * w[i]
		}

		if phibar <= tol*beta1 {
			return iters, nil
		}
	}
	return maxit, chk.Err("Minres did not converge after %d iterations", maxit)
}
