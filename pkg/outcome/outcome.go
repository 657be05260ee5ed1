// Package outcome computes home/draw/away probability triples from league
// goal parameters using a Dixon-Coles adjusted bivariate Poisson model, and
// applies a logistic recalibration layer on top. Every function here is pure:
// no I/O, no package-level mutable state.
package outcome

import (
	"math"

	"github.com/jhw/footy-analytics-core/pkg/football"
)

const (
	lambdaMin = 0.20
	lambdaMax = 3.80
	// scoreBound is the per-side goal cutoff for the joint PMF grid; goal
	// counts beyond this contribute negligible probability mass.
	scoreBound = 10

	logitScaleMin = 0.50
	logitScaleMax = 1.80
	logProbFloor  = 1e-9
	probSumFloor  = 1e-12
)

func clamp(x, lo, hi float64) float64 {
	if x < lo {
		return lo
	}
	if x > hi {
		return hi
	}
	return x
}

// Lambdas derives the clamped home/away Poisson rates from the league's
// total-goals and home-advantage parameters.
func Lambdas(goalsTotalBase, homeAdvGoals float64) (lambdaHome, lambdaAway float64) {
	lambdaHome = clamp((goalsTotalBase+homeAdvGoals)/2, lambdaMin, lambdaMax)
	lambdaAway = clamp((goalsTotalBase-homeAdvGoals)/2, lambdaMin, lambdaMax)
	return
}

// ProbsFromParams computes the raw (uncalibrated) outcome distribution for a
// league parameter triple, per the Dixon-Coles adjusted bivariate Poisson.
func ProbsFromParams(goalsTotalBase, homeAdvGoals, rho float64) football.Prob3 {
	lambdaHome, lambdaAway := Lambdas(goalsTotalBase, homeAdvGoals)
	return poissonDC(lambdaHome, lambdaAway, rho)
}

func poissonPMF(lambda float64, k int) float64 {
	return math.Exp(float64(k)*math.Log(lambda) - lambda - logFactorial(k))
}

func logFactorial(n int) float64 {
	if n <= 1 {
		return 0
	}
	sum := 0.0
	for i := 2; i <= n; i++ {
		sum += math.Log(float64(i))
	}
	return sum
}

// DCTau is the Dixon-Coles low-score correction factor for cell (h, a).
func DCTau(h, a int, lambdaHome, lambdaAway, rho float64) float64 {
	switch {
	case h == 0 && a == 0:
		return 1 - lambdaHome*lambdaAway*rho
	case h == 0 && a == 1:
		return 1 + lambdaHome*rho
	case h == 1 && a == 0:
		return 1 + lambdaAway*rho
	case h == 1 && a == 1:
		return 1 - rho
	default:
		return 1
	}
}

func poissonDC(lambdaHome, lambdaAway, rho float64) football.Prob3 {
	var pHome, pDraw, pAway, total float64
	for h := 0; h <= scoreBound; h++ {
		ph := poissonPMF(lambdaHome, h)
		for a := 0; a <= scoreBound; a++ {
			pa := poissonPMF(lambdaAway, a)
			cell := ph * pa * DCTau(h, a, lambdaHome, lambdaAway, rho)
			if cell < 0 {
				cell = 0
			}
			total += cell
			switch {
			case h > a:
				pHome += cell
			case h < a:
				pAway += cell
			default:
				pDraw += cell
			}
		}
	}
	if total < probSumFloor {
		total = probSumFloor
	}
	return football.Prob3{Home: pHome / total, Draw: pDraw / total, Away: pAway / total}
}

// ApplyLogitCalibration applies the mean-centered log-linear recalibration
// described by (scale, drawBias) to an outcome distribution. scale is
// clamped to [0.50, 1.80]; the draw bias is added to the draw log only.
func ApplyLogitCalibration(p football.Prob3, scale, drawBias float64) football.Prob3 {
	scale = clamp(scale, logitScaleMin, logitScaleMax)

	logHome := logFloor(p.Home)
	logDraw := logFloor(p.Draw) + drawBias
	logAway := logFloor(p.Away)

	mean := (logHome + logDraw + logAway) / 3
	logHome = (logHome - mean) * scale
	logDraw = (logDraw - mean) * scale
	logAway = (logAway - mean) * scale

	return softmax3(logHome, logDraw, logAway)
}

func logFloor(p float64) float64 {
	if p < logProbFloor {
		p = logProbFloor
	}
	return math.Log(p)
}

func softmax3(a, b, c float64) football.Prob3 {
	maxV := math.Max(a, math.Max(b, c))
	ea := math.Exp(a - maxV)
	eb := math.Exp(b - maxV)
	ec := math.Exp(c - maxV)
	sum := ea + eb + ec
	if sum < probSumFloor {
		sum = probSumFloor
	}
	return football.Prob3{Home: ea / sum, Draw: eb / sum, Away: ec / sum}
}
