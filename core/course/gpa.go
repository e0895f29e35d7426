package course

import "math"

// ScoreToPoint converts a 0-100 score to the 4.0 scale (A=4, B=3, C=2, D=1, F=0).
func ScoreToPoint(score int) float64 {
	switch {
	case score >= 90:
		return 4.0
	case score >= 80:
		return 3.0
	case score >= 70:
		return 2.0
	case score >= 60:
		return 1.0
	default:
		return 0.0
	}
}

// ComputeGPA returns the credit-weighted average of the course points rounded to 2 decimals,
// or 0 when the courses carry no credits.
func ComputeGPA(courses []Course) float64 {
	var points, credits float64
	for _, c := range courses {
		points += ScoreToPoint(c.Score) * c.Credits
		credits += c.Credits
	}
	if credits <= 0 {
		return 0
	}
	return math.Round(points/credits*100) / 100
}
