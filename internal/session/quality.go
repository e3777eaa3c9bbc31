package session

import "github.com/ksuda/kioku/internal/srs"

// Grade is the coarse self-assessment a learner gives after seeing the
// answer. It is pure UI policy: the scheduler only ever sees the integer
// quality it maps to.
type Grade string

const (
	GradeDontKnow Grade = "dont_know"
	GradeKnow     Grade = "know"
	GradePerfect  Grade = "perfect"
)

// Quality maps a grade to the scheduler's 0-5 quality scale.
func (g Grade) Quality() int {
	switch g {
	case GradeDontKnow:
		return 1
	case GradeKnow:
		return 4
	case GradePerfect:
		return 5
	}
	return srs.QualityPass
}

// ClampQuality bounds a raw quality value to [0,5]. The scheduler's
// arithmetic assumes the range but does not enforce it, so every entry
// point into a session goes through here.
func ClampQuality(q int) int {
	if q < srs.QualityMin {
		return srs.QualityMin
	}
	if q > srs.QualityMax {
		return srs.QualityMax
	}
	return q
}
