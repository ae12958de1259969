package ats

import (
	"regexp"
	"strconv"
)

// Tier is a coarse seniority level.
type Tier int

const (
	TierUnknown Tier = iota - 1
	TierJunior
	TierMid
	TierSenior
)

func (t Tier) String() string {
	switch t {
	case TierJunior:
		return "junior"
	case TierMid:
		return "mid"
	case TierSenior:
		return "senior"
	default:
		return "unknown"
	}
}

// requiredYearsRe matches "5+ years", "3-5 years", "at least 4 years".
var requiredYearsRe = regexp.MustCompile(`(?i)\b(\d{1,2})\s*(?:\+|-\s*\d{1,2}|to\s*\d{1,2})?\s*(?:years?|yrs?)\b`)

// ParseTier maps a free-form level such as "Entry level", "Mid-Level" or
// "Senior" to a Tier. The first seniority word wins.
func ParseTier(level string) Tier {
	for t := range Terms(level) {
		if tier, ok := seniorityWords[t]; ok {
			return tier
		}
	}
	return TierUnknown
}

func tierForYears(years int) Tier {
	switch {
	case years >= 6:
		return TierSenior
	case years >= 3:
		return TierMid
	case years >= 1:
		return TierJunior
	default:
		return TierUnknown
	}
}

// JobTier resolves the level a job targets: the explicit field, then the title,
// then a years requirement in the text, then the first seniority word in the
// text. Jobs that say nothing are treated as mid level.
func JobTier(job JobDescription) Tier {
	if t := ParseTier(job.ExperienceLevel); t != TierUnknown {
		return t
	}
	if t := ParseTier(job.Title); t != TierUnknown {
		return t
	}
	if m := requiredYearsRe.FindStringSubmatch(job.Text); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			switch {
			case n >= 5:
				return TierSenior
			case n >= 2:
				return TierMid
			default:
				return TierJunior
			}
		}
	}
	if t := ParseTier(job.Text); t != TierUnknown {
		return t
	}
	return TierMid
}

// levelMatch scores résumé tier against job tier: 1 exact, 0.5 adjacent, 0 otherwise.
func levelMatch(resume, job Tier) float64 {
	d := int(resume) - int(job)
	if d < 0 {
		d = -d
	}
	switch d {
	case 0:
		return 1.0
	case 1:
		return 0.5
	default:
		return 0.0
	}
}
