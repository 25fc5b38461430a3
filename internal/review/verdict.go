package review

// Classify maps an overall score to its verdict. The boundaries are
// inclusive as listed and this is the only path allowed to set a verdict on
// a returned review:
//
//	< 50   Rejected
//	50–59  Interview Required
//	60–75  Accepted, Interview Recommended
//	>= 76  Accepted
//
// VerdictRejectedInterviewRec is part of the accepted enumeration because
// models occasionally emit it, but Classify never produces it.
func Classify(score int) Verdict {
	switch {
	case score < 50:
		return VerdictRejected
	case score <= 59:
		return VerdictInterviewRequired
	case score <= 75:
		return VerdictAcceptedInterviewRec
	default:
		return VerdictAccepted
	}
}

// OriginalityBand names the 0-10 originality sub-score band used in the
// originalityOfIdea formatting requirement.
func OriginalityBand(score int) string {
	switch {
	case score <= 2:
		return "Not Original"
	case score <= 5:
		return "Somewhat Original"
	case score <= 8:
		return "Fairly Original"
	default:
		return "Highly Original"
	}
}
