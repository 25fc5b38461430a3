package review

import (
	"strings"
	"testing"
)

func validDraft() Review {
	return Review{
		ProjectSummary:        "Builds a 12-qubit superconducting processor.",
		AlignmentWithGoals:    "Strong alignment with the program's research goals.",
		TeamExperience:        "PhD-level quantum physics team.",
		MilestoneFeasibility:  "Ambitious but plausible milestones.",
		OriginalityOfIdea:     "7/10 (Fairly Original) - Novel architecture despite a competitive field.",
		BudgetJustification:   "Budget is detailed but lacks vendor quotes.",
		EthicalConsiderations: "Briefly addressed; acceptable for this stage.",
		ThingsToClarify:       "1. Provide vendor quotes.\n2. Clarify team roles.",
		FinalReviewComment:    "Promising proposal with refinable budget details.",
		OverallScore:          72,
		Verdict:               VerdictAcceptedInterviewRec,
	}
}

func TestValidateAndNormalizeAccepts(t *testing.T) {
	r := validDraft()
	if err := validateAndNormalize(&r); err != nil {
		t.Fatalf("validateAndNormalize: %v", err)
	}
	if r.Verdict != Classify(r.OverallScore) {
		t.Fatalf("verdict %q does not match Classify(%d)", r.Verdict, r.OverallScore)
	}
}

func TestValidateOverridesModelVerdict(t *testing.T) {
	// Score and verdict disagree in the draft; the score wins.
	r := validDraft()
	r.OverallScore = 30
	r.Verdict = VerdictAccepted
	if err := validateAndNormalize(&r); err != nil {
		t.Fatalf("validateAndNormalize: %v", err)
	}
	if r.Verdict != VerdictRejected {
		t.Fatalf("verdict = %q, want %q", r.Verdict, VerdictRejected)
	}
}

func TestValidateRejectsMissingField(t *testing.T) {
	r := validDraft()
	r.TeamExperience = "   "
	if err := validateAndNormalize(&r); err == nil {
		t.Fatal("expected error for missing teamExperience")
	}
}

func TestValidateRejectsScoreOutOfRange(t *testing.T) {
	for _, score := range []int{-1, 101, 250} {
		r := validDraft()
		r.OverallScore = score
		if err := validateAndNormalize(&r); err == nil {
			t.Fatalf("expected error for overallScore=%d", score)
		}
	}
}

func TestValidateRejectsVerdictOutsideEnum(t *testing.T) {
	r := validDraft()
	r.Verdict = Verdict("Maybe")
	if err := validateAndNormalize(&r); err == nil {
		t.Fatal("expected error for verdict outside enumeration")
	}
}

func TestValidateAcceptsModelRejectedInterviewRec(t *testing.T) {
	// The fifth enum value is valid input even though Classify never emits it.
	r := validDraft()
	r.OverallScore = 45
	r.Verdict = VerdictRejectedInterviewRec
	if err := validateAndNormalize(&r); err != nil {
		t.Fatalf("validateAndNormalize: %v", err)
	}
	if r.Verdict != VerdictRejected {
		t.Fatalf("verdict = %q, want %q after normalization", r.Verdict, VerdictRejected)
	}
}

func TestValidateOriginalityFormat(t *testing.T) {
	good := []string{
		"0/10 (Not Original) - Duplicate of well-known work.",
		"10/10 (Highly Original) - Nothing similar found.",
		"8/10 (Fairly Original) - Little prior documentation.",
	}
	for _, s := range good {
		r := validDraft()
		r.OriginalityOfIdea = s
		if err := validateAndNormalize(&r); err != nil {
			t.Errorf("originality %q rejected: %v", s, err)
		}
	}
	bad := []string{
		"Fairly original, about 7/10.",
		"7 out of 10 - decent",
		"11/10 (Beyond Original) - impossible sub-score",
		"7/10 - missing band label",
	}
	for _, s := range bad {
		r := validDraft()
		r.OriginalityOfIdea = s
		if err := validateAndNormalize(&r); err == nil {
			t.Errorf("originality %q accepted, want rejection", s)
		}
	}
}

func TestParseNumberedList(t *testing.T) {
	items, err := ParseNumberedList("1. First question\n2. Second question\n3. Third")
	if err != nil {
		t.Fatalf("ParseNumberedList: %v", err)
	}
	if len(items) != 3 || items[0] != "First question" || items[2] != "Third" {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestParseNumberedListFoldsContinuations(t *testing.T) {
	items, err := ParseNumberedList("1. A long question\nthat wraps onto a second line\n2. Another")
	if err != nil {
		t.Fatalf("ParseNumberedList: %v", err)
	}
	if len(items) != 2 || !strings.Contains(items[0], "second line") {
		t.Fatalf("unexpected items: %v", items)
	}
}

func TestParseNumberedListRejectsUnnumbered(t *testing.T) {
	if _, err := ParseNumberedList("just some prose without numbering"); err == nil {
		t.Fatal("expected error for unnumbered text")
	}
	if _, err := ParseNumberedList("   \n  "); err == nil {
		t.Fatal("expected error for empty list")
	}
}
