package review

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	originalityRe  = regexp.MustCompile(`^(\d{1,2})/10 \(.+\) - .+`)
	numberedItemRe = regexp.MustCompile(`^\d+\.\s*(.*)$`)
)

// validateAndNormalize enforces the review contract on a model draft and
// then recomputes the verdict from the overall score. The model emits both
// fields independently and they can disagree; the recomputation is what
// makes `verdict == Classify(overallScore)` hold on every review this
// package returns.
func validateAndNormalize(r *Review) error {
	required := []struct {
		name  string
		value *string
	}{
		{"projectSummary", &r.ProjectSummary},
		{"alignmentWithGoals", &r.AlignmentWithGoals},
		{"teamExperience", &r.TeamExperience},
		{"milestoneFeasibility", &r.MilestoneFeasibility},
		{"originalityOfIdea", &r.OriginalityOfIdea},
		{"budgetJustification", &r.BudgetJustification},
		{"ethicalConsiderations", &r.EthicalConsiderations},
		{"thingsToClarify", &r.ThingsToClarify},
		{"finalReviewComment", &r.FinalReviewComment},
	}
	for _, f := range required {
		*f.value = strings.TrimSpace(*f.value)
		if *f.value == "" {
			return fmt.Errorf("%s is required", f.name)
		}
	}

	if r.OverallScore < MinScore || r.OverallScore > MaxScore {
		return fmt.Errorf("overallScore %d out of range [%d,%d]", r.OverallScore, MinScore, MaxScore)
	}
	if !verdictInEnum(r.Verdict) {
		return fmt.Errorf("verdict %q outside enumeration", r.Verdict)
	}
	if err := validateOriginality(r.OriginalityOfIdea); err != nil {
		return err
	}
	if _, err := ParseNumberedList(r.ThingsToClarify); err != nil {
		return fmt.Errorf("thingsToClarify: %w", err)
	}

	r.Verdict = Classify(r.OverallScore)
	return nil
}

func verdictInEnum(v Verdict) bool {
	for _, allowed := range AllVerdicts {
		if v == allowed {
			return true
		}
	}
	return false
}

func validateOriginality(s string) error {
	m := originalityRe.FindStringSubmatch(s)
	if m == nil {
		return fmt.Errorf("originalityOfIdea %q does not match \"N/10 (<band>) - <justification>\"", s)
	}
	sub, err := strconv.Atoi(m[1])
	if err != nil || sub > 10 {
		return fmt.Errorf("originalityOfIdea sub-score %q out of range [0,10]", m[1])
	}
	return nil
}

// ParseNumberedList splits a numbered-list-as-single-string field into its
// items. The first line must carry a "1." style marker; continuation lines
// without a marker are folded into the previous item.
func ParseNumberedList(s string) ([]string, error) {
	items := []string{}
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		m := numberedItemRe.FindStringSubmatch(line)
		if m == nil {
			if len(items) == 0 {
				return nil, fmt.Errorf("line %q is not a numbered item", line)
			}
			items[len(items)-1] += " " + line
			continue
		}
		items = append(items, m[1])
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	return items, nil
}
