package da

// NormalizeAnalysisResult maps the backend's raw nested result shape to the
// canonical report: score becomes total_score, summary becomes
// overall_assessment, and every field under details is carried over. The
// mapping is pure and total — no I/O, no dropped fields, and slices pass
// through structurally unchanged (empty slices stay empty, absent stays
// absent).
func NormalizeAnalysisResult(raw *RawAnalysisResult) *AnalysisReport {
	d := raw.Details

	return &AnalysisReport{
		Title:                  d.Title,
		TotalScore:             raw.Score,
		OverallAssessment:      raw.Summary,
		Strengths:              cloneStrings(d.Strengths),
		Weaknesses:             cloneStrings(d.Weaknesses),
		ImprovementSuggestions: cloneStrings(d.ImprovementSuggestions),
		EvaluationCriteria:     cloneCriteria(d.EvaluationCriteria),
	}
}

// cloneStrings copies a slice, preserving nil versus empty.
func cloneStrings(src []string) []string {
	if src == nil {
		return nil
	}
	out := make([]string, len(src))
	copy(out, src)
	return out
}

func cloneCriteria(src []EvaluationCriterion) []EvaluationCriterion {
	if src == nil {
		return nil
	}
	out := make([]EvaluationCriterion, len(src))
	for i, c := range src {
		out[i] = EvaluationCriterion{
			Category:         c.Category,
			Score:            c.Score,
			MaxScore:         c.MaxScore,
			MinScoreRequired: c.MinScoreRequired,
			IsPassed:         c.IsPassed,
			SubCriteria:      cloneSubCriteria(c.SubCriteria),
			Reasoning:        c.Reasoning,
		}
	}
	return out
}

func cloneSubCriteria(src []SubCriterion) []SubCriterion {
	if src == nil {
		return nil
	}
	out := make([]SubCriterion, len(src))
	copy(out, src)
	return out
}
