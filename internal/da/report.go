package da

// RawAnalysisResult is the result payload as served by
// GET /evaluation/results/{id}: score and summary at the top level with
// everything else nested under details.
type RawAnalysisResult struct {
	Score   float64            `json:"score"`
	Summary string             `json:"summary"`
	Details RawAnalysisDetails `json:"details"`
}

// RawAnalysisDetails is the nested portion of the raw result.
type RawAnalysisDetails struct {
	Title                  string                `json:"title"`
	Strengths              []string              `json:"strengths"`
	Weaknesses             []string              `json:"weaknesses"`
	ImprovementSuggestions []string              `json:"improvement_suggestions"`
	EvaluationCriteria     []EvaluationCriterion `json:"evaluation_criteria"`
}

// EvaluationCriterion is one scored dimension of a report (market,
// financial, and so on) with a sub-breakdown and pass/fail threshold.
type EvaluationCriterion struct {
	Category         string         `json:"category"`
	Score            float64        `json:"score"`
	MaxScore         float64        `json:"max_score"`
	MinScoreRequired float64        `json:"min_score_required"`
	IsPassed         bool           `json:"is_passed"`
	SubCriteria      []SubCriterion `json:"sub_criteria"`
	Reasoning        string         `json:"reasoning"`
}

// SubCriterion is one named component score within a criterion.
type SubCriterion struct {
	Name  string  `json:"name"`
	Score float64 `json:"score"`
}

// AnalysisReport is the canonical result shape consumed by report views.
type AnalysisReport struct {
	Title                  string                `json:"title"`
	TotalScore             float64               `json:"total_score"`
	OverallAssessment      string                `json:"overall_assessment"`
	Strengths              []string              `json:"strengths"`
	Weaknesses             []string              `json:"weaknesses"`
	ImprovementSuggestions []string              `json:"improvement_suggestions"`
	EvaluationCriteria     []EvaluationCriterion `json:"evaluation_criteria"`
}
