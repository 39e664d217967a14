package da

// Per-dimension detail reports, served by
// GET /evaluation/results/{market|financial|technical|risk}/{id}.
// These are fetched through the strict client variant; the caller is
// expected to sit inside an error boundary.

// MarketAnalysis is the market-dimension detail report.
type MarketAnalysis struct {
	Title              string               `json:"title"`
	TargetAudience     string               `json:"target_audience"`
	MarketSize         MarketSize           `json:"market_size"`
	CompetitorAnalysis []CompetitorAnalysis `json:"competitor_analysis"`
	MarketTrends       []string             `json:"market_trends"`
}

// MarketSize carries the TAM/SAM/SOM estimates as backend-formatted strings.
type MarketSize struct {
	TAM string `json:"tam"`
	SAM string `json:"sam"`
	SOM string `json:"som"`
}

// CompetitorAnalysis is one row of the competitor matrix.
type CompetitorAnalysis struct {
	Competitor string   `json:"competitor"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// FinancialAnalysis is the financial-dimension detail report.
type FinancialAnalysis struct {
	Title                 string              `json:"title"`
	RevenueProjections    []RevenueProjection `json:"revenue_projections"`
	CostAnalysis          CostAnalysis        `json:"cost_analysis"`
	BreakEvenPoint        string              `json:"break_even_point"`
	FundingRecommendation string              `json:"funding_recommendation"`
}

// RevenueProjection is one projected year of revenue.
type RevenueProjection struct {
	Year        int    `json:"year"`
	Revenue     string `json:"revenue"`
	Assumptions string `json:"assumptions"`
}

// CostAnalysis summarizes the proposal's cost structure.
type CostAnalysis struct {
	InitialInvestment  string `json:"initial_investment"`
	MonthlyFixedCost   string `json:"monthly_fixed_cost"`
	VariableCostPerUse string `json:"variable_cost_per_use"`
}

// TechnicalAnalysis is the technical-dimension detail report.
type TechnicalAnalysis struct {
	Title                     string        `json:"title"`
	TechnologyStackAssessment TechnologyStackAssessment `json:"technology_stack_assessment"`
	Scalability               string        `json:"scalability"`
	SecurityRisks             []string      `json:"security_risks"`
}

// TechnologyStackAssessment evaluates the proposed stack layer by layer.
type TechnologyStackAssessment struct {
	Frontend   string `json:"frontend"`
	Backend    string `json:"backend"`
	Infra      string `json:"infra"`
	Evaluation string `json:"evaluation"`
}

// RiskAnalysis is the risk-dimension detail report.
type RiskAnalysis struct {
	Title      string     `json:"title"`
	RiskMatrix []RiskItem `json:"risk_matrix"`
}

// RiskItem is one row of the risk matrix.
type RiskItem struct {
	Risk               string `json:"risk"`
	Likelihood         string `json:"likelihood"`
	Impact             string `json:"impact"`
	MitigationStrategy string `json:"mitigation_strategy"`
}
