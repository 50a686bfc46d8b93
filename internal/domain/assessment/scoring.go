package assessment

const (
	RiskLow       = "Low"
	RiskMedium    = "Medium"
	RiskHigh      = "High"
	RiskSevere    = "Severe"
	RiskUndefined = "Undefined"
)

const (
	MinDimensionScore = 0
	MaxDimensionScore = 5
	MaxTotalScore     = MaxDimensionScore * 13
)

type RiskCategory struct {
	Category string `json:"category"`
	Action   string `json:"action"`
}

type riskBand struct {
	min      int
	max      int
	category string
	action   string
}

// Bands are inclusive and partition [0,65] with no gaps or overlaps.
var riskBands = []riskBand{
	{0, 10, RiskLow, "Standard deployment procedures. Routine monitoring. Document AIA. Approval typically by Project/System Owner."},
	{11, 25, RiskMedium, "Requires documented Mitigation Plan (Section 9). Enhanced monitoring procedures. Requires review/endorsement by [Specify Role, e.g., AI Governance Committee or relevant Senior Manager]. Approval potentially involves Accountable AI Official oversight."},
	{26, 40, RiskHigh, "Requires comprehensive Mitigation Plan with clear timelines and owners. Strict oversight and monitoring. Requires formal approval from [Specify Senior Role, e.g., Designated Accountable AI Official, SES Band 1/2]. Limitations on use may be needed."},
	{41, 65, RiskSevere, "Requires robust Mitigation Plan addressing all significant risks. Requires highest level approval [Specify Executive Role, e.g., Agency Head / Deputy Secretary / Designated Senior Accountable AI Official]. Deployment may be contingent on significant redesign, specific limitations, independent review, or may be prohibited if risks cannot be adequately mitigated."},
}

const undefinedAction = "Score out of expected range."

func ComputeTotal(scores map[string]DimensionScore) int {
	total := 0
	for _, entry := range scores {
		total += entry.Score
	}
	return total
}

func ClassifyRisk(total int) RiskCategory {
	for _, band := range riskBands {
		if total >= band.min && total <= band.max {
			return RiskCategory{Category: band.category, Action: band.action}
		}
	}
	return RiskCategory{Category: RiskUndefined, Action: undefinedAction}
}
