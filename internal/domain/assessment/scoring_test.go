package assessment

import "testing"

func uniformScores(score int) map[string]DimensionScore {
	scores := make(map[string]DimensionScore, len(Dimensions))
	for _, dim := range Dimensions {
		scores[dim] = DimensionScore{Score: score}
	}
	return scores
}

func TestComputeTotal(t *testing.T) {
	scores := uniformScores(0)
	scores["Privacy Risk"] = DimensionScore{Score: 4}
	scores["Bias and Fairness"] = DimensionScore{Score: 3}

	if got := ComputeTotal(scores); got != 7 {
		t.Fatalf("ComputeTotal() = %d, want 7", got)
	}
	if got := ComputeTotal(uniformScores(5)); got != MaxTotalScore {
		t.Fatalf("ComputeTotal() = %d, want %d", got, MaxTotalScore)
	}
	if got := ComputeTotal(uniformScores(0)); got != 0 {
		t.Fatalf("ComputeTotal() = %d, want 0", got)
	}
}

func TestClassifyRiskBoundaries(t *testing.T) {
	cases := []struct {
		total int
		want  string
	}{
		{0, RiskLow},
		{10, RiskLow},
		{11, RiskMedium},
		{25, RiskMedium},
		{26, RiskHigh},
		{40, RiskHigh},
		{41, RiskSevere},
		{65, RiskSevere},
	}
	for _, tc := range cases {
		if got := ClassifyRisk(tc.total); got.Category != tc.want {
			t.Fatalf("ClassifyRisk(%d) = %q, want %q", tc.total, got.Category, tc.want)
		}
	}
}

func TestClassifyRiskPartition(t *testing.T) {
	for total := 0; total <= MaxTotalScore; total++ {
		got := ClassifyRisk(total)
		switch got.Category {
		case RiskLow, RiskMedium, RiskHigh, RiskSevere:
		default:
			t.Fatalf("ClassifyRisk(%d) = %q, want a defined category", total, got.Category)
		}
		if got.Action == "" {
			t.Fatalf("ClassifyRisk(%d) returned empty action", total)
		}
	}
}

func TestClassifyRiskOutOfRange(t *testing.T) {
	for _, total := range []int{-1, 66, 1000} {
		got := ClassifyRisk(total)
		if got.Category != RiskUndefined {
			t.Fatalf("ClassifyRisk(%d) = %q, want %q", total, got.Category, RiskUndefined)
		}
		if got.Action != "Score out of expected range." {
			t.Fatalf("ClassifyRisk(%d) action = %q", total, got.Action)
		}
	}
}

func TestClassifyRiskIdempotent(t *testing.T) {
	first := ClassifyRisk(39)
	second := ClassifyRisk(39)
	if first != second {
		t.Fatalf("ClassifyRisk(39) not stable: %v vs %v", first, second)
	}
}
