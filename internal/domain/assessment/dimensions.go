package assessment

const Version = "1.1"

// Dimensions is the canonical scoring order. Reports and schema export
// iterate this slice, never the record map.
var Dimensions = []string{
	"Human Impact",
	"Contestability and Redress",
	"Explainability and Interpretability",
	"Bias and Fairness",
	"Privacy Risk",
	"Data Representativeness",
	"Autonomy and Oversight",
	"Accountability and Auditability",
	"Security and Resilience",
	"Monitoring and Drift",
	"Ethical Considerations",
	"Legal Compliance",
	"Robustness and Reliability",
}

var ethicsPrinciples = map[string]string{
	"Human Impact":                        "1 (Human, societal & environmental wellbeing), 2 (Human-centred values)",
	"Contestability and Redress":          "7 (Contestability)",
	"Explainability and Interpretability": "6 (Transparency & explainability)",
	"Bias and Fairness":                   "3 (Fairness)",
	"Privacy Risk":                        "4 (Privacy protection & security)",
	"Data Representativeness":             "3 (Fairness), 5 (Reliability & safety)",
	"Autonomy and Oversight":              "8 (Accountability), 2 (Human-centred values)",
	"Accountability and Auditability":     "8 (Accountability), 6 (Transparency & explainability)",
	"Security and Resilience":             "5 (Reliability & safety), 4 (Privacy protection & security)",
	"Monitoring and Drift":                "5 (Reliability & safety), 8 (Accountability)",
	"Ethical Considerations":              "1 (Human, societal & environmental wellbeing), 2 (Human-centred values)",
	"Legal Compliance":                    "(Legal basis for all)",
	"Robustness and Reliability":          "5 (Reliability & safety)",
}

func IsDimension(name string) bool {
	_, ok := ethicsPrinciples[name]
	return ok
}

func EthicsPrinciples(dimension string) string {
	return ethicsPrinciples[dimension]
}
