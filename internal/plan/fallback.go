package plan

// FallbackStrategy is an optional recovery annotation on a plan: what to do
// when a given condition occurs during execution. Strategies are advisory
// output for the caller; the executor does not interpret them.
type FallbackStrategy struct {
	Condition            string   `json:"condition"`
	Action               string   `json:"action"`
	Description          string   `json:"description,omitempty"`
	SuccessProbability   float64  `json:"success_probability"`
	ResourceRequirements []string `json:"resource_requirements,omitempty"`
}
