// Package rubric defines the fixed set of call-quality evaluation parameters.
package rubric

// InputKind describes how a parameter is scored.
type InputKind int

const (
	// PassFail parameters yield either 0 or the full weight.
	PassFail InputKind = iota
	// Score parameters yield any integer in [0, weight].
	Score
)

// String returns the wire representation of the kind.
func (k InputKind) String() string {
	if k == PassFail {
		return "pass_fail"
	}
	return "score"
}

// MarshalJSON renders the kind as its wire string.
func (k InputKind) MarshalJSON() ([]byte, error) {
	return []byte(`"` + k.String() + `"`), nil
}

// Parameter is one named, weighted dimension of call-quality evaluation.
// The weight is the maximum attainable points for the parameter.
type Parameter struct {
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Weight      int       `json:"weight"`
	Description string    `json:"description"`
	Kind        InputKind `json:"kind"`
}

// table is the compiled-in rubric. Defined once, read-only; safe for
// concurrent reads from any number of requests.
var table = []Parameter{
	{
		Key:         "greeting",
		Name:        "Greeting",
		Weight:      5,
		Description: "Agent opens the call with the standard greeting and states their name.",
		Kind:        PassFail,
	},
	{
		Key:         "active_listening",
		Name:        "Active Listening",
		Weight:      10,
		Description: "Agent acknowledges the customer's statements and does not interrupt or talk over them.",
		Kind:        Score,
	},
	{
		Key:         "empathy",
		Name:        "Empathy",
		Weight:      10,
		Description: "Agent recognises the customer's frustration or concern and responds with appropriate empathy.",
		Kind:        Score,
	},
	{
		Key:         "clarity",
		Name:        "Communication Clarity",
		Weight:      10,
		Description: "Agent speaks clearly, avoids jargon, and explains next steps in plain language.",
		Kind:        Score,
	},
	{
		Key:         "resolution",
		Name:        "Issue Resolution",
		Weight:      15,
		Description: "Agent identifies the customer's issue correctly and resolves it or sets a concrete follow-up.",
		Kind:        Score,
	},
	{
		Key:         "product_knowledge",
		Name:        "Product Knowledge",
		Weight:      10,
		Description: "Agent answers product and policy questions accurately without guessing.",
		Kind:        Score,
	},
	{
		Key:         "hold_procedure",
		Name:        "Hold Procedure",
		Weight:      5,
		Description: "Agent asks permission before placing the customer on hold and thanks them afterwards; full marks if no hold occurred.",
		Kind:        PassFail,
	},
	{
		Key:         "compliance",
		Name:        "Compliance",
		Weight:      10,
		Description: "Agent completes the mandatory verification and disclosure statements required by the call script.",
		Kind:        PassFail,
	},
	{
		Key:         "professionalism",
		Name:        "Professionalism",
		Weight:      10,
		Description: "Agent maintains a courteous, composed tone throughout the call, including under pressure.",
		Kind:        Score,
	},
	{
		Key:         "closing",
		Name:        "Call Closing",
		Weight:      5,
		Description: "Agent summarises the outcome, offers further assistance, and closes the call politely.",
		Kind:        PassFail,
	},
}

// Table returns the ordered evaluation parameters. Callers must not mutate
// the returned slice.
func Table() []Parameter {
	return table
}

// MaxTotal returns the sum of all parameter weights.
func MaxTotal() int {
	total := 0
	for _, p := range table {
		total += p.Weight
	}
	return total
}

// Find returns the parameter with the given key.
func Find(key string) (Parameter, bool) {
	for _, p := range table {
		if p.Key == key {
			return p, true
		}
	}
	return Parameter{}, false
}
