// Package oracle talks to the Gemini conversation model.
//
// Every user turn becomes exactly one structured-output generation: the
// model answers with a reply, an action tag, and product identifiers.
// The [Decision] is handed to the caller and forgotten; the oracle keeps
// no state between turns and never touches the session.
package oracle

// Action tags what the assistant decided to do with a turn.
//
// The client does not validate the tag against this set. Interpretation
// is the caller's merge policy, and an unknown tag simply matches no
// branch there.
type Action string

const (
	ActionRecommendProducts Action = "RECOMMEND_PRODUCTS"
	ActionAddToCart         Action = "ADD_TO_CART"
	ActionSummarizeCart     Action = "SUMMARIZE_CART"
	ActionNone              Action = "NONE"
)

// Decision is the structured answer to one conversation turn.
type Decision struct {
	// Reply is the natural language response shown to the user.
	Reply string `json:"reply"`

	// Action tags how the caller should interpret ProductIDs.
	Action Action `json:"action"`

	// ProductIDs lists catalog identifiers related to the action.
	// May be empty; may reference products the catalog does not have.
	ProductIDs []int `json:"productIds"`
}
