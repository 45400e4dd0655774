package oracle

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/stylesphere/stylesphere/internal/catalog"
	"github.com/stylesphere/stylesphere/internal/session"
)

// personaPrompt is the fixed system framing for every turn. The %v
// placeholder carries the USD to INR conversion rate shown to users.
const personaPrompt = `You are a world-class virtual shopping assistant for an online store called "StyleSphere".
Your goal is to help users find products they love based on their preferences, style, and budget.
You must be friendly, helpful, and conversational.
All prices in the catalog are in USD. The user will see prices in Indian Rupees (₹), where 1 USD is approximately %v INR. When discussing budget with the user, please consider this conversion.
You will be given the user's latest message, the entire chat history, and a list of available products in JSON format.
Based on this information, you must decide on the best response and action.

You MUST respond with a single valid JSON object that adheres to the provided schema. Do not wrap it in markdown backticks.`

// behaviorPrompt closes the prompt with the action selection rules.
const behaviorPrompt = `Analyze the user's request in the context of the chat history and product catalog.
- If the user asks to add something to the cart, use the 'ADD_TO_CART' action and include the ID of the most relevant product. If multiple, pick one and ask for clarification.
- If the user asks for recommendations (e.g., "show me jackets", "something for my dad", "a dress under ₹4000"), use the 'RECOMMEND_PRODUCTS' action and provide an array of relevant product IDs. Limit recommendations to 2-4 items.
- If the user wants to see their cart or get a summary, use the 'SUMMARIZE_CART' action.
- If the user's message is a greeting, small talk, or an unrelated question, use the 'NONE' action and provide a helpful, conversational reply.
- Be proactive. If a user seems unsure, ask clarifying questions about their style, budget, or occasion.
- Your 'reply' should always be a natural language text response to the user.

Now, provide your JSON response.`

// promptProduct is the reduced product shape shown to the model.
// Image URLs and ratings would burn tokens without informing the
// decision.
type promptProduct struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
}

// promptMessage is a transcript entry as serialized into the prompt.
type promptMessage struct {
	Sender string `json:"sender"`
	Text   string `json:"text"`
}

// buildPrompt assembles the full turn prompt. The products slice is
// already truncated by the caller; order is preserved so the model sees
// the same leading slice of the catalog every turn.
func buildPrompt(userMessage string, history []session.Message, products []catalog.Product, conversionRate float64) (string, error) {
	simplified := make([]promptProduct, len(products))
	for i, p := range products {
		simplified[i] = promptProduct{
			ID:          p.ID,
			Title:       p.Title,
			Price:       p.Price,
			Category:    p.Category,
			Description: p.Description,
		}
	}
	catalogJSON, err := json.MarshalIndent(simplified, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing catalog: %w", err)
	}

	serialized := make([]promptMessage, len(history))
	for i, m := range history {
		serialized[i] = promptMessage{Sender: string(m.Sender), Text: m.Text}
	}
	historyJSON, err := json.MarshalIndent(serialized, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serializing history: %w", err)
	}

	var b strings.Builder
	fmt.Fprintf(&b, personaPrompt, conversionRate)
	b.WriteString("\n\nHere is the product catalog (a subset for brevity):\n")
	b.Write(catalogJSON)
	b.WriteString("\n\nHere is the chat history (user and your previous responses):\n")
	b.Write(historyJSON)
	b.WriteString("\n\nHere is the user's new message:\n")
	fmt.Fprintf(&b, "%q\n\n", userMessage)
	b.WriteString(behaviorPrompt)

	return b.String(), nil
}
