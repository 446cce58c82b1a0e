package chain

import (
	"fmt"
	"strings"

	"github.com/johns/query-chain/internal/category"
)

// stageSpec describes one stage of the chain: its display name, the label
// under which its completion is injected into later prompts, its fixed
// instruction, and the output example appended to its prompt.
type stageSpec struct {
	name        string
	section     string
	instruction string
	example     string
}

var stages = [5]stageSpec{
	{
		name:    "Intent Interpretation",
		section: "Summarized Intent",
		instruction: `System Role: You are an expert customer service analyst. Your task is to interpret a raw customer query and determine the core intent and sentiment.

Task: Analyze the following customer query and provide a **single, brief, and objective summary** of the customer's intent and purpose. Do not attempt to categorize or respond yet.`,
		example: "The customer wants to know why a charge on their debit card statement is unfamiliar and needs it resolved.",
	},
	{
		name:    "Possible Categories",
		section: "Possible Categories",
		instruction: fmt.Sprintf(`System Role: You are a banking system classifier. Your task is to match a summarized customer intent to all relevant service categories.

Available Categories: %s

Task: Given the customer's summarized intent, identify **all possible categories** that could potentially apply. Output the categories as a comma-separated list.`, category.List()),
		example: "Transaction Inquiry, Card Services, Billing Issue",
	},
	{
		name:    "Final Category",
		section: "Final Category",
		instruction: `System Role: You are a senior banking service manager. Your task is to review potential categories and select the absolute best fit.

Task: From the list of possible categories provided below, select the **single most appropriate category** that accurately and specifically represents the customer's summarized intent. Output **only the name of the category**.`,
		example: "Transaction Inquiry",
	},
	{
		name:    "Extracted Details",
		section: "Additional Details Needed",
		instruction: `System Role: You are a customer information extractor. Your task is to identify and list any missing or necessary details required to resolve the customer's query based on the final category chosen.

Task: Based on the **Final Category** and the **Summarized Intent**, identify up to three pieces of **critical, missing information** needed to proceed (e.g., Account number, date, amount, last 4 digits of card, etc.). If no information is needed, state "None". Output the required details as a comma-separated list.`,
		example: "Transaction Date, Transaction Amount, Card Type (Debit or Credit)",
	},
	{
		name:    "Final Response",
		section: "Final Response",
		instruction: `System Role: You are a professional, helpful customer service agent. Your task is to draft a brief and courteous response.

Task: Draft a **short, professional, and empathetic response** to the customer. Acknowledge their issue based on the **Final Category** and **Summarized Intent**, and politely ask them to provide the **Additional Details Needed** to help them immediately. The response should be 1-3 sentences long.`,
		example: "Thank you for reaching out regarding your transaction inquiry. We understand this is important. To help us locate the charge and resolve this, could you please provide the Transaction Date, Transaction Amount, and whether it was a Debit or Credit card?",
	},
}

// buildPrompt assembles one stage's prompt: the fixed instruction, the
// original query, then every completed stage's output under its section
// label in stage order. Later stages always see the full accumulated
// context.
func buildPrompt(s stageSpec, c *Context) string {
	var b strings.Builder

	b.WriteString(s.instruction)

	b.WriteString("\n\nCustomer Query:\n")
	b.WriteString(c.Query)

	for _, r := range c.Results {
		b.WriteString("\n\n")
		b.WriteString(stages[r.Stage-1].section)
		b.WriteString(":\n")
		b.WriteString(r.Completion)
	}

	b.WriteString("\n\nOutput Format Example: ")
	b.WriteString(s.example)

	return b.String()
}
