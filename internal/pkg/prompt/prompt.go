// Package prompt assembles instruction and content blocks for the
// generative service. Instruction text is fixed; only parameter
// interpolation varies, so identical inputs always produce identical
// prompts.
package prompt

import (
	"fmt"
	"strings"

	"github.com/floww-ai/backend/internal/entity"
)

const workflowInstructions = `You are an expert business consultant specializing in enterprise sales processes.
Generate a clear, actionable deal-closing workflow for the deal described below.
Respond with ONLY a JSON object in exactly this shape, no prose, no markdown:
{"workflow": [{"stage": "<stage name>", "tip": "<1-2 concise best-practice tips>"}, ...]}`

const proposalInstructions = `You are a senior solutions consultant writing a commercial proposal.
Respond with ONLY a JSON object, no prose, no markdown, in exactly this shape:
{"title": string, "executive_summary": string, "background": string,
"solution_overview": string, "deliverables": [string, ...],
"pricing": [{"item": string, "qty": number, "unit": string, "price": number}, ...],
"next_steps": string, "timeline_gantt": string,
"risks": [{"description": string, "impact": string, "mitigation": string}, ...]}
The timeline_gantt field must be a mermaid gantt chart covering the delivery phases.`

const diagramInstructions = `You are a sales-process architect. Group the workflow stages below into
named phases and express them as a mermaid flowchart with labeled transitions.
Respond with ONLY the mermaid diagram text starting with "graph TD". No prose.`

const leadInstructions = `You are a sales coach. In 2-3 sentences, suggest the single best next
action to advance the lead described below. Respond with plain text only.`

// Workflow builds the prompt for primary workflow generation.
func Workflow(params entity.DealParams) entity.CompletionRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "Industry: %s\n", params.Industry)
	fmt.Fprintf(&b, "Client Type: %s\n", params.ClientType)
	fmt.Fprintf(&b, "Deal Size: %s\n", params.Bucket())
	if params.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", params.Company)
	}
	if params.Persona != "" {
		fmt.Fprintf(&b, "Buyer Persona: %s\n", params.Persona)
	}

	return entity.CompletionRequest{
		Instructions: workflowInstructions,
		Content:      b.String(),
		Temperature:  0, // schema-constrained output
		MaxTokens:    900,
	}
}

// Proposal builds the prompt for proposal generation. The workflow, when one
// exists in the session, informs the proposal but is not required.
func Proposal(req entity.GenerateProposalRequest, workflow *entity.Workflow) entity.CompletionRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "Industry: %s\n", req.Industry)
	fmt.Fprintf(&b, "Client Type: %s\n", req.ClientType)
	fmt.Fprintf(&b, "Deal Size: %s\n", entity.BucketForAmount(req.DealAmount))
	if req.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", req.Company)
	}
	if req.MonthsToClose > 0 {
		fmt.Fprintf(&b, "Months To Close: %d\n", req.MonthsToClose)
	}
	if workflow != nil {
		fmt.Fprintf(&b, "Sales Workflow Stages: %s\n", strings.Join(workflow.StageNames(), ", "))
	}

	return entity.CompletionRequest{
		Instructions: proposalInstructions,
		Content:      b.String(),
		Temperature:  0,
		MaxTokens:    1800,
	}
}

// Diagram builds the prompt for the advanced, phase-grouped diagram. Its
// output is fence-stripped only, never schema-validated.
func Diagram(workflow *entity.Workflow) entity.CompletionRequest {
	var b strings.Builder
	b.WriteString("Workflow stages in order:\n")
	for i, s := range workflow.Stages {
		fmt.Fprintf(&b, "%d. %s\n", i+1, s.Name)
	}

	return entity.CompletionRequest{
		Instructions: diagramInstructions,
		Content:      b.String(),
		Temperature:  0.7, // structure is loose here, variety is fine
		MaxTokens:    600,
	}
}

// LeadSuggestion builds the per-row prompt of a bulk playbook operation.
func LeadSuggestion(lead entity.Lead) entity.CompletionRequest {
	var b strings.Builder
	fmt.Fprintf(&b, "Company: %s\n", lead.Company)
	if lead.Contact != "" {
		fmt.Fprintf(&b, "Contact: %s\n", lead.Contact)
	}
	if lead.Industry != "" {
		fmt.Fprintf(&b, "Industry: %s\n", lead.Industry)
	}
	if lead.Notes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", lead.Notes)
	}

	return entity.CompletionRequest{
		Instructions: leadInstructions,
		Content:      b.String(),
		Temperature:  0.7,
		MaxTokens:    200,
	}
}
