package agent

import (
	"fmt"
	"strconv"
	"strings"
)

// SystemPrompt frames the model as an estimator for the trade.
const SystemPrompt = "You are a seasoned structured cabling contractor and estimator." +
	" You produce practical, buildable quotations, highlight assumptions," +
	" and make sensible allowances for labour and materials."

const fullResponseGuide = "Return a JSON object with these keys: analysis, products, labour_breakdown, clarifications, quotation." +
	" Keep the JSON structure simple. For quotation, use simple objects without deep nesting."

const questionsOnlyGuide = "Return a JSON object with a single key 'clarifications'." +
	" The value must be an array (even if empty) of short questions you still need answered."

const analysisPromptTemplate = `
You are a structured cabling contractor. The client has supplied the information below.

Project Title: {project_title}
Description: {project_description}
Building Type: {building_type}
Building Size: {building_size} sqm
Number of Floors: {number_of_floors}
Number of Rooms/Areas: {number_of_rooms}
Site Address: {site_address}

Solution Requirements:
- WiFi installation needed: {wifi_requirements}
- CCTV installation needed: {cctv_requirements}
- Door entry installation needed: {door_entry_requirements}
- Special requirements or constraints: {special_requirements}

Your tasks:
1. Identify any missing critical details (containment type, ceiling construction, patch panel counts, testing & certification, rack power, etc.). Ask up to 5 short clarification questions.
2. When sufficient information is available (or you must make reasonable assumptions), prepare a structured cabling quotation that includes: client requirement restatement, scope of works, materials list, labour estimate, and assumptions/exclusions.

Response rules:
- Always respond in JSON format.
- Return a JSON object with these keys:
  - analysis: concise narrative summary (string).
  - products: array of recommended products with item, quantity, unit, unit_price, total_price, part_number, notes.
  - alternatives: array describing optional approaches with pros/cons.
  - estimated_time: total installation hours (number).
  - labour_breakdown: array of objects describing tasks with hours, engineer_count, day_rate, cost, notes.
  - clarifications: array of outstanding clarification questions (if any remain).
  - quotation: object containing client_requirement, scope_of_works, materials, labour, assumptions_exclusions.

Pricing rules:
- All quantities MUST be numeric values only (e.g., 52.0, not "52.0 each" or "Allowance")
- All prices MUST be real GBP amounts
- Include part numbers for all products when available
- Always provide unit_price and total_price as numbers, never as text

If details are missing, state the assumption you are making inside the quotation sections and keep questions short and specific.
`

// ClarificationAnswer pairs a previously asked question with the client's
// answer for a follow-up analysis round.
type ClarificationAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// PromptInput carries everything the prompt builder folds into a single
// analysis request.
type PromptInput struct {
	Quote                QuoteContext
	DayRate              float64
	ConsistencyContext   string
	ClarificationAnswers []ClarificationAnswer
	QuestionsOnly        bool
}

// BuildAnalysisPrompts renders the system and user prompts for an analysis
// call. In questions-only mode the response guide restricts the model to a
// clarifications array.
func BuildAnalysisPrompts(in PromptInput) (system string, user string) {
	guide := fullResponseGuide
	if in.QuestionsOnly {
		guide = questionsOnlyGuide
	}
	system = guide + "\n\n" + SystemPrompt

	quote := in.Quote
	replacer := strings.NewReplacer(
		"{project_title}", quote.ProjectTitle,
		"{project_description}", quote.ProjectDescription,
		"{building_type}", quote.BuildingType,
		"{building_size}", formatBuildingSize(quote.BuildingSize),
		"{number_of_floors}", strconv.Itoa(orOne(quote.NumberOfFloors)),
		"{number_of_rooms}", strconv.Itoa(orOne(quote.NumberOfRooms)),
		"{site_address}", quote.SiteAddress,
		"{wifi_requirements}", strconv.FormatBool(quote.WifiRequirements),
		"{cctv_requirements}", strconv.FormatBool(quote.CCTVRequirements),
		"{door_entry_requirements}", strconv.FormatBool(quote.DoorEntryRequirements),
		"{special_requirements}", quote.SpecialRequirements,
	)

	var b strings.Builder
	b.WriteString(replacer.Replace(analysisPromptTemplate))

	if in.ConsistencyContext != "" {
		b.WriteString("\n\n")
		b.WriteString(in.ConsistencyContext)
	}

	if in.DayRate > 0 {
		fmt.Fprintf(&b, "\n\n**Labour Rate:** £%.0f per pair of engineers per day (8-hour day)", in.DayRate)
		fmt.Fprintf(&b, "\n**CRITICAL: £%.0f is the TOTAL cost for BOTH engineers working together for one day**", in.DayRate)
	}

	if len(in.ClarificationAnswers) > 0 {
		b.WriteString("\n\nClarification Responses:\n")
		for i, item := range in.ClarificationAnswers {
			answer := item.Answer
			if answer == "" {
				answer = "Not provided"
			}
			fmt.Fprintf(&b, "%d. Question: %s\n   Answer: %s\n", i+1, item.Question, answer)
		}
	}

	return system, b.String()
}

func formatBuildingSize(size *float64) string {
	if size == nil {
		return "0"
	}
	return strconv.FormatFloat(*size, 'f', -1, 64)
}

func orOne(n int) int {
	if n <= 0 {
		return 1
	}
	return n
}
