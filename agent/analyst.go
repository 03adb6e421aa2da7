package agent

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/renderer"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.5-pro"

// creates the facilitator
func newFacilitator(model string, experts ...*Expert) *Expert {
	if model == "" {
		model = DefaultModel
	}
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and of answering the user's request
			about a fund analytics run.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They keep context of your previous questions.

			The user is a fund manager or analyst. Answer with figures taken from the experts, never
			invent a number. Keep answers short and use markdown tables when listing figures.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewAnalyst returns the expert in charge of the figures of 'res'.
func NewAnalyst(res *fundnav.Result, model string) *Expert {
	if model == "" {
		model = DefaultModel
	}
	lib := Tools(res)
	return &Expert{
		Name: "Analyst",
		Description: `This is the Analyst. It knows every figure computed for the fund:
		IRR per currency and for the fund, NAV schedules per currency, the proposed FX forwards and the
		underlying cashflows.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a fund analyst. Use the Tools to read the run figures.
				IRRs are annualized with an actual/365 day count. A NAV is the present value of the
				remaining cashflows of a currency discounted at its own IRR. Forwards sell the foreign
				currency against EUR for the NAV expected at delivery, discounted to the trade date.
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

// Func implements a simple Function
type Func struct {
	Decl *genai.FunctionDeclaration
	Func func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse
}

func (f *Func) Declaration() *genai.FunctionDeclaration { return f.Decl }
func (f *Func) Call(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
	return f.Func(ctx, id, args)
}

// outputFunc declares a function whose output is text.
func outputFunc(name, description string, output func(args map[string]any) (string, error), params *genai.Schema) *Func {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters:  params,
			Response:    &genai.Schema{Type: genai.TypeString, Description: "A markdown formatted answer."},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			out, err := output(args)
			if err != nil {
				return errorResponse(id, name, err)
			}
			return &genai.FunctionResponse{ID: id, Name: name, Response: map[string]any{"output": out}}
		},
	}
}

// Tools returns the functions exposing 'res' to a model.
func Tools(res *fundnav.Result) []Function {
	return []Function{
		outputFunc("IRRs", "IRR of each local currency and of the whole fund.",
			func(map[string]any) (string, error) {
				var b strings.Builder
				fmt.Fprintln(&b, "| Currency | IRR |")
				fmt.Fprintln(&b, "|:---|---:|")
				for _, cur := range slices.Sorted(maps.Keys(res.CurrencyIRRs)) {
					fmt.Fprintf(&b, "| %s | %s |\n", cur, fundnav.Rate(res.CurrencyIRRs[cur]))
				}
				fmt.Fprintf(&b, "| Fund | %s |\n", fundnav.Rate(res.FundIRR))
				return b.String(), nil
			}, nil),
		outputFunc("NAVSchedule", "NAV of a currency at each of its cashflow dates.",
			func(args map[string]any) (string, error) {
				cur, _ := args["currency"].(string)
				s, ok := res.NAVSchedules[strings.ToUpper(cur)]
				if !ok {
					return "", fmt.Errorf("%w %q, known currencies are %q", fundnav.ErrNoSchedule, cur, slices.Sorted(maps.Keys(res.NAVSchedules)))
				}
				var b strings.Builder
				fmt.Fprintln(&b, "| Date | NAV |")
				fmt.Fprintln(&b, "|:---|---:|")
				for on, nav := range s.Values() {
					fmt.Fprintf(&b, "| %s | %.2f |\n", on, nav)
				}
				return b.String(), nil
			},
			&genai.Schema{
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"currency": {Type: genai.TypeString, Description: "ISO code of the currency, like GBP."},
				},
				Required: []string{"currency"},
			}),
		outputFunc("Cashflows", "Every validated cashflow of the fund, in date order.",
			func(map[string]any) (string, error) {
				var b strings.Builder
				fmt.Fprintln(&b, "| ID | Date | Type | Currency | Local | Base |")
				fmt.Fprintln(&b, "|---:|:---|:---|:---|---:|---:|")
				for _, r := range res.Ledger.All() {
					fmt.Fprintf(&b, "| %d | %s | %s | %s | %.2f | %.2f |\n", r.ID(), r.When(), r.Type(), r.LocalCurrency(), r.AmountLocal(), r.AmountBase())
				}
				return b.String(), nil
			}, nil),
		outputFunc("Trades", "The proposed FX forward trades.",
			func(map[string]any) (string, error) {
				var b strings.Builder
				if err := renderer.TradesCSV(&b, res.Trades); err != nil {
					return "", err
				}
				return b.String(), nil
			}, nil),
	}
}

// Brief is the opening message sent to the facilitator: the run summary
// followed by the user's question.
func Brief(res *fundnav.Result, question string) string {
	if strings.TrimSpace(question) == "" {
		question = "Comment on the returns of this fund, and explain the proposed hedges."
	}
	return fmt.Sprintf("Here is the summary of the run:\n\n%s\n\n%s", renderer.Markdown(res), question)
}
