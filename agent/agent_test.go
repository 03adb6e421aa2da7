package agent

import (
	"context"
	"strings"
	"testing"

	"github.com/etnz/fundnav"
	"github.com/etnz/fundnav/date"
	"google.golang.org/genai"
)

func result(t *testing.T) *fundnav.Result {
	t.Helper()
	d := date.MustParse
	l := fundnav.NewLedger("Fund I", []fundnav.CashflowRecord{
		fundnav.NewCashflowRecord(1, "Fund I", d("2025-09-30"), fundnav.Investment, "GBP", -100, -115),
		fundnav.NewCashflowRecord(2, "Fund I", d("2025-12-31"), fundnav.Interest, "GBP", 2.5, 2.875),
		fundnav.NewCashflowRecord(3, "Fund I", d("2026-03-31"), fundnav.PrincipalRepayment, "GBP", 100, 115),
	})
	var p fundnav.Pipeline
	res, err := p.RunLedger(l)
	if err != nil {
		t.Fatalf("RunLedger() unexpected error: %v", err)
	}
	return res
}

func TestTools(t *testing.T) {
	lib := NewLibrary(Tools(result(t)))
	ctx := context.Background()

	testCases := []struct {
		name    string
		args    map[string]any
		want    string
		wantErr string
	}{
		{name: "IRRs", want: "| GBP | 5.141% |"},
		{name: "NAVSchedule", args: map[string]any{"currency": "gbp"}, want: "| 2025-12-31 | 101.27 |"},
		{name: "NAVSchedule", args: map[string]any{"currency": "USD"}, wantErr: "USD"},
		{name: "Cashflows", want: "| 2 | 2025-12-31 | Interest | GBP | 2.50 | 2.88 |"},
		{name: "Trades", want: "GBP/EUR,2025-12-31,2026-03-31,Sell,GBP,98.77"},
		{name: "Holdings", wantErr: "unknown function Holdings"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			resp := lib(ctx, &genai.FunctionCall{ID: "1", Name: tc.name, Args: tc.args})
			if resp.ID != "1" || resp.Name != tc.name {
				t.Errorf("response = %s/%s, want 1/%s", resp.ID, resp.Name, tc.name)
			}
			if tc.wantErr != "" {
				msg, _ := resp.Response["error"].(string)
				if !strings.Contains(msg, tc.wantErr) {
					t.Errorf("error = %q, want it to contain %q", msg, tc.wantErr)
				}
				return
			}
			out, _ := resp.Response["output"].(string)
			if !strings.Contains(out, tc.want) {
				t.Errorf("output = %q, want it to contain %q", out, tc.want)
			}
		})
	}
}

func TestBrief(t *testing.T) {
	res := result(t)
	got := Brief(res, "Why two trades?")
	if !strings.Contains(got, "# Fund Analytics: Fund I") || !strings.HasSuffix(got, "Why two trades?") {
		t.Errorf("Brief() = %q", got)
	}
	if got := Brief(res, " "); !strings.Contains(got, "Comment on the returns") {
		t.Errorf("Brief() without question = %q", got)
	}
}

func TestNew(t *testing.T) {
	a := New(nil, strings.NewReader(""), "", NewAnalyst(result(t), "gemini-test"))
	if a.Facilitator.ModelName != DefaultModel {
		t.Errorf("facilitator model = %q, want %q", a.Facilitator.ModelName, DefaultModel)
	}
	decls := a.Facilitator.Config.Tools[0].FunctionDeclarations
	if len(decls) != 1 || decls[0].Name != "Analyst" {
		t.Errorf("facilitator tools = %v, want the Analyst", decls)
	}
	if _, err := a.Experts[0].Ask(context.Background(), &genai.Part{Text: "hi"}); err == nil {
		t.Error("Ask() on a chat not started want an error, got nil")
	}
}
