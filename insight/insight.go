// Package insight produces short generative flavor text about instruments
// and portfolios. The text is cosmetic: it is never parsed and never feeds
// any financial computation, so every failure path degrades to a fixed
// fallback string instead of an error.
package insight

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/miraclehq/miracle"
)

// DefaultModel is the Gemini model used for insight generation.
const DefaultModel = "gemini-2.0-flash"

const (
	instrumentFallback = "This instrument has shown steady market interest lately. " +
		"As always, past performance is no guarantee of future results."
	portfolioFallback = "Your portfolio keeps a cash cushion alongside its holdings. " +
		"Staying diversified remains the surest way to ride out day-to-day swings."
)

// Client holds the generative backend. The zero value is valid and always
// answers with the fallback text.
type Client struct {
	client *genai.Client
	model  string
}

// New initializes the Gemini client from the environment (GEMINI_API_KEY).
// When the client cannot be created the returned Client still works, it
// just sticks to the fallback text.
func New(ctx context.Context) *Client {
	c, err := genai.NewClient(ctx, nil)
	if err != nil {
		return &Client{}
	}
	return &Client{client: c, model: DefaultModel}
}

// InstrumentInsight returns one short paragraph about the instrument.
func (c *Client) InstrumentInsight(ctx context.Context, inst *miracle.Instrument) string {
	if inst == nil {
		return instrumentFallback
	}
	prompt := fmt.Sprintf(
		"You are a market commentator. In two sentences of plain prose, give a "+
			"neutral, non-advisory observation about %s (%s), a %s currently trading "+
			"at %s (%s today). Do not recommend buying or selling.",
		inst.Name, inst.Symbol, strings.ToLower(string(inst.Category)),
		inst.Price, inst.ChangePercent.SignedString())
	return c.generate(ctx, prompt, instrumentFallback)
}

// PortfolioInsight returns one short paragraph about the overall portfolio.
func (c *Client) PortfolioInsight(ctx context.Context, v miracle.Valuation) string {
	var top []string
	for _, p := range v.TopHoldings(3) {
		top = append(top, p.Symbol)
	}
	prompt := fmt.Sprintf(
		"You are a market commentator. In two sentences of plain prose, comment "+
			"neutrally on a portfolio with a net worth of %s, %s invested and a "+
			"total return of %s. Largest holdings: %s. Do not give financial advice.",
		v.NetWorth(), v.InvestedValue(), v.TotalReturnPercent(),
		strings.Join(top, ", "))
	return c.generate(ctx, prompt, portfolioFallback)
}

func (c *Client) generate(ctx context.Context, prompt, fallback string) string {
	if c == nil || c.client == nil {
		return fallback
	}
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return fallback
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return fallback
	}
	return text
}
