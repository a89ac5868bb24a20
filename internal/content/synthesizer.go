package content

import (
	"fmt"
	"strings"

	"github.com/stockbrief/stock-shorts/internal/domain"
)

// Body templates per category, indexed by the row position so a re-run of the
// same sync produces byte-identical output. %s is the article title.
var bodyTemplates = map[domain.Category][]string{
	domain.CategoryNifty: {
		"%s. The benchmark index continued to draw attention as institutional flows shaped intraday moves across heavyweight constituents.",
		"%s. Index traders tracked support and resistance zones closely while sectoral rotation kept the broader market active.",
		"%s. Market breadth stayed in focus as the index reacted to global cues and domestic macro data through the session.",
	},
	domain.CategoryBreakout: {
		"%s. The stock cleared a closely watched resistance level on strong volumes, putting it on breakout watchlists.",
		"%s. Price action confirmed a pattern breakout, with momentum indicators supporting the move above recent highs.",
		"%s. Technical traders flagged the move as a structural breakout backed by a pickup in delivery volumes.",
	},
	domain.CategoryMovers: {
		"%s. The counter featured among the day's most active names as traders rotated into high-momentum stocks.",
		"%s. Heavy volumes pushed the stock onto the top movers board, drawing interest from short-term traders.",
		"%s. The sharp move came alongside elevated turnover, placing the stock among the session's notable gainers and losers.",
	},
	domain.CategoryWarrant: {
		"%s. The board's warrant allotment plan signals promoter confidence and a fresh capital infusion into the business.",
		"%s. Conversion terms for the proposed warrants were watched closely for their impact on equity dilution.",
		"%s. The preferential issue of warrants is expected to fund capacity expansion over the coming quarters.",
	},
	domain.CategoryIPO: {
		"%s. The public issue drew steady interest across investor categories as subscription figures built up through the window.",
		"%s. Grey market activity and anchor book demand framed expectations ahead of the listing.",
		"%s. The offer's pricing band and the company's growth runway were the focus of pre-listing commentary.",
	},
	domain.CategorySMEIPO: {
		"%s. The SME issue saw active participation from retail investors tracking the smaller-board listing pipeline.",
		"%s. Subscription momentum in the SME segment stayed healthy as the issue moved through its bidding window.",
		"%s. The company joins a busy SME listing calendar, with investors weighing growth plans against the issue size.",
	},
	domain.CategoryOrderWins: {
		"%s. The fresh order win strengthens the company's order book and improves revenue visibility for coming quarters.",
		"%s. The contract adds to a string of recent wins, underlining execution momentum in the company's core segment.",
		"%s. Management said the new order aligns with its stated strategy of diversifying the client base.",
	},
	domain.CategoryATH: {
		"%s. The stock printed a fresh all-time high as sustained buying lifted it past its previous record.",
		"%s. Momentum carried the counter to record territory, with analysts noting strong underlying earnings support.",
		"%s. The new peak extends a multi-session rally backed by consistent institutional accumulation.",
	},
	domain.CategoryResults: {
		"%s. The quarterly numbers were parsed for margin trends, with the street comparing performance against consensus estimates.",
		"%s. Revenue growth and operating profitability were the highlights of the earnings update.",
		"%s. Management commentary on demand and cost pressures accompanied the results announcement.",
	},
	domain.CategoryResearchReport: {
		"%s. The brokerage note laid out its investment thesis along with revised earnings estimates and a fresh price target.",
		"%s. Analysts highlighted valuation comfort and sector tailwinds while initiating coverage on the stock.",
		"%s. The research desk's rating action follows a detailed review of the company's growth levers.",
	},
	domain.CategoryGlobal: {
		"%s. Overnight moves in US and Asian markets set the tone, with currency and crude prices adding to the mix.",
		"%s. Global risk sentiment drove flows as investors weighed central bank signals across major economies.",
		"%s. International markets remained the key driver, with index futures tracking developments abroad.",
	},
	domain.CategoryOthers: {
		"%s. The development drew market attention, with participants assessing its near-term implications for the stock.",
		"%s. Investors tracked the update closely as part of the broader flow of corporate and market news.",
		"%s. The news added to the day's market chatter, with desks evaluating its longer-term significance.",
	},
}

var insights = []string{
	"Market participants will watch follow-up volumes for confirmation of the move.",
	"Analysts suggest keeping position sizes measured given current volatility.",
	"The broader sector trend remains a key variable for the stock's next leg.",
	"Liquidity conditions and FII flows continue to influence short-term direction.",
	"Derivative positioning points to elevated interest in the counter.",
}

const closingLine = "Track this space for further updates as the story develops."

// Boilerplate markers that force synthesis when found in source content.
var boilerplateMarkers = []string{
	"lorem ipsum",
	"sample content",
	"content goes here",
	"description here",
	"add content",
	"coming soon",
	"test content",
}

// Synthesizer produces filler bodies for rows whose source content is empty,
// boilerplate, or a duplicate of an earlier row in the batch. Output is a
// pure function of its inputs.
type Synthesizer struct{}

func NewSynthesizer() *Synthesizer {
	return &Synthesizer{}
}

// NeedsSynthesis reports whether raw source content must be replaced,
// ignoring in-batch duplication, which only the reconciler can see.
func (s *Synthesizer) NeedsSynthesis(rawContent string) bool {
	trimmed := strings.TrimSpace(rawContent)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	for _, marker := range boilerplateMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

// Synthesize builds a deterministic article body. positionIndex selects the
// template so adjacent filler rows do not read identically.
func (s *Synthesizer) Synthesize(title string, category domain.Category, stockSymbol, stockPrice, priceChange string, positionIndex int) string {
	if title == "" {
		title = "Market update"
	}
	templates, ok := bodyTemplates[category]
	if !ok {
		templates = bodyTemplates[domain.CategoryOthers]
	}
	if positionIndex < 0 {
		positionIndex = -positionIndex
	}

	var b strings.Builder
	fmt.Fprintf(&b, templates[positionIndex%len(templates)], strings.TrimRight(title, "."))
	b.WriteString(" ")
	b.WriteString(insights[positionIndex%len(insights)])

	if stockSymbol != "" {
		b.WriteString(" ")
		fmt.Fprintf(&b, "%s last traded at %s", stockSymbol, orDash(stockPrice))
		if priceChange != "" {
			fmt.Fprintf(&b, " (%s)", priceChange)
		}
		b.WriteString(".")
	}

	b.WriteString(" ")
	b.WriteString(closingLine)
	return b.String()
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
