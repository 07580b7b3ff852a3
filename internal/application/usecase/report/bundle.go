package report

import (
	"time"

	"github.com/auction-ledger/backend/internal/domain/entity"
)

// Policy holds the tunable constants of the engine. Zero fields fall back
// to their defaults.
type Policy struct {
	Aging AgingPolicy
	TopN  int
}

func (p Policy) withDefaults() Policy {
	if p.Aging == (AgingPolicy{}) {
		p.Aging = DefaultAgingPolicy()
	}
	if p.TopN <= 0 {
		p.TopN = DefaultTopN
	}
	return p
}

// ReportInput is everything a single engine run depends on.
type ReportInput struct {
	Range     DateRange
	Purchases []*entity.Purchase
	Expenses  []*entity.Expense
	Now       time.Time
	Policy    Policy
}

// ReportBundle is the six reports computed from one record set and range.
type ReportBundle struct {
	Range              DateRange           `json:"range"`
	GeneratedAt        time.Time           `json:"generatedAt"`
	ProfitLoss         *ProfitLoss         `json:"profitLoss"`
	CashFlow           *CashFlow           `json:"cashFlow"`
	RevenueAnalytics   *RevenueAnalytics   `json:"revenueAnalytics"`
	CostAnalysis       *CostAnalysis       `json:"costAnalysis"`
	AccountsReceivable *AccountsReceivable `json:"accountsReceivable"`
	Summary            *Summary            `json:"summary"`
}

// GenerateReports runs every generator once over the same range and records.
// It is pure: in.Now is the only clock it sees and the inputs are never modified.
func GenerateReports(in ReportInput) *ReportBundle {
	policy := in.Policy.withDefaults()

	profitLoss := BuildProfitLoss(in.Range, in.Purchases, in.Expenses)
	receivable := BuildAccountsReceivable(in.Range, in.Purchases, in.Now, policy.Aging)

	return &ReportBundle{
		Range:              in.Range,
		GeneratedAt:        in.Now,
		ProfitLoss:         profitLoss,
		CashFlow:           BuildCashFlow(in.Range, in.Purchases, in.Expenses),
		RevenueAnalytics:   BuildRevenueAnalytics(in.Range, in.Purchases, policy.TopN),
		CostAnalysis:       BuildCostAnalysis(in.Range, in.Purchases, policy.TopN),
		AccountsReceivable: receivable,
		Summary:            BuildSummary(profitLoss, receivable),
	}
}

// Kind names a single report within a bundle.
type Kind string

const (
	KindProfitLoss         Kind = "profit-loss"
	KindCashFlow           Kind = "cash-flow"
	KindRevenueAnalytics   Kind = "revenue"
	KindCostAnalysis       Kind = "costs"
	KindAccountsReceivable Kind = "receivables"
	KindSummary            Kind = "summary"
)

// Kinds lists every report kind in bundle order.
func Kinds() []Kind {
	return []Kind{KindProfitLoss, KindCashFlow, KindRevenueAnalytics, KindCostAnalysis, KindAccountsReceivable, KindSummary}
}

// Select returns the report of the given kind, or false if kind is unknown.
func (b *ReportBundle) Select(kind Kind) (any, bool) {
	switch kind {
	case KindProfitLoss:
		return b.ProfitLoss, true
	case KindCashFlow:
		return b.CashFlow, true
	case KindRevenueAnalytics:
		return b.RevenueAnalytics, true
	case KindCostAnalysis:
		return b.CostAnalysis, true
	case KindAccountsReceivable:
		return b.AccountsReceivable, true
	case KindSummary:
		return b.Summary, true
	}
	return nil, false
}
