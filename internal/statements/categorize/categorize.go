package categorize

import (
	"strings"

	"github.com/cloudflare/ahocorasick"

	"github.com/f228476653/moneyTracking/internal/statements"
)

// Category is the coarse bucket a transaction lands in.
type Category string

const (
	CategoryTransfer   Category = "transfer"
	CategoryInvestment Category = "investment"
	CategorySpending   Category = "spending"
	CategoryIncome     Category = "income"
	CategoryOther      Category = "other"
)

// Keyword sets are matched case-insensitively against the transaction item.
// Transfers and investments are classified by keyword regardless of
// direction; everything else falls through to direction.
var (
	transferKeywords   = []string{"EQ BANK", "PAY EMP-VENDOR"}
	investmentKeywords = []string{"INVESTMENTS", "QUESTRADE", "MUTUAL FUNDS", "GIC"}
	paymentKeywords    = []string{"ROYAL BANK OF CANADA TORONTO", "PAYMENT RECEIVED"}
)

// Classifier matches transaction items against the keyword sets using
// Aho-Corasick matchers built once at construction. A Classifier is
// immutable and safe for concurrent use.
type Classifier struct {
	transfer   *ahocorasick.Matcher
	investment *ahocorasick.Matcher
	payment    *ahocorasick.Matcher
}

func NewClassifier() *Classifier {
	return &Classifier{
		transfer:   ahocorasick.NewStringMatcher(transferKeywords),
		investment: ahocorasick.NewStringMatcher(investmentKeywords),
		payment:    ahocorasick.NewStringMatcher(paymentKeywords),
	}
}

// Classify buckets a single transaction. Keyword matches win over
// direction: an inbound investment credit is still an investment.
func (c *Classifier) Classify(record statements.TransactionRecord) Category {
	item := strings.ToUpper(record.Item)
	switch {
	case matches(c.transfer, item):
		return CategoryTransfer
	case matches(c.investment, item):
		return CategoryInvestment
	case record.Direction == statements.DirectionOut:
		return CategorySpending
	case record.Direction == statements.DirectionIn:
		return CategoryIncome
	default:
		return CategoryOther
	}
}

// IsPayment reports whether the item is a card payment or an inter-account
// settlement rather than real spending or income.
func (c *Classifier) IsPayment(item string) bool {
	return matches(c.payment, strings.ToUpper(item))
}

// Summarize counts records per category in one pass.
func (c *Classifier) Summarize(records []statements.TransactionRecord) map[Category]int {
	counts := make(map[Category]int)
	for _, record := range records {
		counts[c.Classify(record)]++
	}
	return counts
}

func matches(m *ahocorasick.Matcher, item string) bool {
	return len(m.Match([]byte(item))) > 0
}
