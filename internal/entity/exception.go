package entity

// ExceptionRuleType selects how a matched exception rule is applied.
type ExceptionRuleType int

// Stable values (stored in the rules file).
const (
	RuleSplitEvenly ExceptionRuleType = 1
	RuleUnhandled   ExceptionRuleType = 2
)

// ExceptionRule overrides normal processing for bills of one provider on
// one accommodation.
type ExceptionRule struct {
	AccommodationID string
	ProviderTag     string
	Type            ExceptionRuleType
	// Destinations lists the accommodations a split bill is divided over.
	Destinations []string
}
