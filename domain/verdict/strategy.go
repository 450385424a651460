package verdict

// Strategy is the closed set of resolution strategies. The resolution engine
// switches over every variant; adding one is a compile-checked change there.
type Strategy string

const (
	StrategyFrameworkBalancing           Strategy = "framework_balancing"
	StrategyPrincipledPriority           Strategy = "principled_priority"
	StrategyCompromise                   Strategy = "compromise"
	StrategyProcedural                   Strategy = "procedural"
	StrategyMetaEthical                  Strategy = "meta_ethical"
	StrategyCasuistry                    Strategy = "casuistry"
	StrategyMultiFrameworkIntegration    Strategy = "multi_framework_integration"
	StrategyDutyBoundedUtilitarianism    Strategy = "duty_bounded_utilitarianism"
	StrategyVirtueGuidedConsequentialism Strategy = "virtue_guided_consequentialism"
	StrategyCareBasedJustice             Strategy = "care_based_justice"
	StrategyFallback                     Strategy = "fallback"
)

// String returns the strategy name.
func (s Strategy) String() string { return string(s) }

// IsHybrid reports whether s combines two specific opposing frameworks.
func (s Strategy) IsHybrid() bool {
	switch s {
	case StrategyDutyBoundedUtilitarianism, StrategyVirtueGuidedConsequentialism, StrategyCareBasedJustice:
		return true
	}
	return false
}
