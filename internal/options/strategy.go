package options

import "strings"

// StrategyKind identifies which packages a run targets.
type StrategyKind int

const (
	// StrategyRoot formats only the current package.
	StrategyRoot StrategyKind = iota
	// StrategyAll formats the current package and its local path dependencies.
	StrategyAll
	// StrategySome formats an explicit list of packages.
	StrategySome
)

func (k StrategyKind) String() string {
	switch k {
	case StrategyRoot:
		return "root"
	case StrategyAll:
		return "all"
	case StrategySome:
		return "some"
	default:
		return "unknown"
	}
}

// Strategy is the selected scope of packages to format.
// Packages is only populated for StrategySome.
type Strategy struct {
	Kind     StrategyKind
	Packages []string
}

// NewStrategy resolves the package-selection flags into a Strategy.
// formatAll wins over any explicit packages.
func NewStrategy(formatAll bool, packages []string) Strategy {
	switch {
	case formatAll:
		return Strategy{Kind: StrategyAll}
	case len(packages) > 0:
		return Strategy{Kind: StrategySome, Packages: append([]string(nil), packages...)}
	default:
		return Strategy{Kind: StrategyRoot}
	}
}

func (s Strategy) String() string {
	if s.Kind != StrategySome {
		return s.Kind.String()
	}
	return s.Kind.String() + "(" + strings.Join(s.Packages, ", ") + ")"
}
