package feature

// Mechanism is the language construct that explains a shared behavior.
type Mechanism int

const (
	InterfaceImplementations Mechanism = iota
	Aggregations
	ClassSubclassRedefinitions
)

func (m Mechanism) String() string {
	switch m {
	case InterfaceImplementations:
		return "INTERFACE_IMPLEMENTATIONS"
	case Aggregations:
		return "AGGREGATIONS"
	case ClassSubclassRedefinitions:
		return "CLASS_SUBCLASS_REDEFINITIONS"
	default:
		return "UNKNOWN"
	}
}

// Kind names a feature classification. Apart from Adhoc, every kind is a
// mechanism combined with full or partial extent and full or partial
// behavior.
type Kind int

const (
	Adhoc Kind = iota
	FullExtentFullBehaviorInterfaceImplementations
	PartialExtentFullBehaviorInterfaceImplementations
	FullExtentPartialBehaviorInterfaceImplementations
	PartialExtentPartialBehaviorInterfaceImplementations
	FullExtentFullBehaviorAggregations
	PartialExtentFullBehaviorAggregations
	FullExtentPartialBehaviorAggregations
	PartialExtentPartialBehaviorAggregations
	FullExtentFullBehaviorClassSubclassRedefinitions
	PartialExtentFullBehaviorClassSubclassRedefinitions
	FullExtentPartialBehaviorClassSubclassRedefinitions
	PartialExtentPartialBehaviorClassSubclassRedefinitions
)

// variants within one mechanism, in Kind order.
const (
	fullFull = iota
	partialFull
	fullPartial
	partialPartial
	numVariants
)

// KindOf returns the kind for a mechanism and its extent and behavior
// coverage.
func KindOf(m Mechanism, fullExtent, fullBehavior bool) Kind {
	var v int
	switch {
	case fullExtent && fullBehavior:
		v = fullFull
	case fullBehavior:
		v = partialFull
	case fullExtent:
		v = fullPartial
	default:
		v = partialPartial
	}
	return Kind(1 + int(m)*numVariants + v)
}

// Mechanism returns the mechanism of k. It is meaningless for Adhoc.
func (k Kind) Mechanism() Mechanism { return Mechanism((int(k) - 1) / numVariants) }

func (k Kind) variant() int { return (int(k) - 1) % numVariants }

// FullExtent reports whether all but one extent member take part.
func (k Kind) FullExtent() bool {
	return k != Adhoc && (k.variant() == fullFull || k.variant() == fullPartial)
}

// FullBehavior reports whether the intent is the whole common behavior.
func (k Kind) FullBehavior() bool {
	return k != Adhoc && (k.variant() == fullFull || k.variant() == partialFull)
}

func (k Kind) String() string {
	if k == Adhoc {
		return "ADHOC"
	}
	if k < Adhoc || k > PartialExtentPartialBehaviorClassSubclassRedefinitions {
		return "UNKNOWN"
	}
	extent, behavior := "PARTIAL_EXTENT", "PARTIAL_BEHAVIOR"
	if k.FullExtent() {
		extent = "FULL_EXTENT"
	}
	if k.FullBehavior() {
		behavior = "FULL_BEHAVIOR"
	}
	return extent + "_" + behavior + "_EXPLICIT_" + k.Mechanism().String()
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }
