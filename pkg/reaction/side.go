package reaction

// Side is the role a group of molecules plays in a reaction step.
type Side int

const (
	// SideUndefined marks molecules no arrow has classified yet.
	SideUndefined Side = iota
	// SideReactant marks molecules consumed by a step.
	SideReactant
	// SideProduct marks molecules produced by a final step.
	SideProduct
	// SideCatalyst marks molecules drawn above or below an arrow.
	SideCatalyst
	// SideIntermediate marks molecules produced by one step and consumed by another.
	SideIntermediate
)

var sideNames = [...]string{
	SideUndefined:    "undefined",
	SideReactant:     "reactant",
	SideProduct:      "product",
	SideCatalyst:     "catalyst",
	SideIntermediate: "intermediate",
}

func (s Side) String() string {
	if s < 0 || int(s) >= len(sideNames) {
		return "unknown"
	}
	return sideNames[s]
}

// AsProduct returns the side after the molecules were found at an arrow head.
// A reactant that is also a product becomes an intermediate.
func (s Side) AsProduct() Side {
	switch s {
	case SideUndefined, SideProduct:
		return SideProduct
	case SideReactant, SideIntermediate:
		return SideIntermediate
	}
	return s
}

// AsReactant returns the side after the molecules were found at an arrow tail.
// A product that is also a reactant becomes an intermediate.
func (s Side) AsReactant() Side {
	switch s {
	case SideUndefined, SideReactant:
		return SideReactant
	case SideProduct, SideIntermediate:
		return SideIntermediate
	}
	return s
}
