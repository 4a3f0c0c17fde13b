package rejectlist

// Blocked billing states per project. A submission whose state is in
// the project's list is rejected before any vendor call.

// RadiusStates: states the FRP (Radius card) program cannot sell into.
func RadiusStates() *Set {
	return NewSet("IA", "ME", "MN", "UT", "VT", "WI")
}

// MIStates: states the MI (Radius bank-draft) program cannot sell into.
func MIStates() *Set {
	return NewSet("IA", "KS", "ME", "MN", "NC", "ND", "UT", "VT", "WI")
}

// PSOnlineStates: states PSOnline declines at pre-flight.
func PSOnlineStates() *Set {
	return NewSet("AZ", "GA", "IA", "ME", "MN", "MO", "UT", "VT", "WI")
}
