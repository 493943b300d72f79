package app

// Capabilities declare what the active view supports, letting the keyboard
// resolver route keys without hardcoding view types.
type Capabilities uint32

const (
	// CapScrollVertical marks content that extends beyond the viewport.
	CapScrollVertical Capabilities = 1 << iota
	// CapScrollHorizontal marks content wider than the viewport.
	CapScrollHorizontal
	// CapVimScrollBindings enables gg/G style scrolling.
	CapVimScrollBindings
	// CapVimNavigationBindings enables j/k/h/l navigation.
	CapVimNavigationBindings
	// CapItemNavigation enables next/previous item movement.
	CapItemNavigation
	// CapItemSelection enables item selection.
	CapItemSelection
	// CapTextInput routes plain character keys to text input.
	CapTextInput
)

// Has reports whether all bits of want are set.
func (c Capabilities) Has(want Capabilities) bool {
	return c&want == want
}

// AcceptsTextInput reports whether character keys go to text input.
func (c Capabilities) AcceptsTextInput() bool {
	return c.Has(CapTextInput)
}

// SupportsItemNavigation reports whether arrows move an item cursor.
func (c Capabilities) SupportsItemNavigation() bool {
	return c.Has(CapItemNavigation)
}

// SupportsVimVerticalScroll needs both the scroll surface and vim bindings.
func (c Capabilities) SupportsVimVerticalScroll() bool {
	return c.Has(CapScrollVertical | CapVimScrollBindings)
}
