package shapes

import "strings"

// Capabilities is a set of optional drawing features a generator may
// support and have enabled.
type Capabilities uint8

const (
	// IndexedDrawing means draw variants use index buffers.
	IndexedDrawing Capabilities = 1 << iota
	// ElementStrips allows TriangleStrip operations.
	ElementStrips
	// ElementFans allows TriangleFan operations.
	ElementFans
	// PrimitiveRestart allows restart sentinels inside index buffers.
	PrimitiveRestart
)

func (c Capabilities) Indexed() bool { return c&IndexedDrawing != 0 }
func (c Capabilities) Strips() bool  { return c&ElementStrips != 0 }
func (c Capabilities) Fans() bool    { return c&ElementFans != 0 }
func (c Capabilities) Restart() bool { return c&PrimitiveRestart != 0 }

// Has reports whether all capabilities in o are set in c.
func (c Capabilities) Has(o Capabilities) bool { return c&o == o }

func (c Capabilities) With(o Capabilities) Capabilities    { return c | o }
func (c Capabilities) Without(o Capabilities) Capabilities { return c &^ o }

func (c Capabilities) String() string {
	if c == 0 {
		return "none"
	}
	var names []string
	if c.Indexed() {
		names = append(names, "indexed")
	}
	if c.Strips() {
		names = append(names, "strips")
	}
	if c.Fans() {
		names = append(names, "fans")
	}
	if c.Restart() {
		names = append(names, "restart")
	}
	return strings.Join(names, "|")
}

// Base keeps track of supported and enabled capabilities. Generators
// embed it to implement Capabilities and Enable.
type Base struct {
	supported Capabilities
	enabled   Capabilities
}

// NewBase returns a Base with all supported capabilities enabled.
func NewBase(supported Capabilities) Base {
	return Base{supported: supported, enabled: supported}
}

func (b *Base) Capabilities() Capabilities { return b.enabled }

// Supported returns the capabilities that may be enabled.
func (b *Base) Supported() Capabilities { return b.supported }

// Enable enables or disables c. Enabling fails if c is not supported.
func (b *Base) Enable(c Capabilities, on bool) bool {
	if !on {
		b.enabled &^= c
		return true
	}
	if !b.supported.Has(c) {
		return false
	}
	b.enabled |= c
	return true
}

// Requiring wraps a generator and reports Caps as permanently enabled,
// regardless of what the wrapped generator allows. Modifiers whose output
// structurally depends on a capability embed it.
type Requiring struct {
	Delegate
	Caps Capabilities
}

func (r Requiring) Capabilities() Capabilities {
	return r.Gen.Capabilities() | r.Caps
}

// Enable refuses to disable required capabilities. Enabling a required
// capability always succeeds.
func (r Requiring) Enable(c Capabilities, on bool) bool {
	if !on && c&r.Caps != 0 {
		return false
	}
	c &^= r.Caps
	if c == 0 {
		return true
	}
	return r.Gen.Enable(c, on)
}
