package native

import (
	"fmt"

	"github.com/dshills/imeflow/internal/document"
)

// Node is an opaque handle to a node in the host's rendering surface.
type Node interface {
	// TextContent returns the node's current text as rendered.
	TextContent() string
}

// Anchor is a native selection anchor: a surface node plus a rune
// offset within its text content.
type Anchor struct {
	Node   Node
	Offset int
}

// Resolver maps a native anchor to a model coordinate. Resolution can
// fail during transient surface states; a false return means the
// anchor references a node the model no longer tracks.
type Resolver interface {
	ResolvePoint(a Anchor) (document.Point, bool)
}

// ResolverFunc adapts a function to the Resolver interface.
type ResolverFunc func(a Anchor) (document.Point, bool)

// ResolvePoint implements Resolver.
func (f ResolverFunc) ResolvePoint(a Anchor) (document.Point, bool) {
	return f(a)
}

// StaticNode is a Node with fixed text content, for hosts that snapshot
// the surface before delivering a notification.
type StaticNode struct {
	Text string
}

// TextContent implements Node.
func (n *StaticNode) TextContent() string {
	return n.Text
}

// Platform selects the reconciliation policy for the host surface.
type Platform uint8

const (
	// PlatformDefault is the pass-through policy used everywhere a
	// soft keyboard does not rewrite committed text.
	PlatformDefault Platform = iota

	// PlatformAndroid enables composition buffering and diff-based
	// correction for Android soft keyboards.
	PlatformAndroid
)

// String returns the platform name.
func (p Platform) String() string {
	switch p {
	case PlatformDefault:
		return "default"
	case PlatformAndroid:
		return "android"
	default:
		return "unknown"
	}
}

// Android reports whether the Android policy is active.
func (p Platform) Android() bool {
	return p == PlatformAndroid
}

// ParsePlatform maps a platform name to its Platform value.
func ParsePlatform(s string) (Platform, error) {
	switch s {
	case "default", "":
		return PlatformDefault, nil
	case "android":
		return PlatformAndroid, nil
	default:
		return PlatformDefault, fmt.Errorf("unknown platform %q", s)
	}
}
