// Package label implements the two identity disciplines used by emitted facts.
//
// A fresh label is unique within one extraction run and carries no meaning
// across runs; it is handed out by an Allocator. A keyed label is derived
// deterministically from a key built out of ordered parts, so the same key
// always yields the same label in every run.
package label

import (
	"fmt"
	"strings"

	"github.com/zeebo/xxh3"
)

// Kind tells how a label was obtained.
type Kind uint8

const (
	// KindNone is the zero label, used for absent references.
	KindNone Kind = iota
	// KindFresh labels are unique within a run.
	KindFresh
	// KindKeyed labels are derived from a key.
	KindKeyed
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFresh:
		return "fresh"
	case KindKeyed:
		return "keyed"
	default:
		return "unknown"
	}
}

// Label identifies one emitted fact.
type Label struct {
	kind Kind
	num  uint64 // sequence number for fresh labels, key hash for keyed ones
	key  string
}

// None is the absent label.
var None Label

// Key derives a label from the concatenation of parts, in order.
// Equal part sequences always produce equal labels.
func Key(parts ...Part) Label {
	var sb strings.Builder
	for _, p := range parts {
		sb.WriteString(p.KeyPart())
	}
	key := sb.String()
	return Label{kind: KindKeyed, num: xxh3.HashString(key), key: key}
}

func (l Label) Kind() Kind    { return l.kind }
func (l Label) IsValid() bool { return l.kind != KindNone }
func (l Label) IsKeyed() bool { return l.kind == KindKeyed }
func (l Label) IsFresh() bool { return l.kind == KindFresh }
func (l Label) Num() uint64   { return l.num }
func (l Label) Key() string   { return l.key }

// KeyPart renders a keyed label as a stable text fragment suitable for
// embedding in another key. Only keyed labels have a stable rendering;
// asking a fresh label for one is a programming error.
func (l Label) KeyPart() string {
	if l.kind != KindKeyed {
		panic(fmt.Sprintf("label: %s label %s has no stable key part", l.kind, l))
	}
	return fmt.Sprintf("{%016x}", l.num)
}

// String renders the label the way it appears in dumps: "#n" for fresh
// labels, "@hash" for keyed ones and "-" for none.
func (l Label) String() string {
	switch l.kind {
	case KindFresh:
		return fmt.Sprintf("#%d", l.num)
	case KindKeyed:
		return fmt.Sprintf("@%016x", l.num)
	default:
		return "-"
	}
}

// Part is one ordered component of a key.
type Part interface {
	KeyPart() string
}

// Text is a literal key component.
type Text string

func (t Text) KeyPart() string { return string(t) }

// Allocator hands out fresh labels. The zero value is ready to use.
type Allocator struct {
	next uint64
}

// Fresh returns a label never returned before by this allocator.
func (a *Allocator) Fresh() Label {
	a.next++
	return Label{kind: KindFresh, num: a.next}
}

// Count returns how many fresh labels were handed out.
func (a *Allocator) Count() uint64 {
	return a.next
}
