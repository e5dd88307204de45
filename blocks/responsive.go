package blocks

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Responsive holds per-breakpoint values. Unset slots are nil.
type Responsive[T any] struct {
	Mobile  *T `json:"mobile,omitempty"`
	Tablet  *T `json:"tablet,omitempty"`
	Desktop *T `json:"desktop,omitempty"`
}

// Slot returns the value stored for bp.
func (r Responsive[T]) Slot(bp Breakpoint) (T, bool) {
	var ptr *T
	switch bp {
	case BreakpointMobile:
		ptr = r.Mobile
	case BreakpointTablet:
		ptr = r.Tablet
	case BreakpointDesktop:
		ptr = r.Desktop
	}
	if ptr == nil {
		var zero T
		return zero, false
	}
	return *ptr, true
}

// IsEmpty reports whether no slot is set.
func (r Responsive[T]) IsEmpty() bool {
	return r.Mobile == nil && r.Tablet == nil && r.Desktop == nil
}

func (r *Responsive[T]) set(bp Breakpoint, value T) {
	v := value
	switch bp {
	case BreakpointMobile:
		r.Mobile = &v
	case BreakpointTablet:
		r.Tablet = &v
	case BreakpointDesktop:
		r.Desktop = &v
	}
}

// Value is either a plain scalar or a Responsive set of per-breakpoint values.
// A nil *Value means the property is undefined.
type Value[T any] struct {
	scalar     *T
	responsive *Responsive[T]
}

// Scalar builds a non-responsive value.
func Scalar[T any](value T) *Value[T] {
	v := value
	return &Value[T]{scalar: &v}
}

// PerBreakpoint builds a responsive value.
func PerBreakpoint[T any](r Responsive[T]) *Value[T] {
	copied := r
	return &Value[T]{responsive: &copied}
}

// Uniform builds a responsive value with every breakpoint set to value.
func Uniform[T any](value T) *Value[T] {
	r := Responsive[T]{}
	for _, bp := range Breakpoints {
		r.set(bp, value)
	}
	return &Value[T]{responsive: &r}
}

// IsZero reports whether the value carries nothing.
func (v *Value[T]) IsZero() bool {
	if v == nil {
		return true
	}
	if v.scalar != nil {
		return false
	}
	return v.responsive == nil || v.responsive.IsEmpty()
}

// IsResponsive reports whether the value holds per-breakpoint slots.
func (v *Value[T]) IsResponsive() bool {
	return v != nil && v.scalar == nil && v.responsive != nil
}

// ScalarValue returns the plain value when v is not responsive.
func (v *Value[T]) ScalarValue() (T, bool) {
	if v == nil || v.scalar == nil {
		var zero T
		return zero, false
	}
	return *v.scalar, true
}

// Breakpoints returns a copy of the per-breakpoint slots.
func (v *Value[T]) Breakpoints() (Responsive[T], bool) {
	if !v.IsResponsive() {
		return Responsive[T]{}, false
	}
	return *v.responsive, true
}

// Slot returns the exact value stored at bp without any fallback.
func (v *Value[T]) Slot(bp Breakpoint) (T, bool) {
	if !v.IsResponsive() {
		var zero T
		return zero, false
	}
	return v.responsive.Slot(bp)
}

// WithSlot returns a copy with only the bp slot replaced. A scalar value is
// promoted into the desktop slot first so it keeps resolving for the
// breakpoints that were not touched.
func (v *Value[T]) WithSlot(bp Breakpoint, value T) *Value[T] {
	next := Responsive[T]{}
	if v != nil {
		switch {
		case v.scalar != nil:
			next.set(BreakpointDesktop, *v.scalar)
		case v.responsive != nil:
			next = cloneResponsive(*v.responsive)
		}
	}
	next.set(bp, value)
	return &Value[T]{responsive: &next}
}

// Clone returns a deep copy.
func (v *Value[T]) Clone() *Value[T] {
	if v == nil {
		return nil
	}
	out := &Value[T]{}
	if v.scalar != nil {
		s := *v.scalar
		out.scalar = &s
	}
	if v.responsive != nil {
		r := cloneResponsive(*v.responsive)
		out.responsive = &r
	}
	return out
}

func cloneResponsive[T any](r Responsive[T]) Responsive[T] {
	out := Responsive[T]{}
	for _, bp := range Breakpoints {
		if value, ok := r.Slot(bp); ok {
			out.set(bp, value)
		}
	}
	return out
}

// MarshalJSON emits the scalar as-is or the responsive object.
func (v Value[T]) MarshalJSON() ([]byte, error) {
	switch {
	case v.scalar != nil:
		return json.Marshal(*v.scalar)
	case v.responsive != nil:
		return json.Marshal(*v.responsive)
	default:
		return []byte("null"), nil
	}
}

// UnmarshalJSON treats any object carrying a mobile, tablet or desktop key as
// responsive and everything else as a scalar.
func (v *Value[T]) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	*v = Value[T]{}
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	if trimmed[0] == '{' {
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &probe); err != nil {
			return err
		}
		if hasBreakpointKey(probe) {
			var r Responsive[T]
			if err := json.Unmarshal(trimmed, &r); err != nil {
				return fmt.Errorf("responsive value: %w", err)
			}
			v.responsive = &r
			return nil
		}
	}
	var scalar T
	if err := json.Unmarshal(trimmed, &scalar); err != nil {
		return fmt.Errorf("scalar value: %w", err)
	}
	v.scalar = &scalar
	return nil
}

func hasBreakpointKey(probe map[string]json.RawMessage) bool {
	for _, bp := range Breakpoints {
		if _, ok := probe[string(bp)]; ok {
			return true
		}
	}
	return false
}

// desktopFirst is the fixed fallback order used by Resolve.
var desktopFirst = []Breakpoint{BreakpointDesktop, BreakpointTablet, BreakpointMobile}

// Resolve concretises a value. Scalars are returned unchanged. For responsive
// values the requested breakpoint wins when set; otherwise, and when no
// breakpoint is requested, the first defined slot in desktop, tablet, mobile
// order is returned.
func Resolve[T any](v *Value[T], bp ...Breakpoint) (T, bool) {
	var zero T
	if v == nil {
		return zero, false
	}
	if v.scalar != nil {
		return *v.scalar, true
	}
	if v.responsive == nil {
		return zero, false
	}
	if len(bp) > 0 && bp[0] != "" {
		if value, ok := v.responsive.Slot(bp[0]); ok {
			return value, true
		}
	}
	for _, candidate := range desktopFirst {
		if value, ok := v.responsive.Slot(candidate); ok {
			return value, true
		}
	}
	return zero, false
}

// ResolveCascade follows mobile-first media query semantics: a slot applies to
// its breakpoint and every wider one unless overridden. A desktop-only value is
// therefore undefined on mobile.
func ResolveCascade[T any](v *Value[T], bp Breakpoint) (T, bool) {
	var zero T
	if v == nil {
		return zero, false
	}
	if v.scalar != nil {
		return *v.scalar, true
	}
	if v.responsive == nil {
		return zero, false
	}
	limit := breakpointRank(bp)
	for i := limit; i >= 0; i-- {
		if value, ok := v.responsive.Slot(Breakpoints[i]); ok {
			return value, true
		}
	}
	return zero, false
}

func breakpointRank(bp Breakpoint) int {
	for i, candidate := range Breakpoints {
		if candidate == bp {
			return i
		}
	}
	return len(Breakpoints) - 1
}
