package trait

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
)

// Type is one symbol of the six-letter RIASEC alphabet.
type Type string

const (
	Realistic     Type = "R"
	Investigative Type = "I"
	Artistic      Type = "A"
	Social        Type = "S"
	Enterprising  Type = "E"
	Conventional  Type = "C"
)

// Types lists the alphabet in its canonical order.
var Types = [...]Type{Realistic, Investigative, Artistic, Social, Enterprising, Conventional}

var ErrUnknownType = errors.New("unknown trait type")

// ParseType accepts a single letter in either case.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToUpper(strings.TrimSpace(s)))
	if t.index() < 0 {
		return "", fmt.Errorf("%w: %q", ErrUnknownType, s)
	}
	return t, nil
}

// Valid reports whether t belongs to the alphabet.
func (t Type) Valid() bool { return t.index() >= 0 }

func (t Type) index() int {
	for i, known := range Types {
		if known == t {
			return i
		}
	}
	return -1
}

// Vector maps every type of the alphabet to a non-negative weight.
// The array form keeps all six keys present at all times.
type Vector [len(Types)]float64

// Increment is a partial vector contributed by one quiz answer.
type Increment map[Type]int

// FromMap builds a vector from a map. Missing types are zero, unknown keys are ignored
// and negative weights are clamped to zero.
func FromMap(m map[Type]float64) Vector {
	var v Vector
	for t, w := range m {
		v.Set(t, w)
	}
	return v
}

// Get returns the weight of t, or zero for an unknown type.
func (v Vector) Get(t Type) float64 {
	i := t.index()
	if i < 0 {
		return 0
	}
	return v[i]
}

// Set assigns the weight of t. Unknown types are ignored.
func (v *Vector) Set(t Type, w float64) {
	i := t.index()
	if i < 0 {
		return
	}
	if w < 0 || math.IsNaN(w) {
		w = 0
	}
	v[i] = w
}

// Add accumulates an increment into the vector.
func (v *Vector) Add(inc Increment) {
	for t, w := range inc {
		v.Set(t, v.Get(t)+float64(w))
	}
}

// Max returns the largest weight.
func (v Vector) Max() float64 {
	m := 0.0
	for _, w := range v {
		if w > m {
			m = w
		}
	}
	return m
}

// IsZero reports whether all weights are zero.
func (v Vector) IsZero() bool { return v.Max() == 0 }

// Normalize divides every weight by the maximum weight. A zero vector stays zero.
func (v Vector) Normalize() Vector {
	m := v.Max()
	if m == 0 {
		m = 1
	}
	var out Vector
	for i, w := range v {
		out[i] = w / m
	}
	return out
}

// Norm is the Euclidean length.
func (v Vector) Norm() float64 {
	sum := 0.0
	for _, w := range v {
		sum += w * w
	}
	return math.Sqrt(sum)
}

// Dot is the dot product of two vectors.
func (v Vector) Dot(o Vector) float64 {
	sum := 0.0
	for i := range v {
		sum += v[i] * o[i]
	}
	return sum
}

// Cosine returns the cosine similarity of two vectors, or 0 when either has zero length.
func Cosine(a, b Vector) float64 {
	na, nb := a.Norm(), b.Norm()
	if na == 0 || nb == 0 {
		return 0
	}
	s := a.Dot(b) / (na * nb)
	// float error can push parallel vectors slightly past 1
	return math.Min(math.Max(s, 0), 1)
}

// Dominant returns the type with the highest weight; ties resolve in alphabet order.
func (v Vector) Dominant() Type {
	return v.Ranked()[0]
}

// Ranked returns the types ordered by descending weight, ties in alphabet order.
func (v Vector) Ranked() []Type {
	ranked := make([]Type, len(Types))
	copy(ranked, Types[:])
	sort.SliceStable(ranked, func(i, j int) bool {
		return v.Get(ranked[i]) > v.Get(ranked[j])
	})
	return ranked
}

// Map returns the vector keyed by type letter.
func (v Vector) Map() map[string]float64 {
	m := make(map[string]float64, len(Types))
	for i, t := range Types {
		m[string(t)] = v[i]
	}
	return m
}

func (v Vector) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Map())
}

func (v *Vector) UnmarshalJSON(data []byte) error {
	var m map[string]float64
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}
	*v = Vector{}
	for k, w := range m {
		t, err := ParseType(k)
		if err != nil {
			return err
		}
		v.Set(t, w)
	}
	return nil
}

func (v Vector) String() string {
	parts := make([]string, len(Types))
	for i, t := range Types {
		parts[i] = fmt.Sprintf("%s:%.2f", t, v[i])
	}
	return strings.Join(parts, " ")
}
