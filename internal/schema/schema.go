// Package schema models the feature schema of a dataset variant: a tree
// of nested dicts whose leaves are fixed-dtype tensors or scalars, the
// structure catalog pages render as a path/shape/dtype table.
package schema

import (
	"fmt"
	"sort"
	"strings"
)

// DType identifies the element type of a tensor or scalar feature.
type DType string

const (
	Float32 DType = "float32"
	Float64 DType = "float64"
	Int32   DType = "int32"
	Int64   DType = "int64"
	Uint8   DType = "uint8"
	Bool    DType = "bool"
	String  DType = "string"
)

// dtypeSizes maps each fixed-width dtype to its size in bytes.
// String has no fixed width and is absent.
var dtypeSizes = map[DType]int64{
	Float32: 4,
	Float64: 8,
	Int32:   4,
	Int64:   8,
	Uint8:   1,
	Bool:    1,
}

// Valid reports whether d is a recognized dtype.
func (d DType) Valid() bool {
	if d == String {
		return true
	}
	_, ok := dtypeSizes[d]
	return ok
}

// Size returns the byte width of one element, or 0 for variable-width
// dtypes such as string.
func (d DType) Size() int64 {
	return dtypeSizes[d]
}

// Kind distinguishes the three node shapes in a feature tree.
type Kind string

const (
	KindTensor Kind = "tensor"
	KindScalar Kind = "scalar"
	KindDict   Kind = "dict"
)

// UnknownDim marks a dimension whose extent varies per example,
// rendered as "None" on catalog pages.
const UnknownDim = -1

// FeatureSpec is one node of a feature schema tree. Exactly one of the
// leaf fields (DType/Shape) or Fields is populated, according to Kind.
type FeatureSpec struct {
	Kind   Kind                    `json:"kind"`
	DType  DType                   `json:"dtype,omitempty"`
	Shape  []int64                 `json:"shape,omitempty"`
	Fields map[string]*FeatureSpec `json:"fields,omitempty"`
}

// Tensor returns a tensor spec with the given dtype and shape.
func Tensor(dtype DType, shape ...int64) *FeatureSpec {
	return &FeatureSpec{Kind: KindTensor, DType: dtype, Shape: shape}
}

// Scalar returns a rank-0 spec with the given dtype.
func Scalar(dtype DType) *FeatureSpec {
	return &FeatureSpec{Kind: KindScalar, DType: dtype}
}

// Dict returns a dict spec over the given named fields.
func Dict(fields map[string]*FeatureSpec) *FeatureSpec {
	return &FeatureSpec{Kind: KindDict, Fields: fields}
}

// Validate checks the spec tree for structural errors: unknown kinds or
// dtypes, shapes on dicts, empty dicts, and non-positive known dims.
func (s *FeatureSpec) Validate() error {
	return s.validate("")
}

func (s *FeatureSpec) validate(path string) error {
	at := func(msg string, args ...any) error {
		where := path
		if where == "" {
			where = "(root)"
		}
		return fmt.Errorf("%s: %s", where, fmt.Sprintf(msg, args...))
	}

	switch s.Kind {
	case KindTensor, KindScalar:
		if !s.DType.Valid() {
			return at("unknown dtype %q", s.DType)
		}
		if len(s.Fields) > 0 {
			return at("leaf feature cannot have fields")
		}
		if s.Kind == KindScalar && len(s.Shape) > 0 {
			return at("scalar feature cannot have a shape")
		}
		for i, dim := range s.Shape {
			if dim <= 0 && dim != UnknownDim {
				return at("invalid dim %d at axis %d", dim, i)
			}
		}
	case KindDict:
		if s.DType != "" || len(s.Shape) > 0 {
			return at("dict feature cannot have dtype or shape")
		}
		if len(s.Fields) == 0 {
			return at("dict feature has no fields")
		}
		for name, child := range s.Fields {
			if name == "" {
				return at("empty field name")
			}
			if child == nil {
				return at("nil field %q", name)
			}
			childPath := name
			if path != "" {
				childPath = path + "/" + name
			}
			if err := child.validate(childPath); err != nil {
				return err
			}
		}
	default:
		return at("unknown kind %q", s.Kind)
	}
	return nil
}

// NumBytes returns the encoded size of one example of a leaf spec, and
// whether the size is statically known. Dicts sum their fields; any
// unknown dim or variable-width dtype makes the size unknown.
func (s *FeatureSpec) NumBytes() (int64, bool) {
	switch s.Kind {
	case KindDict:
		var total int64
		for _, child := range s.Fields {
			n, ok := child.NumBytes()
			if !ok {
				return 0, false
			}
			total += n
		}
		return total, true
	default:
		elem := s.DType.Size()
		if elem == 0 {
			return 0, false
		}
		n := elem
		for _, dim := range s.Shape {
			if dim == UnknownDim {
				return 0, false
			}
			n *= dim
		}
		return n, true
	}
}

// ShapeString renders the shape the way catalog pages do: "()" for
// scalars, "(28,)" for vectors, "(None, 39)" with unknown dims.
func (s *FeatureSpec) ShapeString() string {
	if len(s.Shape) == 0 {
		return "()"
	}
	parts := make([]string, len(s.Shape))
	for i, dim := range s.Shape {
		if dim == UnknownDim {
			parts[i] = "None"
		} else {
			parts[i] = fmt.Sprintf("%d", dim)
		}
	}
	if len(parts) == 1 {
		return "(" + parts[0] + ",)"
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// FlatFeature is one row of the rendered schema table.
type FlatFeature struct {
	Path  string
	Kind  Kind
	DType DType
	Shape string
}

// Flatten returns the leaf features in depth-first path order, the row
// order of the schema table.
func (s *FeatureSpec) Flatten() []FlatFeature {
	var rows []FlatFeature
	s.flatten("", &rows)
	return rows
}

func (s *FeatureSpec) flatten(path string, rows *[]FlatFeature) {
	if s.Kind != KindDict {
		*rows = append(*rows, FlatFeature{
			Path:  path,
			Kind:  s.Kind,
			DType: s.DType,
			Shape: s.ShapeString(),
		})
		return
	}
	names := make([]string, 0, len(s.Fields))
	for name := range s.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		childPath := name
		if path != "" {
			childPath = path + "/" + name
		}
		s.Fields[name].flatten(childPath, rows)
	}
}

// Lookup resolves a slash-separated path to a sub-spec, or nil.
func (s *FeatureSpec) Lookup(path string) *FeatureSpec {
	if path == "" {
		return s
	}
	current := s
	for _, part := range strings.Split(path, "/") {
		if current == nil || current.Kind != KindDict {
			return nil
		}
		current = current.Fields[part]
	}
	return current
}
