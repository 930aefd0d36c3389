package scene

import (
	"fmt"
	"math"
)

// ValidationSeverity indicates whether a finding makes the scene unusable
// or is merely informational.
type ValidationSeverity int

const (
	SeverityError   ValidationSeverity = iota // scene cannot be exported as is
	SeverityWarning                           // informational
)

func (s ValidationSeverity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("ValidationSeverity(%d)", int(s))
	}
}

// ValidationError describes a single validation finding.
type ValidationError struct {
	ObjectID ObjectID
	Object   string
	Message  string
	Severity ValidationSeverity
}

func (e ValidationError) Error() string {
	if e.Object == "" {
		return fmt.Sprintf("[%s] %s", e.Severity, e.Message)
	}
	return fmt.Sprintf("[%s] object %q: %s", e.Severity, e.Object, e.Message)
}

// ValidationResult bundles blocking errors and advisory warnings.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// OK reports whether the scene has no errors.
func (r ValidationResult) OK() bool {
	return len(r.Errors) == 0
}

// Validate checks every object for non-finite transforms or vertices
// (errors) and for empty meshes or zero-size dimensions (warnings). It
// never mutates the scene.
func Validate(s *Scene) ValidationResult {
	var r ValidationResult
	for _, o := range s.Objects() {
		r.Errors = append(r.Errors, validateFinite(o)...)
		r.Warnings = append(r.Warnings, validateSize(o)...)
	}
	return r
}

func validateFinite(o *Object) []ValidationError {
	var errs []ValidationError
	for _, f := range []struct {
		what string
		v    [3]float64
	}{
		{"location", [3]float64{o.Location.X, o.Location.Y, o.Location.Z}},
		{"rotation", [3]float64{o.Rotation.X, o.Rotation.Y, o.Rotation.Z}},
		{"scale", [3]float64{o.Scale.X, o.Scale.Y, o.Scale.Z}},
	} {
		for a, c := range f.v {
			if math.IsNaN(c) || math.IsInf(c, 0) {
				errs = append(errs, ValidationError{
					ObjectID: o.ID,
					Object:   o.Name,
					Message:  fmt.Sprintf("%s %s is %v", f.what, Axis(a), c),
					Severity: SeverityError,
				})
			}
		}
	}
	if o.Mesh != nil && !o.Mesh.IsFinite() {
		errs = append(errs, ValidationError{
			ObjectID: o.ID,
			Object:   o.Name,
			Message:  "mesh has non-finite vertices",
			Severity: SeverityError,
		})
	}
	return errs
}

func validateSize(o *Object) []ValidationError {
	if o.Mesh == nil || len(o.Mesh.Faces) == 0 {
		return []ValidationError{{
			ObjectID: o.ID,
			Object:   o.Name,
			Message:  "object has no geometry",
			Severity: SeverityWarning,
		}}
	}
	var warnings []ValidationError
	d := o.Dimensions()
	for a, v := range [3]float64{d.X, d.Y, d.Z} {
		if v == 0 {
			warnings = append(warnings, ValidationError{
				ObjectID: o.ID,
				Object:   o.Name,
				Message:  fmt.Sprintf("dimension %s is zero", Axis(a)),
				Severity: SeverityWarning,
			})
		}
	}
	return warnings
}
