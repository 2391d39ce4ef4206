// Package validate provides a small field-rule validation engine plus the
// job and worker validation profiles built on it.
package validate

import "fmt"

// Rule checks a single field value. It returns false and a human-readable
// message when the value is rejected.
type Rule func(value string) (bool, string)

// field pairs a name with its ordered rule list.
type field struct {
	name  string
	rules []Rule
}

// Validator runs ordered rules over named fields. Fields are evaluated in
// registration order and every failing rule is collected; validation never
// stops at the first error.
type Validator struct {
	fields []field
}

// New returns an empty Validator.
func New() *Validator {
	return &Validator{}
}

// Field registers rules for a field. Registering the same field twice
// appends to its rule list.
func (v *Validator) Field(name string, rules ...Rule) *Validator {
	for i := range v.fields {
		if v.fields[i].name == name {
			v.fields[i].rules = append(v.fields[i].rules, rules...)
			return v
		}
	}
	v.fields = append(v.fields, field{name: name, rules: rules})
	return v
}

// Result is the outcome of a validation run.
type Result struct {
	IsValid bool

	// Errors maps field names to their failure messages, in rule order.
	Errors map[string][]string

	// Messages lists every failure as "field: message", in field order.
	Messages []string
}

// Validate checks values against the registered fields. Missing keys are
// treated as empty strings, so Required catches them.
func (v *Validator) Validate(values map[string]string) *Result {
	res := &Result{IsValid: true, Errors: map[string][]string{}}

	for _, f := range v.fields {
		value := values[f.name]
		for _, rule := range f.rules {
			ok, msg := rule(value)
			if ok {
				continue
			}
			res.IsValid = false
			res.Errors[f.name] = append(res.Errors[f.name], msg)
			res.Messages = append(res.Messages, fmt.Sprintf("%s: %s", f.name, msg))
		}
	}
	return res
}
