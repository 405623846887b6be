package dsl

import (
	toolbox "github.com/plangrid/toolbox"
)

// FieldOption configures the attributes shared by every field type.
type FieldOption func(*fieldConfig)

type fieldConfig struct {
	opts        toolbox.FieldOptions
	setValidate bool
}

// Required marks the field as required: Load reports a missing key, and
// policy.RequireOnDump checks it on output.
func Required() FieldOption {
	return func(c *fieldConfig) { c.opts.Required = true }
}

// AllowNone accepts null values in both directions.
func AllowNone() FieldOption {
	return func(c *fieldConfig) { c.opts.AllowNone = true }
}

// LoadFrom sets an alternate input key read when the field name is absent.
// When both keys are present the field name wins.
func LoadFrom(key string) FieldOption {
	return func(c *fieldConfig) { c.opts.LoadFrom = key }
}

// Validate appends validators run after deserialization.
func Validate(vs ...toolbox.Validator) FieldOption {
	return func(c *fieldConfig) {
		c.setValidate = true
		c.opts.Validators = append(c.opts.Validators, vs...)
	}
}

func applyOptions(opts []FieldOption) fieldConfig {
	var c fieldConfig
	for _, o := range opts {
		if o != nil {
			o(&c)
		}
	}
	return c
}
