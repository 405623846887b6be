package toolbox

import (
	"reflect"
	"strings"
)

// ResolveStructKey applies the repository-wide rule to resolve a struct
// field's external key used by Dump.
// Priority: toolbox:"name=..." > json tag name > field name; "-" disables the field.
func ResolveStructKey(sf reflect.StructField) string {
	if gt := sf.Tag.Get("toolbox"); gt != "" {
		parts := strings.Split(gt, ",")
		for _, p := range parts {
			p = strings.TrimSpace(p)
			if strings.HasPrefix(p, "name=") {
				return strings.TrimPrefix(p, "name=")
			}
		}
	}
	if jt := sf.Tag.Get("json"); jt != "" {
		if jt == "-" {
			return "-"
		}
		if i := strings.IndexByte(jt, ','); i >= 0 && jt[:i] != "" {
			return jt[:i]
		}
		if jt[0] != ',' {
			return jt
		}
	}
	return sf.Name
}

// Attr extracts the value named key from obj for serialization. Maps are
// looked up by key; structs by ResolveStructKey. The second result is false
// when obj has no such attribute, which is distinct from a nil value.
// Non-nil pointer struct fields are dereferenced.
func Attr(obj any, key string) (any, bool) {
	switch o := obj.(type) {
	case nil:
		return nil, false
	case map[string]any:
		v, ok := o[key]
		return v, ok
	case Data:
		return o.Lookup(key)
	}
	rv := reflect.ValueOf(obj)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil, false
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false
		}
		mv := rv.MapIndex(reflect.ValueOf(key).Convert(rv.Type().Key()))
		if !mv.IsValid() {
			return nil, false
		}
		return mv.Interface(), true
	case reflect.Struct:
		rt := rv.Type()
		for i := 0; i < rt.NumField(); i++ {
			sf := rt.Field(i)
			if !sf.IsExported() {
				continue
			}
			if ResolveStructKey(sf) != key {
				continue
			}
			fv := rv.Field(i)
			if (fv.Kind() == reflect.Pointer || fv.Kind() == reflect.Interface ||
				fv.Kind() == reflect.Map || fv.Kind() == reflect.Slice) && fv.IsNil() {
				return nil, true
			}
			if fv.Kind() == reflect.Pointer {
				fv = fv.Elem()
			}
			return fv.Interface(), true
		}
	}
	return nil, false
}

// IsMapping reports whether v can be read field by field during Dump.
func IsMapping(v any) bool {
	if v == nil {
		return false
	}
	switch v.(type) {
	case map[string]any, Data:
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return false
		}
		rv = rv.Elem()
	}
	return rv.Kind() == reflect.Struct || (rv.Kind() == reflect.Map && rv.Type().Key().Kind() == reflect.String)
}
