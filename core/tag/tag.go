// Package tag fills zero-valued struct fields from `default:"..."` tags.
// Configuration structs use it so values missing from the config file and the
// environment still have sane settings.
package tag

import (
	"reflect"
)

const (
	tagName  = "default"
	maxDepth = 16
)

// ApplyDefaults sets default values for zero fields of the struct target points to.
// Nested structs and pointers to structs are walked; non-zero fields are left alone.
//
//	type Backend struct {
//	    BaseURL string        `default:"http://localhost:8080"`
//	    Timeout time.Duration `default:"30s"`
//	}
func ApplyDefaults(target any) error {
	v := reflect.ValueOf(target)
	if v.Kind() != reflect.Pointer {
		return ErrTargetMustBePointer
	}
	if v.IsNil() {
		return ErrTargetIsNil
	}
	if v.Elem().Kind() != reflect.Struct {
		return ErrUnsupportedType
	}
	return applyStruct(v.Elem(), "", 0)
}

func applyStruct(v reflect.Value, path string, depth int) error {
	if depth >= maxDepth {
		return ErrMaxDepthExceeded
	}

	typ := v.Type()
	for i := range typ.NumField() {
		field := typ.Field(i)
		fv := v.Field(i)
		if !fv.CanSet() {
			continue
		}

		fieldPath := field.Name
		if path != "" {
			fieldPath = path + "." + field.Name
		}

		if err := applyField(fv, field.Tag.Get(tagName), fieldPath, depth); err != nil {
			return err
		}
	}
	return nil
}

func applyField(fv reflect.Value, def, path string, depth int) error {
	switch fv.Kind() {
	case reflect.Struct:
		return applyStruct(fv, path, depth+1)

	case reflect.Pointer:
		if fv.Type().Elem().Kind() != reflect.Struct {
			break
		}
		if fv.IsNil() {
			if def == "" {
				return nil
			}
			// any non-empty default allocates the struct
			fv.Set(reflect.New(fv.Type().Elem()))
		}
		return applyStruct(fv.Elem(), path, depth+1)
	}

	if def == "" || !fv.IsZero() {
		return nil
	}

	if err := parse(fv, def); err != nil {
		return &FieldError{Path: path, Kind: fv.Kind(), Value: def, Err: err}
	}
	return nil
}
