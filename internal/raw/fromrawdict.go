package raw

import (
	"fmt"
	"reflect"
	"strings"
)

// FromRawDict materializes a Go struct from a Dictionary using struct
// tags, mirroring what a macro/derive system gives for free in a
// language with compile-time code generation (the origin system this
// one was distilled from, a Rust crate, used exactly this via
// `#[derive(FromRawDict)]`). Go has no macros, so the same behavior is
// reached at runtime via reflect, driven by a `pdf:"..."` struct tag
// whose grammar is:
//
//	pdf:"-"                 field is never populated from the dict
//	pdf:"Key"               look up Key instead of the Go field name
//	pdf:",optional"         missing key leaves the field at its zero value
//	pdf:",default=expr"     missing key uses expr (parsed as the field's type)
//	pdf:",flatten"          the field is a struct populated from the SAME
//	                        dict (used for inherited page properties that
//	                        sit alongside a node's own keys rather than
//	                        under a nested key)
//
// Supported field kinds: string, []byte, bool, all int/float kinds,
// raw.Object (passthrough), raw.Reference / *raw.Reference, *raw.Array,
// *raw.Dictionary, and nested structs (recursing into a nested
// Dictionary value).
//
// There is no earlier precedent for this reflection-driven approach in
// the codebase this one descends from (the earlier implementation
// materialized fields by hand, one accessor method per field), since Go
// code written without a derive-macro equivalent simply doesn't need it.
func FromRawDict(dict *Dictionary, out interface{}) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("raw.FromRawDict: out must be a pointer to struct, got %T", out)
	}
	return populateStruct(dict, v.Elem())
}

type fieldTag struct {
	key        string
	skip       bool
	optional   bool
	flatten    bool
	defaultVal string
	hasDefault bool
}

func parseFieldTag(field reflect.StructField) fieldTag {
	raw, ok := field.Tag.Lookup("pdf")
	ft := fieldTag{key: field.Name}
	if !ok {
		return ft
	}
	parts := strings.Split(raw, ",")
	if parts[0] == "-" {
		ft.skip = true
		return ft
	}
	if parts[0] != "" {
		ft.key = parts[0]
	}
	for _, opt := range parts[1:] {
		switch {
		case opt == "optional":
			ft.optional = true
		case opt == "flatten":
			ft.flatten = true
		case strings.HasPrefix(opt, "default="):
			ft.hasDefault = true
			ft.defaultVal = strings.TrimPrefix(opt, "default=")
		}
	}
	return ft
}

func populateStruct(dict *Dictionary, sv reflect.Value) error {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := parseFieldTag(field)
		if tag.skip {
			continue
		}
		fv := sv.Field(i)

		if tag.flatten {
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					fv.Set(reflect.New(fv.Type().Elem()))
				}
				if err := populateStruct(dict, fv.Elem()); err != nil {
					return fmt.Errorf("field %s (flatten): %w", field.Name, err)
				}
			} else if fv.Kind() == reflect.Struct {
				if err := populateStruct(dict, fv); err != nil {
					return fmt.Errorf("field %s (flatten): %w", field.Name, err)
				}
			} else {
				return fmt.Errorf("field %s: flatten requires a struct or struct pointer", field.Name)
			}
			continue
		}

		val := dict.Get(Name(tag.key))
		if val == nil {
			switch {
			case tag.hasDefault:
				if err := assignDefault(fv, tag.defaultVal); err != nil {
					return fmt.Errorf("field %s default: %w", field.Name, err)
				}
			case tag.optional:
				// leave zero value
			default:
				return fmt.Errorf("missing required key %q for field %s", tag.key, field.Name)
			}
			continue
		}
		if err := assignValue(fv, val); err != nil {
			return fmt.Errorf("field %s (key %q): %w", field.Name, tag.key, err)
		}
	}
	return nil
}

func assignDefault(fv reflect.Value, lit string) error {
	switch fv.Kind() {
	case reflect.String:
		fv.SetString(lit)
	case reflect.Bool:
		fv.SetBool(lit == "true")
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		var n int64
		if _, err := fmt.Sscanf(lit, "%d", &n); err != nil {
			return err
		}
		fv.SetInt(n)
	case reflect.Float32, reflect.Float64:
		var f float64
		if _, err := fmt.Sscanf(lit, "%g", &f); err != nil {
			return err
		}
		fv.SetFloat(f)
	default:
		return fmt.Errorf("unsupported default for kind %s", fv.Kind())
	}
	return nil
}

func assignValue(fv reflect.Value, val Object) error {
	// raw.Object passthrough (interface field).
	if fv.Type() == reflect.TypeOf((*Object)(nil)).Elem() {
		fv.Set(reflect.ValueOf(val))
		return nil
	}
	if fv.Type() == reflect.TypeOf(Reference{}) {
		ref, ok := val.(Reference)
		if !ok {
			return fmt.Errorf("expected reference, got %s", val.Kind())
		}
		fv.Set(reflect.ValueOf(ref))
		return nil
	}
	if fv.Type() == reflect.TypeOf(&Reference{}) {
		ref, ok := val.(Reference)
		if !ok {
			return fmt.Errorf("expected reference, got %s", val.Kind())
		}
		fv.Set(reflect.ValueOf(&ref))
		return nil
	}
	if fv.Type() == reflect.TypeOf(&Array{}) {
		arr, ok := val.(*Array)
		if !ok {
			return fmt.Errorf("expected array, got %s", val.Kind())
		}
		fv.Set(reflect.ValueOf(arr))
		return nil
	}
	if fv.Type() == reflect.TypeOf(&Dictionary{}) {
		d, ok := val.(*Dictionary)
		if !ok {
			return fmt.Errorf("expected dictionary, got %s", val.Kind())
		}
		fv.Set(reflect.ValueOf(d))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		switch t := val.(type) {
		case Name:
			fv.SetString(string(t))
		case PdfString:
			fv.SetString(t.String())
		default:
			return fmt.Errorf("expected name or string, got %s", val.Kind())
		}
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			s, ok := val.(PdfString)
			if !ok {
				return fmt.Errorf("expected string, got %s", val.Kind())
			}
			fv.SetBytes([]byte(s))
			return nil
		}
		arr, ok := val.(*Array)
		if !ok {
			return fmt.Errorf("expected array, got %s", val.Kind())
		}
		out := reflect.MakeSlice(fv.Type(), len(*arr), len(*arr))
		for i, elem := range *arr {
			if err := assignValue(out.Index(i), elem); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		fv.Set(out)
	case reflect.Bool:
		b, ok := val.(Boolean)
		if !ok {
			return fmt.Errorf("expected boolean, got %s", val.Kind())
		}
		fv.SetBool(bool(b))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := val.(Integer)
		if !ok {
			return fmt.Errorf("expected integer, got %s", val.Kind())
		}
		fv.SetInt(int64(n))
	case reflect.Float32, reflect.Float64:
		f, ok := AsFloat(val)
		if !ok {
			return fmt.Errorf("expected number, got %s", val.Kind())
		}
		fv.SetFloat(f)
	case reflect.Struct:
		d, ok := val.(*Dictionary)
		if !ok {
			return fmt.Errorf("expected dictionary, got %s", val.Kind())
		}
		return populateStruct(d, fv)
	case reflect.Ptr:
		if fv.Type().Elem().Kind() == reflect.Struct {
			d, ok := val.(*Dictionary)
			if !ok {
				return fmt.Errorf("expected dictionary, got %s", val.Kind())
			}
			fv.Set(reflect.New(fv.Type().Elem()))
			return populateStruct(d, fv.Elem())
		}
		return fmt.Errorf("unsupported pointer field kind %s", fv.Type().Elem().Kind())
	default:
		return fmt.Errorf("unsupported field kind %s", fv.Kind())
	}
	return nil
}
