package builder

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/coregx/pdfgraph/internal/raw"
)

// Build resolves ref to a dictionary (or a stream's dictionary half)
// and materializes it into a value of type T, following the same
// struct-tag grammar as raw.FromRawDict but additionally resolving any
// indirect reference encountered for a non-reference-typed field before
// assigning it — BuildFromRawDict below, a reference-resolving
// counterpart to the plain raw.FromRawDict.
//
// Generalized from raw.FromRawDict (internal/raw/fromrawdict.go) with
// the Builder threaded through so nested dictionaries and arrays of
// references resolve recursively.
func Build[T any](b *Builder, ref raw.Reference) (T, error) {
	var zero T
	dict, err := b.ResolveDict(ref)
	if err != nil {
		return zero, err
	}
	var out T
	if err := BuildFromRawDict(b, dict, &out); err != nil {
		return zero, err
	}
	return out, nil
}

// BuildFromRawDict populates out (a pointer to struct) from dict,
// resolving indirect references transparently. See Build for the
// reference-resolving distinction from raw.FromRawDict.
func BuildFromRawDict(b *Builder, dict *raw.Dictionary, out interface{}) error {
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Ptr || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("builder.BuildFromRawDict: out must be a pointer to struct, got %T", out)
	}
	return populate(b, dict, v.Elem())
}

type buildTag struct {
	key        string
	skip       bool
	optional   bool
	flatten    bool
	keepRef    bool
	defaultVal string
	hasDefault bool
}

func parseBuildTag(field reflect.StructField) buildTag {
	tagStr, ok := field.Tag.Lookup("pdf")
	bt := buildTag{key: field.Name}
	if !ok {
		return bt
	}
	parts := strings.Split(tagStr, ",")
	if parts[0] == "-" {
		bt.skip = true
		return bt
	}
	if parts[0] != "" {
		bt.key = parts[0]
	}
	for _, opt := range parts[1:] {
		switch {
		case opt == "optional":
			bt.optional = true
		case opt == "flatten":
			bt.flatten = true
		case opt == "ref":
			bt.keepRef = true
		case strings.HasPrefix(opt, "default="):
			bt.hasDefault = true
			bt.defaultVal = strings.TrimPrefix(opt, "default=")
		}
	}
	return bt
}

func populate(b *Builder, dict *raw.Dictionary, sv reflect.Value) error {
	st := sv.Type()
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.IsExported() {
			continue
		}
		tag := parseBuildTag(field)
		if tag.skip {
			continue
		}
		fv := sv.Field(i)

		if tag.flatten {
			if fv.Kind() == reflect.Ptr {
				if fv.IsNil() {
					fv.Set(reflect.New(fv.Type().Elem()))
				}
				if err := populate(b, dict, fv.Elem()); err != nil {
					return fmt.Errorf("field %s (flatten): %w", field.Name, err)
				}
			} else {
				if err := populate(b, dict, fv); err != nil {
					return fmt.Errorf("field %s (flatten): %w", field.Name, err)
				}
			}
			continue
		}

		val := dict.Get(raw.Name(tag.key))
		if val == nil {
			if tag.hasDefault {
				if err := assignScalarDefault(fv, tag.defaultVal); err != nil {
					return fmt.Errorf("field %s default: %w", field.Name, err)
				}
				continue
			}
			if tag.optional {
				continue
			}
			return fmt.Errorf("missing required key %q for field %s", tag.key, field.Name)
		}

		if tag.keepRef {
			if err := assignRaw(fv, val); err != nil {
				return fmt.Errorf("field %s (key %q): %w", field.Name, tag.key, err)
			}
			continue
		}

		resolved, err := b.Resolved(val)
		if err != nil {
			return fmt.Errorf("field %s (key %q): resolving reference: %w", field.Name, tag.key, err)
		}
		if err := assignResolved(b, fv, resolved); err != nil {
			return fmt.Errorf("field %s (key %q): %w", field.Name, tag.key, err)
		}
	}
	return nil
}

func assignScalarDefault(fv reflect.Value, lit string) error {
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

// assignRaw is used for `,ref` fields: the value is kept as whatever
// raw.Object it is (typically a raw.Reference, to be resolved lazily by
// the caller) without the automatic resolution assignResolved performs.
func assignRaw(fv reflect.Value, val raw.Object) error {
	if fv.Type() == reflect.TypeOf(raw.Reference{}) {
		ref, ok := val.(raw.Reference)
		if !ok {
			return fmt.Errorf("expected reference, got %s", val.Kind())
		}
		fv.Set(reflect.ValueOf(ref))
		return nil
	}
	if fv.Type() == reflect.TypeOf((*raw.Object)(nil)).Elem() {
		fv.Set(reflect.ValueOf(val))
		return nil
	}
	return fmt.Errorf("unsupported field type %s for ,ref", fv.Type())
}

func assignResolved(b *Builder, fv reflect.Value, val raw.Object) error {
	if fv.Type() == reflect.TypeOf((*raw.Object)(nil)).Elem() {
		fv.Set(reflect.ValueOf(val))
		return nil
	}
	if fv.Type() == reflect.TypeOf(&raw.Dictionary{}) {
		d, ok := val.(*raw.Dictionary)
		if !ok {
			return fmt.Errorf("expected dictionary, got %s", val.Kind())
		}
		fv.Set(reflect.ValueOf(d))
		return nil
	}
	if fv.Type() == reflect.TypeOf(&raw.Stream{}) {
		s, ok := val.(*raw.Stream)
		if !ok {
			return fmt.Errorf("expected stream, got %s", val.Kind())
		}
		fv.Set(reflect.ValueOf(s))
		return nil
	}

	switch fv.Kind() {
	case reflect.String:
		switch t := val.(type) {
		case raw.Name:
			fv.SetString(string(t))
		case raw.PdfString:
			fv.SetString(t.String())
		default:
			return fmt.Errorf("expected name or string, got %s", val.Kind())
		}
	case reflect.Slice:
		if fv.Type().Elem().Kind() == reflect.Uint8 {
			s, ok := val.(raw.PdfString)
			if !ok {
				return fmt.Errorf("expected string, got %s", val.Kind())
			}
			fv.SetBytes([]byte(s))
			return nil
		}
		arr, ok := val.(*raw.Array)
		if !ok {
			return fmt.Errorf("expected array, got %s", val.Kind())
		}
		out := reflect.MakeSlice(fv.Type(), len(*arr), len(*arr))
		for i, elem := range *arr {
			resolved, err := b.Resolved(elem)
			if err != nil {
				return fmt.Errorf("element %d: resolving reference: %w", i, err)
			}
			if err := assignResolved(b, out.Index(i), resolved); err != nil {
				return fmt.Errorf("element %d: %w", i, err)
			}
		}
		fv.Set(out)
	case reflect.Bool:
		bv, ok := val.(raw.Boolean)
		if !ok {
			return fmt.Errorf("expected boolean, got %s", val.Kind())
		}
		fv.SetBool(bool(bv))
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n, ok := val.(raw.Integer)
		if !ok {
			return fmt.Errorf("expected integer, got %s", val.Kind())
		}
		fv.SetInt(int64(n))
	case reflect.Float32, reflect.Float64:
		f, ok := raw.AsFloat(val)
		if !ok {
			return fmt.Errorf("expected number, got %s", val.Kind())
		}
		fv.SetFloat(f)
	case reflect.Struct:
		d, ok := val.(*raw.Dictionary)
		if !ok {
			return fmt.Errorf("expected dictionary, got %s", val.Kind())
		}
		return populate(b, d, fv)
	case reflect.Ptr:
		if fv.Type().Elem().Kind() == reflect.Struct {
			d, ok := val.(*raw.Dictionary)
			if !ok {
				return fmt.Errorf("expected dictionary, got %s", val.Kind())
			}
			fv.Set(reflect.New(fv.Type().Elem()))
			return populate(b, d, fv.Elem())
		}
		return fmt.Errorf("unsupported pointer field kind %s", fv.Type().Elem().Kind())
	default:
		return fmt.Errorf("unsupported field kind %s", fv.Kind())
	}
	return nil
}
