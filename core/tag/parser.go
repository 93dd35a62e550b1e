package tag

import (
	"encoding"
	"reflect"
	"strconv"
	"strings"
	"time"
)

var durationType = reflect.TypeFor[time.Duration]()

// parse converts str into v's type and stores it.
func parse(v reflect.Value, str string) error {
	if v.CanAddr() {
		if u, ok := v.Addr().Interface().(encoding.TextUnmarshaler); ok {
			return u.UnmarshalText([]byte(str))
		}
	}

	str = strings.TrimSpace(str)

	switch v.Kind() {
	case reflect.String:
		v.SetString(str)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if v.Type() == durationType {
			d, err := time.ParseDuration(str)
			if err != nil {
				return err
			}
			v.SetInt(int64(d))
			return nil
		}
		n, err := strconv.ParseInt(str, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetInt(n)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		n, err := strconv.ParseUint(str, 10, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetUint(n)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(str, v.Type().Bits())
		if err != nil {
			return err
		}
		v.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(str)
		if err != nil {
			return err
		}
		v.SetBool(b)

	case reflect.Slice:
		return parseSlice(v, str)

	default:
		return ErrUnsupportedType
	}
	return nil
}

// parseSlice splits comma separated values into a fresh slice.
func parseSlice(v reflect.Value, str string) error {
	if str == "" {
		v.Set(reflect.MakeSlice(v.Type(), 0, 0))
		return nil
	}

	parts := strings.Split(str, ",")
	slice := reflect.MakeSlice(v.Type(), len(parts), len(parts))
	for i, part := range parts {
		elem := slice.Index(i)
		if elem.Kind() == reflect.Slice {
			return ErrUnsupportedType
		}
		if err := parse(elem, part); err != nil {
			return err
		}
	}
	v.Set(slice)
	return nil
}
