package debugui

import (
	"fmt"
	"reflect"
	"sync"
)

// FieldInfo describes one exported field of a component struct.
type FieldInfo struct {
	Name      string
	Type      reflect.Type
	Index     int
	IsPointer bool
	IsStruct  bool
}

type fieldCache struct {
	mu     sync.RWMutex
	fields map[reflect.Type][]FieldInfo
}

var componentFields = &fieldCache{fields: make(map[reflect.Type][]FieldInfo)}

// get returns the exported fields of t. Non-struct types have none.
func (fc *fieldCache) get(t reflect.Type) []FieldInfo {
	fc.mu.RLock()
	cached, ok := fc.fields[t]
	fc.mu.RUnlock()
	if ok {
		return cached
	}

	fc.mu.Lock()
	defer fc.mu.Unlock()
	if cached, ok := fc.fields[t]; ok {
		return cached
	}

	var fields []FieldInfo
	if t.Kind() == reflect.Struct {
		for i := 0; i < t.NumField(); i++ {
			field := t.Field(i)
			if !field.IsExported() {
				continue
			}

			fieldType := field.Type
			isPointer := fieldType.Kind() == reflect.Ptr
			if isPointer {
				fieldType = fieldType.Elem()
			}
			fields = append(fields, FieldInfo{
				Name:      field.Name,
				Type:      fieldType,
				Index:     i,
				IsPointer: isPointer,
				IsStruct:  fieldType.Kind() == reflect.Struct,
			})
		}
	}

	fc.fields[t] = fields
	return fields
}

// assign stores value into the settable field, converting between numeric
// kinds. Negative values are refused for unsigned fields.
func assign(field reflect.Value, value any) error {
	if !field.CanSet() {
		return fmt.Errorf("field of type %s is not settable", field.Type())
	}

	v := reflect.ValueOf(value)
	switch field.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if !v.CanInt() {
			return fmt.Errorf("cannot assign %T to %s", value, field.Type())
		}
		field.SetInt(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		switch {
		case v.CanUint():
			field.SetUint(v.Uint())
		case v.CanInt() && v.Int() >= 0:
			field.SetUint(uint64(v.Int()))
		default:
			return fmt.Errorf("cannot assign %v to %s", value, field.Type())
		}
	case reflect.Float32, reflect.Float64:
		if !v.CanFloat() {
			return fmt.Errorf("cannot assign %T to %s", value, field.Type())
		}
		field.SetFloat(v.Float())
	case reflect.Bool, reflect.String:
		if v.Kind() != field.Kind() {
			return fmt.Errorf("cannot assign %T to %s", value, field.Type())
		}
		field.Set(v.Convert(field.Type()))
	default:
		return fmt.Errorf("fields of kind %s are read-only", field.Kind())
	}
	return nil
}
