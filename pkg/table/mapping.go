package table

import (
	"fmt"
	"reflect"
	"strconv"
)

// tagName is the struct tag holding the column name of a field
const tagName = "table"

// taggedFields returns the fields of t carrying a table tag, in declaration order
func taggedFields(t reflect.Type) ([]reflect.StructField, []string, error) {
	if t.Kind() != reflect.Struct {
		return nil, nil, fmt.Errorf("model must be a struct, got %s", t.Kind())
	}

	var fields []reflect.StructField
	var columns []string
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		column := field.Tag.Get(tagName)
		if column == "" || column == "-" {
			continue
		}
		fields = append(fields, field)
		columns = append(columns, column)
	}

	if len(fields) == 0 {
		return nil, nil, fmt.Errorf("struct %s has no %q tags", t.Name(), tagName)
	}
	return fields, columns, nil
}

// DecodeAs maps every row of the table to a struct of type T.
// Fields are matched through `table:"column"` tags. Every tagged column must
// exist in the table; untagged table columns are ignored.
func DecodeAs[T any](t *Table) ([]T, error) {
	var model T
	typ := reflect.TypeOf(model)

	fields, columns, err := taggedFields(typ)
	if err != nil {
		return nil, err
	}
	for _, column := range columns {
		if !t.HasColumn(column) {
			return nil, fmt.Errorf("missing column %q", column)
		}
	}

	results := make([]T, 0, len(t.Rows))
	for rowIdx, row := range t.Rows {
		result := reflect.New(typ).Elem()

		for i, field := range fields {
			if err := setFieldValue(result.FieldByIndex(field.Index), row.Get(columns[i])); err != nil {
				return nil, fmt.Errorf("row %d, column %s: %w", rowIdx+1, columns[i], err)
			}
		}

		results = append(results, result.Interface().(T))
	}

	return results, nil
}

// Encode builds a table from structs, one row per item, columns in field order
func Encode[T any](items []T) (*Table, error) {
	var model T
	fields, columns, err := taggedFields(reflect.TypeOf(model))
	if err != nil {
		return nil, err
	}

	t := New(columns...)
	for itemIdx, item := range items {
		v := reflect.ValueOf(item)
		row := make(Row, len(columns))
		for i, field := range fields {
			cell, err := cellFromValue(v.FieldByIndex(field.Index))
			if err != nil {
				return nil, fmt.Errorf("item %d, column %s: %w", itemIdx, columns[i], err)
			}
			row[columns[i]] = cell
		}
		t.Append(row)
	}

	return t, nil
}

// setFieldValue converts a cell to the field's Go type and sets it.
// Null cells leave pointers nil and other fields at their zero value.
func setFieldValue(field reflect.Value, cell Cell) error {
	if !field.CanSet() {
		return fmt.Errorf("field cannot be set")
	}

	if field.Kind() == reflect.Pointer {
		if cell.IsNull() {
			field.Set(reflect.Zero(field.Type()))
			return nil
		}
		elem := reflect.New(field.Type().Elem())
		if err := setFieldValue(elem.Elem(), cell); err != nil {
			return err
		}
		field.Set(elem)
		return nil
	}

	if cell.IsNull() {
		field.Set(reflect.Zero(field.Type()))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(cell.String())

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		intVal, err := strconv.ParseInt(cell.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse int: %w", err)
		}
		field.SetInt(intVal)

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		uintVal, err := strconv.ParseUint(cell.String(), 10, 64)
		if err != nil {
			return fmt.Errorf("failed to parse uint: %w", err)
		}
		field.SetUint(uintVal)

	case reflect.Float32, reflect.Float64:
		floatVal, err := cell.Float64()
		if err != nil {
			return err
		}
		field.SetFloat(floatVal)

	case reflect.Bool:
		boolVal, err := cell.Bool()
		if err != nil {
			return err
		}
		field.SetBool(boolVal)

	default:
		return fmt.Errorf("unsupported field type: %s", field.Kind())
	}

	return nil
}

// cellFromValue converts a struct field to a cell
func cellFromValue(v reflect.Value) (Cell, error) {
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return Null(), nil
		}
		return cellFromValue(v.Elem())
	}

	switch v.Kind() {
	case reflect.String:
		return String(v.String()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return String(strconv.FormatInt(v.Int(), 10)), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return String(strconv.FormatUint(v.Uint(), 10)), nil
	case reflect.Float32, reflect.Float64:
		return Float(v.Float()), nil
	case reflect.Bool:
		return Bool(v.Bool()), nil
	default:
		return Null(), fmt.Errorf("unsupported field type: %s", v.Kind())
	}
}
