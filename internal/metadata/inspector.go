package metadata

import (
	"reflect"
	"strings"
	"time"
	"unicode"
)

// Inspect analyzes a struct and returns a ReportDef with one column per exported field.
//
// Supported struct tags:
//   - json:  column key (falls back to camelCase field name; "-" skips the field)
//   - title: column title (falls back to the split field name)
//   - kind:  text, number, date or currency (falls back to the Go type)
//   - query: extra logical name accepted by the query builder for this field
func Inspect(entity any, name string) ReportDef {
	t := reflect.TypeOf(entity)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if name == "" {
		name = t.Name()
	}

	def := ReportDef{
		Name:    name,
		Label:   guessLabel(t.Name()),
		Columns: make([]Column, 0, t.NumField()),
		Fields:  make(map[string]string),
	}

	inspectStruct(t, &def)

	return def
}

func inspectStruct(t reflect.Type, def *ReportDef) {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.PkgPath != "" { // unexported
			continue
		}

		// Handle embedded structs (flattening)
		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			inspectStruct(field.Type, def)
			continue
		}

		col := Column{
			Key:   jsonName(field),
			Title: titleOf(field),
		}
		if col.Key == "-" {
			continue
		}
		col.Kind = mapFieldKind(field)

		if alias, ok := field.Tag.Lookup("query"); ok && alias != "" {
			def.Fields[alias] = col.Key
		}

		def.Columns = append(def.Columns, col)
	}
}

func mapFieldKind(field reflect.StructField) Kind {
	if tag, ok := field.Tag.Lookup("kind"); ok {
		if k := ParseKind(tag); k != KindAuto {
			return k
		}
	}

	t := field.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	if t == reflect.TypeOf(time.Time{}) {
		return KindDate
	}

	switch t.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		// Money by name convention
		if isMoneyName(field.Name) {
			return KindCurrency
		}
		return KindNumber
	case reflect.String:
		if strings.HasSuffix(field.Name, "Date") || strings.HasSuffix(field.Name, "At") {
			return KindDate
		}
		if isMoneyName(field.Name) {
			return KindCurrency
		}
		return KindText
	default:
		return KindText
	}
}

func isMoneyName(name string) bool {
	for _, part := range []string{"Amount", "Price", "Cost", "Value"} {
		if strings.Contains(name, part) {
			return true
		}
	}
	return false
}

func jsonName(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("json"); ok {
		parts := strings.Split(tag, ",")
		if parts[0] != "" {
			return parts[0]
		}
	}
	// Fallback: camelCase
	runes := []rune(field.Name)
	runes[0] = unicode.ToLower(runes[0])
	return string(runes)
}

func titleOf(field reflect.StructField) string {
	if tag, ok := field.Tag.Lookup("title"); ok && tag != "" {
		return tag
	}
	return guessLabel(field.Name)
}

// guessLabel splits a CamelCase identifier into words, keeping acronyms together:
// "PurchaseDate" -> "Purchase Date", "AssetID" -> "Asset ID", "IPAddress" -> "IP Address".
func guessLabel(name string) string {
	runes := []rune(name)
	var b strings.Builder
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				b.WriteByte(' ')
			}
		}
		b.WriteRune(r)
	}
	return b.String()
}
