package utils

import (
	"reflect"
	"strings"

	"github.com/shopspring/decimal"
)

// NormalizePtrDTO trims *string fields and rounds *decimal.Decimal fields on a
// pointer-to-struct DTO. Only non-nil pointer fields are touched; nils stay
// nil so partial updates won't clobber unset fields.
func NormalizePtrDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if f.Kind() != reflect.Ptr || f.IsNil() {
			continue
		}
		switch p := f.Interface().(type) {
		case *string:
			*p = strings.TrimSpace(*p)
		case *decimal.Decimal:
			*p = Round2(*p)
		}
	}
}

// NormalizeDTO trims string fields and rounds decimal fields on a
// pointer-to-struct DTO with non-pointer fields.
func NormalizeDTO(dto any) {
	v := reflect.ValueOf(dto)
	if v.Kind() != reflect.Ptr {
		return
	}
	s := v.Elem()
	if s.Kind() != reflect.Struct {
		return
	}
	for i := 0; i < s.NumField(); i++ {
		f := s.Field(i)
		if !f.CanAddr() {
			continue
		}
		switch p := f.Addr().Interface().(type) {
		case *string:
			*p = strings.TrimSpace(*p)
		case *decimal.Decimal:
			*p = Round2(*p)
		}
	}
}
