// Package formdef describes whole forms declaratively and renders them
// through a fragment.Form.
package formdef

import (
	"github.com/goliatone/go-formhtml/pkg/fragment"
	"github.com/goliatone/go-formhtml/pkg/options"
)

// Built-in field kinds.
const (
	KindText         = "text"
	KindEmail        = "email"
	KindSearch       = "search"
	KindNumber       = "number"
	KindRate         = "rate"
	KindTel          = "tel"
	KindTime         = "time"
	KindDate         = "date"
	KindDateTime     = "datetime"
	KindPassword     = "password"
	KindEncrypted    = "encrypted"
	KindFile         = "file"
	KindHidden       = "hidden"
	KindSelect       = "select"
	KindCheckbox     = "checkbox"
	KindRadio        = "radio"
	KindTextArea     = "textarea"
	KindDisplay      = "display"
	KindHeader       = "header"
	KindMessage      = "message"
	KindName         = "name"
	KindPhone        = "phone"
	KindCityStateZip = "citystatezip"
	KindAddress      = "address"
	KindNote         = "note"
	KindVerify       = "verify"
	KindObsolete     = "obsolete"
	KindSubmit       = "submit"
)

// Kinds lists the built-in field kinds.
func Kinds() []string {
	return []string{
		KindText, KindEmail, KindSearch, KindNumber, KindRate, KindTel, KindTime,
		KindDate, KindDateTime, KindPassword, KindEncrypted, KindFile, KindHidden,
		KindSelect, KindCheckbox, KindRadio, KindTextArea, KindDisplay, KindHeader,
		KindMessage, KindName, KindPhone, KindCityStateZip, KindAddress, KindNote,
		KindVerify, KindObsolete, KindSubmit,
	}
}

// Definition is a complete form.
type Definition struct {
	ID      string  `json:"id" yaml:"id"`
	Title   string  `json:"title,omitempty" yaml:"title,omitempty"`
	Profile string  `json:"profile,omitempty" yaml:"profile,omitempty"`
	Fields  []Field `json:"fields" yaml:"fields"`

	// Source records the file the definition was loaded from.
	Source string `json:"-" yaml:"-"`
}

// Field is a single element of a definition. Kind may be left empty and is
// then resolved from the other properties.
type Field struct {
	Kind        string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Name        string            `json:"name,omitempty" yaml:"name,omitempty"`
	Value       string            `json:"value,omitempty" yaml:"value,omitempty"`
	Format      string            `json:"format,omitempty" yaml:"format,omitempty"`
	Attributes  map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
	Options     []options.Option  `json:"options,omitempty" yaml:"options,omitempty"`
	OptionList  string            `json:"optionList,omitempty" yaml:"optionList,omitempty"`
	Query       *Query            `json:"query,omitempty" yaml:"query,omitempty"`
	DataList    []string          `json:"datalist,omitempty" yaml:"datalist,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Tooltip     string            `json:"tooltip,omitempty" yaml:"tooltip,omitempty"`
	Values      []FieldValue      `json:"values,omitempty" yaml:"values,omitempty"`
	Level       int               `json:"level,omitempty" yaml:"level,omitempty"`
	FileID      *int              `json:"fileId,omitempty" yaml:"fileId,omitempty"`
	Button      *Button           `json:"button,omitempty" yaml:"button,omitempty"`
	StartBlank  bool              `json:"startBlank,omitempty" yaml:"startBlank,omitempty"`
	PriorOnly   bool              `json:"priorOnly,omitempty" yaml:"priorOnly,omitempty"`
	PostArray   *string           `json:"postArray,omitempty" yaml:"postArray,omitempty"`
}

// FieldValue is one member of a composite field.
type FieldValue struct {
	Name  string `json:"name" yaml:"name"`
	Value string `json:"value,omitempty" yaml:"value,omitempty"`
}

// Query sources options from SQL.
type Query struct {
	SQL        string `json:"sql" yaml:"sql"`
	Args       []any  `json:"args,omitempty" yaml:"args,omitempty"`
	ValueField string `json:"valueField" yaml:"valueField"`
	LabelField string `json:"labelField,omitempty" yaml:"labelField,omitempty"`
}

// Button describes the ajax button verify, obsolete and submit fields render.
type Button struct {
	Name      string `json:"name" yaml:"name"`
	Text      string `json:"text" yaml:"text"`
	Container string `json:"container,omitempty" yaml:"container,omitempty"`
}

func (f Field) fragmentValues() []fragment.FieldValue {
	out := make([]fragment.FieldValue, len(f.Values))
	for i, v := range f.Values {
		out[i] = fragment.FieldValue{Name: v.Name, Value: v.Value}
	}
	return out
}
