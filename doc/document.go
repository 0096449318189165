// Copyright (c) 2018 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package doc

import (
	"bytes"
	"errors"
	"fmt"
	"unicode/utf8"
)

var (
	errReservedFieldName = fmt.Errorf("'%s' is a reserved field name", IDReservedFieldName)
	errEmptyDocument     = errors.New("document cannot be empty")
	errEmptyFieldName    = errors.New("field name cannot be empty")
)

// IDReservedFieldName is the field name reserved for IDs.
var IDReservedFieldName = []byte("_m3ninx_id")

// Field represents a field in a document. It is composed of a name and a value.
type Field struct {
	Name  []byte
	Value []byte
}

// Fields is a list of fields.
type Fields []Field

func (f Fields) Len() int {
	return len(f)
}

func (f Fields) Less(i, j int) bool {
	l, r := f[i], f[j]

	if c := bytes.Compare(l.Name, r.Name); c != 0 {
		return c < 0
	}
	return bytes.Compare(l.Value, r.Value) < 0
}

func (f Fields) Swap(i, j int) {
	f[i], f[j] = f[j], f[i]
}

// Document represents a document to be indexed. A field name may repeat, in
// which case the values are indexed as consecutive runs of the same field.
type Document struct {
	ID     []byte
	Fields Fields
}

// Get returns the value of the first field with the given name if it exists.
func (d Document) Get(fieldName []byte) ([]byte, bool) {
	for _, f := range d.Fields {
		if bytes.Equal(fieldName, f.Name) {
			return f.Value, true
		}
	}
	return nil, false
}

// Equal returns a bool indicating whether d is equal to other.
func (d Document) Equal(other Document) bool {
	if !bytes.Equal(d.ID, other.ID) || len(d.Fields) != len(other.Fields) {
		return false
	}
	for i := range d.Fields {
		if !bytes.Equal(d.Fields[i].Name, other.Fields[i].Name) ||
			!bytes.Equal(d.Fields[i].Value, other.Fields[i].Value) {
			return false
		}
	}
	return true
}

// Validate returns an error if the document is invalid.
func (d Document) Validate() error {
	if len(d.Fields) == 0 && len(d.ID) == 0 {
		return errEmptyDocument
	}

	for _, f := range d.Fields {
		if len(f.Name) == 0 {
			return errEmptyFieldName
		}

		if !utf8.Valid(f.Name) {
			return fmt.Errorf("document contains invalid field name: %v", f.Name)
		}

		if bytes.Equal(f.Name, IDReservedFieldName) {
			return errReservedFieldName
		}

		if !utf8.Valid(f.Value) {
			return fmt.Errorf("document contains invalid field value: %v", f.Value)
		}
	}

	return nil
}
