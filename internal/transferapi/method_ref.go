package transferapi

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// MethodRef is either a bare method id or a populated Method, depending on
// whether the server joined the method row. Use ID for the identity and Resolve
// to obtain the full Method in both cases.
type MethodRef struct {
	id     string
	method *Method
}

// Ref wraps an unpopulated method id.
func Ref(id string) MethodRef {
	return MethodRef{id: id}
}

// Populated wraps a full method.
func Populated(m Method) MethodRef {
	return MethodRef{id: m.ID, method: &m}
}

func (r MethodRef) ID() string {
	return r.id
}

func (r MethodRef) IsZero() bool {
	return r.id == "" && r.method == nil
}

func (r MethodRef) IsPopulated() bool {
	return r.method != nil
}

// Method returns the populated method, if any.
func (r MethodRef) Method() (Method, bool) {
	if r.method == nil {
		return Method{}, false
	}
	return *r.method, true
}

// Resolve returns the populated method or looks the id up.
func (r MethodRef) Resolve(lookup func(id string) (Method, bool)) (Method, bool) {
	if r.method != nil {
		return *r.method, true
	}
	if r.id == "" || lookup == nil {
		return Method{}, false
	}
	return lookup(r.id)
}

// Label is the display name when populated, the id otherwise.
func (r MethodRef) Label() string {
	if r.method != nil && r.method.Name != "" {
		return r.method.Name
	}
	return r.id
}

func (r MethodRef) MarshalJSON() ([]byte, error) {
	switch {
	case r.method != nil:
		return json.Marshal(r.method)
	case r.id != "":
		return json.Marshal(r.id)
	default:
		return []byte("null"), nil
	}
}

func (r *MethodRef) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*r = MethodRef{}
		return nil
	case data[0] == '"':
		var id string
		if err := json.Unmarshal(data, &id); err != nil {
			return err
		}
		*r = Ref(id)
		return nil
	case data[0] == '{':
		var m Method
		if err := json.Unmarshal(data, &m); err != nil {
			return err
		}
		*r = Populated(m)
		return nil
	default:
		return fmt.Errorf("method reference must be a string or an object, got %s", data)
	}
}

// Lookup builds a Resolve lookup over a method list, matching id or code.
func Lookup(methods []Method) func(string) (Method, bool) {
	return func(ref string) (Method, bool) {
		for _, m := range methods {
			if m.ID == ref || m.Code == ref {
				return m, true
			}
		}
		return Method{}, false
	}
}
