package patch

import "encoding/json"

// Field distinguishes "absent from the request" from "present, possibly
// zero". Absent fields are skipped when merging onto a loaded entity, so
// partial updates happen in a single explicit write instead of SQL COALESCE.
type Field[T any] struct {
	Value T
	Set   bool
}

func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if err := json.Unmarshal(data, &f.Value); err != nil {
		return err
	}
	f.Set = true
	return nil
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.Set {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}

// Apply overwrites dst when the field was present in the request.
func (f Field[T]) Apply(dst *T) {
	if f.Set {
		*dst = f.Value
	}
}
