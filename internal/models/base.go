// internal/models/base.go
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"slices"
)

// UserIDs is a JSONB column holding a set of user ids (match admins, scorers,
// viewers).
type UserIDs []uint

func (u UserIDs) Value() (driver.Value, error) {
	if u == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(u)
}

// Scan unmarshals a JSONB column into the slice.
func (u *UserIDs) Scan(src interface{}) error {
	var b []byte
	switch v := src.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	case nil:
		*u = nil
		return nil
	default:
		return fmt.Errorf("UserIDs: expected []byte, got %T", src)
	}
	return json.Unmarshal(b, u)
}

// Contains reports whether id is in the set.
func (u UserIDs) Contains(id uint) bool {
	return slices.Contains(u, id)
}

// Normalize drops zero ids and duplicates, keeping first-seen order.
func (u UserIDs) Normalize() UserIDs {
	out := make(UserIDs, 0, len(u))
	for _, id := range u {
		if id != 0 && !out.Contains(id) {
			out = append(out, id)
		}
	}
	return out
}
