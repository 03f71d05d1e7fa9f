package model

import "github.com/google/uuid"

// IsUUID reports whether id is a UUID in the canonical dashed 36-character
// form. URN, braced and bare-hex forms are rejected.
func IsUUID(id string) bool {
	return len(id) == 36 && uuid.Validate(id) == nil
}
