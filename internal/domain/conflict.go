package domain

// FieldValue pairs a unique field's wire name with its value on a record.
type FieldValue struct {
	Name  string // Field name as it appears in API responses
	Value string // Value on the record, empty means not set
}

// ConflictChecked is implemented by records that carry unique columns. The
// returned slice enumerates those columns in a fixed order, which is also the
// order conflicting field names are reported in.
type ConflictChecked interface {
	UniqueFieldValues() []FieldValue
}

// UniqueFieldValues enumerates the four globally unique user columns.
func (u User) UniqueFieldValues() []FieldValue {
	return []FieldValue{
		{Name: "userId", Value: u.UserID},
		{Name: "username", Value: u.Username},
		{Name: "email", Value: u.Email},
		{Name: "mobile", Value: u.Mobile},
	}
}

// UniqueFieldValues enumerates the single unique item column.
func (i Item) UniqueFieldValues() []FieldValue {
	return []FieldValue{
		{Name: "item_name", Value: i.ItemName},
	}
}

// DuplicateFields reports which of the candidate's unique fields collide with
// any of the existing records. The existing rows come from an OR-query across
// the same fields, so a returned row may collide on only some of them; each
// field is checked individually rather than treating any hit as a full
// duplicate. Empty candidate values never collide. The result is deduplicated
// and ordered by the candidate's field enumeration; an empty result means the
// write may proceed (the store's unique indexes remain the race guard).
func DuplicateFields[T ConflictChecked](candidate T, existing []T) []string {
	var dupes []string
	for _, f := range candidate.UniqueFieldValues() {
		if f.Value == "" {
			continue
		}
		for _, row := range existing {
			if rowHasFieldValue(row, f) {
				dupes = append(dupes, f.Name)
				break
			}
		}
	}
	return dupes
}

func rowHasFieldValue(row ConflictChecked, want FieldValue) bool {
	for _, f := range row.UniqueFieldValues() {
		if f.Name == want.Name && f.Value != "" && f.Value == want.Value {
			return true
		}
	}
	return false
}
