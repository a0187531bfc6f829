package litetable

// Decode maps a wire field name onto its operation. Names are case-sensitive; anything
// unrecognised decodes to OperationUnknown.
func Decode(name string) Operation {
	if len(name) < 10 { // shortest name is "deleteRows"
		return OperationUnknown
	}

	switch name[0] {
	case 'u':
		switch name {
		case "upsertColumns":
			return OperationUpsertColumns
		case "upsertRows":
			return OperationUpsertRows
		}
	case 'd':
		switch name {
		case "deleteRows":
			return OperationDeleteRows
		case "deleteColumns":
			return OperationDeleteColumns
		}
	}

	return OperationUnknown
}
