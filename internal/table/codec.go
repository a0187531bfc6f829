package table

import (
	"encoding/json"
	"fmt"
	"github.com/litetable/litetable-sheet/internal/litetable"
)

// wireUpdate is the encoded form of an Update: a version plus exactly one operation field.
type wireUpdate struct {
	Timestamp     litetable.Version `json:"timestamp"`
	UpsertColumns *UpsertColumns    `json:"upsertColumns,omitempty"`
	UpsertRows    *UpsertRows       `json:"upsertRows,omitempty"`
	DeleteRows    *DeleteRows       `json:"deleteRows,omitempty"`
	DeleteColumns *DeleteColumns    `json:"deleteColumns,omitempty"`
}

// MarshalJSON encodes the update as {"timestamp": {...}, "<operation>": {...}}.
func (u Update) MarshalJSON() ([]byte, error) {
	w := wireUpdate{Timestamp: u.Version}
	switch op := u.Op.(type) {
	case UpsertColumns:
		w.UpsertColumns = &op
	case UpsertRows:
		w.UpsertRows = &op
	case DeleteRows:
		w.DeleteRows = &op
	case DeleteColumns:
		w.DeleteColumns = &op
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnknownOperation, u.Op)
	}
	return json.Marshal(w)
}

// UnmarshalJSON decodes an update. Unknown operation fields and updates carrying zero or
// several operations are rejected here, so Apply only ever sees well-formed records.
func (u *Update) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("invalid update: %w", err)
	}

	var decoded Update
	raw, ok := fields["timestamp"]
	if !ok {
		return fmt.Errorf("invalid update: missing timestamp")
	}
	if err := json.Unmarshal(raw, &decoded.Version); err != nil {
		return fmt.Errorf("invalid update timestamp: %w", err)
	}

	for name, raw := range fields {
		if name == "timestamp" {
			continue
		}
		if decoded.Op != nil {
			return ErrAmbiguousOperation
		}

		op, err := decodeOperation(name, raw)
		if err != nil {
			return err
		}
		decoded.Op = op
	}

	if decoded.Op == nil {
		return fmt.Errorf("%w: update has no operation", ErrUnknownOperation)
	}

	*u = decoded
	return nil
}

func decodeOperation(name string, raw json.RawMessage) (Operation, error) {
	var (
		op  Operation
		err error
	)
	switch litetable.Decode(name) {
	case litetable.OperationUpsertColumns:
		var v UpsertColumns
		err = json.Unmarshal(raw, &v)
		op = v
	case litetable.OperationUpsertRows:
		var v UpsertRows
		err = json.Unmarshal(raw, &v)
		op = v
	case litetable.OperationDeleteRows:
		var v DeleteRows
		err = json.Unmarshal(raw, &v)
		op = v
	case litetable.OperationDeleteColumns:
		var v DeleteColumns
		err = json.Unmarshal(raw, &v)
		op = v
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, name)
	}

	if err != nil {
		return nil, fmt.Errorf("invalid %s payload: %w", name, err)
	}
	return op, nil
}
