package dto

import (
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a snowflake id in a request body. Clients may send it as a JSON
// string ("123") or, when it fits their number type, as a JSON number.
type ID int64

func (id *ID) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
	}
	n, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid id %q", raw)
	}
	*id = ID(n)
	return nil
}

func (id ID) Int64() int64 {
	return int64(id)
}
