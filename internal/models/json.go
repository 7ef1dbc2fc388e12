package models

import (
	"database/sql/driver"
	"encoding/json"
)

// JSON 任意構造の付帯情報を格納する型
type JSON map[string]interface{}

// Value driver.Valuer 実装
func (j JSON) Value() (driver.Value, error) {
	if j == nil {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan sql.Scanner 実装
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = make(JSON)
		return nil
	}
	bytes, ok := value.([]byte)
	if !ok {
		return nil
	}
	return json.Unmarshal(bytes, j)
}
