package enum

import (
	"database/sql/driver"
	"encoding/json"
)

// DraftStatus represents the state of a draft due accumulator
type DraftStatus int

const (
	DraftStatusDraft     DraftStatus = 0
	DraftStatusConverted DraftStatus = 1
)

func (s DraftStatus) String() string {
	return [...]string{"draft", "converted"}[s]
}

func (s DraftStatus) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

func (s *DraftStatus) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		var i int
		if err := json.Unmarshal(data, &i); err != nil {
			return err
		}
		*s = DraftStatus(i)
		return nil
	}
	switch str {
	case "draft":
		*s = DraftStatusDraft
	case "converted":
		*s = DraftStatusConverted
	}
	return nil
}

func (s DraftStatus) Value() (driver.Value, error) {
	return int64(s), nil
}

func (s *DraftStatus) Scan(value interface{}) error {
	if value == nil {
		*s = DraftStatusDraft
		return nil
	}
	switch v := value.(type) {
	case int64:
		*s = DraftStatus(v)
	case int:
		*s = DraftStatus(v)
	}
	return nil
}
