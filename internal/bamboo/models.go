package bamboo

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Wire types for the provider's JSON bodies. The API is not consistent about
// id encoding: the directory sends ids as JSON strings while the time-off
// endpoints send numbers. flexID accepts both (and null), decoding to 0 when
// no id can be resolved so callers can drop the record.
type flexID int64

func (f *flexID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		*f = 0
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			*f = 0
			return nil
		}
		*f = flexID(n)
		return nil
	}
	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexID(n)
	return nil
}

type directoryResponse struct {
	Employees []directoryEmployee `json:"employees"`
}

type directoryEmployee struct {
	ID          flexID `json:"id"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	JobTitle    string `json:"jobTitle"`
	MobilePhone string `json:"mobilePhone"`
	PhotoURL    string `json:"photoUrl"`
}

type timeOffRequest struct {
	ID         flexID        `json:"id"`
	EmployeeID flexID        `json:"employeeId"`
	Status     timeOffStatus `json:"status"`
	Type       string        `json:"type"`
	Start      string        `json:"start"`
	End        string        `json:"end"`
}

// timeOffStatus flattens the provider's nested status object.
type timeOffStatus struct {
	ID string `json:"id"`
}

type whosOutEntry struct {
	EmployeeID flexID `json:"employeeId"`
	Type       string `json:"type"`
	Start      string `json:"start"`
	End        string `json:"end"`
}
