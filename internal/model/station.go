package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// StationCount is the fixed number of processing stations on a user record.
const StationCount = 6

// StatusInactive is the status of a station that has never been touched.
const StatusInactive = "inactive"

// StationValue is the status label and last-modified timestamp of one
// station on one user record. LastModified stays nil until the station is
// explicitly transitioned for the first time.
type StationValue struct {
	Status       string     `json:"status"`
	LastModified *time.Time `json:"lastModified"`
}

// DefaultStationValue returns an untouched station.
func DefaultStationValue() StationValue {
	return StationValue{Status: StatusInactive}
}

// UnmarshalJSON accepts both the structured form and the legacy flat-string
// form ("Scanned") written by earlier schema versions.
func (v *StationValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = DefaultStationValue()
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		// Legacy records hold only the bare status string; the modification
		// time was never recorded for them.
		*v = StationValue{Status: s}
		if v.Status == "" {
			v.Status = StatusInactive
		}
		return nil
	}

	type plain StationValue
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*v = StationValue(p)
	if v.Status == "" {
		v.Status = StatusInactive
	}
	return nil
}

// StationList holds the six station values of a user record. Index 0 is
// station1, index 5 is station6.
type StationList [StationCount]StationValue

// DefaultStations returns a list with every station untouched.
func DefaultStations() StationList {
	var l StationList
	for i := range l {
		l[i] = DefaultStationValue()
	}
	return l
}

func stationKey(i int) string {
	return fmt.Sprintf("station%d", i+1)
}

// MarshalJSON renders the list in the keyed document form
// {"station1": {...}, ..., "station6": {...}}.
func (l StationList) MarshalJSON() ([]byte, error) {
	m := make(map[string]StationValue, StationCount)
	for i, v := range l {
		if v.Status == "" {
			v.Status = StatusInactive
		}
		m[stationKey(i)] = v
	}
	return json.Marshal(m)
}

// UnmarshalJSON decodes the keyed document form. Missing or partially
// populated stations are padded to the full default shape, and each member
// may be a legacy flat string.
func (l *StationList) UnmarshalJSON(data []byte) error {
	*l = DefaultStations()

	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	var m map[string]json.RawMessage
	if err := json.Unmarshal(data, &m); err != nil {
		return err
	}

	for i := 0; i < StationCount; i++ {
		raw, ok := m[stationKey(i)]
		if !ok {
			continue
		}
		var v StationValue
		if err := json.Unmarshal(raw, &v); err != nil {
			return fmt.Errorf("decode %s: %w", stationKey(i), err)
		}
		l[i] = v
	}
	return nil
}
