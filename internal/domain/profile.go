package domain

import "encoding/json"

// Profile is the single operator profile. Only the first element of the
// profile document is ever read or written, and only Username is
// interpreted. Every other stored key (name, email, phone, anything else)
// rides along in Fields untouched.
type Profile struct {
	Username string
	Fields   map[string]json.RawMessage
}

type profileJSON struct {
	Username string `json:"username"`
}

func (p *Profile) UnmarshalJSON(data []byte) error {
	var known profileJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	rest, err := splitKeys(data, "username")
	if err != nil {
		return err
	}
	*p = Profile{Username: known.Username, Fields: rest}
	return nil
}

func (p Profile) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(profileJSON{Username: p.Username})
	if err != nil {
		return nil, err
	}
	return mergeKeys(encoded, p.Fields)
}
