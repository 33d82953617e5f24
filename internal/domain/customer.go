package domain

import (
	"encoding/json"
	"maps"
)

// CustomerType classifies a customer by subscription status.
type CustomerType string

const (
	CustomerTypeNormal     CustomerType = "Normal Customer"
	CustomerTypeSubscriber CustomerType = "Subscriber"
)

// Magazine is the subscription embedded in a subscriber record. Keys other
// than the three named ones are kept in Extra and written back as received.
type Magazine struct {
	MagazineName          string                     `json:"magazineName"`
	SubscriptionStartDate string                     `json:"subscriptionStartDate"`
	ExpiryDate            string                     `json:"expiryDate,omitempty"`
	Extra                 map[string]json.RawMessage `json:"-"`
}

type magazineJSON Magazine

func (m *Magazine) UnmarshalJSON(data []byte) error {
	var known magazineJSON
	if err := json.Unmarshal(data, &known); err != nil {
		return err
	}
	extra, err := splitKeys(data, "magazineName", "subscriptionStartDate", "expiryDate")
	if err != nil {
		return err
	}
	*m = Magazine(known)
	m.Extra = extra
	return nil
}

func (m Magazine) MarshalJSON() ([]byte, error) {
	encoded, err := json.Marshal(magazineJSON(m))
	if err != nil {
		return nil, err
	}
	return mergeKeys(encoded, m.Extra)
}

// Clone returns a copy that does not share Extra.
func (m Magazine) Clone() Magazine {
	m.Extra = maps.Clone(m.Extra)
	return m
}

// Customer is one element of the customers document.
// Magazine is nil exactly when Type is CustomerTypeNormal.
type Customer struct {
	ID       int          `json:"id"`
	Name     string       `json:"name"`
	Email    string       `json:"email"`
	Phone    string       `json:"phone"`
	Magazine *Magazine    `json:"magazine"`
	Type     CustomerType `json:"type"`
}

// HasSubscription reports whether the customer carries a magazine with a start date.
func (c Customer) HasSubscription() bool {
	return c.Magazine != nil && c.Magazine.SubscriptionStartDate != ""
}

// Clone returns a copy that does not share the embedded magazine.
func (c Customer) Clone() Customer {
	out := c
	if c.Magazine != nil {
		m := c.Magazine.Clone()
		out.Magazine = &m
	}
	return out
}
