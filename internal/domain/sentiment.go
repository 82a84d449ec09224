package domain

import (
	"errors"
	"time"
)

// SentimentCard represents one sentiment reading relayed to the dashboard.
// The service treats the feed as opaque: no aggregation, no rescaling.
type SentimentCard struct {
	Value          int       `json:"value" bson:"value"`
	Classification string    `json:"classification" bson:"classification"`
	At             time.Time `json:"at" bson:"at"`
}

// Validate checks a card against the feed contract
func (c SentimentCard) Validate() error {
	if c.Value < 0 || c.Value > 100 {
		return ValidationError{Field: "value", Err: errors.New("sentiment value must be within [0, 100]")}
	}
	if c.Classification == "" {
		return ValidationError{Field: "classification", Err: errors.New("classification is required")}
	}
	return nil
}
