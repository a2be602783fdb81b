package mymemory

import (
	"encoding/json"
	"fmt"
)

// TranslationResult is the translation picked by the API
type TranslationResult struct {
	Text  string  `json:"translatedText"`
	Match float64 `json:"match"`
}

// TranslationMatch is a translation memory entry the result was picked from
type TranslationMatch struct {
	ID          string  `json:"id"`
	Segment     string  `json:"segment"`
	Translation string  `json:"translation"`
	Source      string  `json:"source"`
	Target      string  `json:"target"`
	Quality     string  `json:"quality"`
	Reference   *string `json:"reference"`
	UsageCount  int     `json:"usage-count"`
	Subject     string  `json:"subject"`
	Match       float64 `json:"match"`
}

// TranslationResponse is the body of /get.
// Quota and language pair errors come with 200 OK, ResponseStatus holds the real status
// as a number or a quoted number.
type TranslationResponse struct {
	Result          TranslationResult  `json:"responseData"`
	Matches         []TranslationMatch `json:"matches"`
	QuotaFinished   bool               `json:"quotaFinished"`
	ResponseDetails string             `json:"responseDetails"`
	ResponseStatus  json.Number        `json:"responseStatus"`
	ResponderID     string             `json:"responderId"`
	ExceptionCode   *string            `json:"exception_code"`
}

// statusError returns the error reported in the body, if any
func (r TranslationResponse) statusError() error {
	switch {
	case r.QuotaFinished:
		return ErrQuotaFinished
	case r.ResponseStatus != "" && r.ResponseStatus != "200":
		return fmt.Errorf("%w: %s %s", ErrUnsuccessful, r.ResponseStatus, r.ResponseDetails)
	}
	return nil
}
