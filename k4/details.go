package k4

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
)

// PersonalDetails identifies the tax payer.
type PersonalDetails struct {
	Name           string `json:"namn"`
	PersonalNumber string `json:"personnummer"` // YYYYMMDD-NNNN
	PostalCode     string `json:"postnummer"`
	City           string `json:"postort"`
}

// Identity returns the personal number without separator.
func (p PersonalDetails) Identity() string { return strings.ReplaceAll(p.PersonalNumber, "-", "") }

// DecodePersonalDetails reads personal details from JSON.
func DecodePersonalDetails(r io.Reader) (PersonalDetails, error) {
	var p PersonalDetails
	if err := decodeJSON(r, &p); err != nil {
		return p, fmt.Errorf("cannot decode personal details: %w", err)
	}
	var missing []string
	for field, v := range map[string]string{"namn": p.Name, "personnummer": p.PersonalNumber, "postnummer": p.PostalCode, "postort": p.City} {
		if v == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return p, fmt.Errorf("missing personal details %q", missing)
	}
	return p, nil
}

// decodeJSON decodes r into v, ignoring a leading byte order mark.
func decodeJSON(r io.Reader, v any) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))
	return json.Unmarshal(data, v)
}
