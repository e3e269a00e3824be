// Package formschema checks the JSON blob sent as the formData field of a
// new listing and decodes it.
package formschema

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"dreamhome/internal/domain"
)

//go:embed property_form.json
var propertyFormSchema []byte

var compiled = mustCompile()

func mustCompile() *jsonschema.Schema {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft7
	if err := c.AddResource("property_form.json", bytes.NewReader(propertyFormSchema)); err != nil {
		panic(fmt.Sprintf("add property form schema: %v", err))
	}
	return c.MustCompile("property_form.json")
}

// PropertyForm is the decoded create-listing payload. Numbers inside the
// free-form maps are kept as their source text.
type PropertyForm struct {
	PersonalDetails  map[string]any  `json:"personalDetails"`
	PropertyDetails  PropertyDetails `json:"propertyDetails"`
	PropertyFeatures map[string]any  `json:"propertyFeatures"`
	LocationDetails  LocationDetails `json:"locationDetails"`
}

type PropertyDetails struct {
	Title              string          `json:"title"`
	PropertyType       string          `json:"propertyType"`
	Price              json.RawMessage `json:"price"`
	Negotiable         *string         `json:"negotiable"`
	Description        *string         `json:"description"`
	AvailabilityStatus *string         `json:"availabilityStatus"`
	PropertyStatus     *string         `json:"propertyStatus"`
}

type LocationDetails struct {
	State     *string         `json:"state"`
	City      *string         `json:"city"`
	Locality  *string         `json:"locality"`
	Address   *string         `json:"address"`
	PinCode   json.RawMessage `json:"pinCode"`
	Landmarks *string         `json:"landmarks"`
}

// Location flattens the optional fields into the stored address shape.
func (l LocationDetails) Location() domain.Location {
	s := func(p *string) string {
		if p == nil {
			return ""
		}
		return strings.TrimSpace(*p)
	}
	return domain.Location{
		State:     s(l.State),
		City:      s(l.City),
		Locality:  s(l.Locality),
		Address:   s(l.Address),
		PinCode:   rawText(l.PinCode),
		Landmarks: s(l.Landmarks),
	}
}

// PriceText returns the submitted price as text, whether it was sent as a
// JSON string or number.
func (d PropertyDetails) PriceText() string { return rawText(d.Price) }

func rawText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}
	if t := strings.TrimSpace(string(raw)); t != "null" {
		return t
	}
	return ""
}

// ParseProperty validates raw against the form schema and decodes it.
// Problems come back as *domain.ValidationError.
func ParseProperty(raw []byte) (PropertyForm, error) {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return PropertyForm{}, domain.Invalid("formData", "Invalid form data JSON")
	}
	if err := compiled.Validate(doc); err != nil {
		return PropertyForm{}, domain.Invalid("formData", describe(err))
	}

	var form PropertyForm
	dec = json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	if err := dec.Decode(&form); err != nil {
		return PropertyForm{}, domain.Invalid("formData", "Invalid form data JSON")
	}
	form.PropertyFeatures = plain(form.PropertyFeatures)
	form.PersonalDetails = plain(form.PersonalDetails)
	return form, nil
}

// describe reduces a schema failure to its first leaf message.
func describe(err error) string {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return "Invalid form data"
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	loc := strings.TrimPrefix(ve.InstanceLocation, "/")
	if loc == "" {
		return ve.Message
	}
	return strings.ReplaceAll(loc, "/", ".") + ": " + ve.Message
}

// plain turns json.Number values into strings so stored maps only carry
// JSON-native types.
func plain(m map[string]any) map[string]any {
	if m == nil {
		return map[string]any{}
	}
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = plainValue(v)
	}
	return out
}

func plainValue(v any) any {
	switch t := v.(type) {
	case json.Number:
		return t.String()
	case map[string]any:
		return plain(t)
	case []any:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	}
	return v
}
