package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryAudio    Category = "Audio"
	CategoryWearable Category = "Wearable"
	CategoryMobile   Category = "Mobile"
	CategoryHome     Category = "Home"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryAudio, CategoryWearable, CategoryMobile, CategoryHome:
		return true
	}
	return false
}

// Mukhi is a face count ("5") or a free-form label ("1-14 Complex").
// Counts are written as JSON numbers, labels as strings.
type Mukhi string

func (m Mukhi) MarshalJSON() ([]byte, error) {
	if n, err := strconv.Atoi(string(m)); err == nil && n >= 0 && strconv.Itoa(n) == string(m) {
		return []byte(m), nil
	}
	return json.Marshal(string(m))
}

func (m *Mukhi) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case bytes.Equal(data, []byte("null")):
		*m = ""
	case len(data) > 0 && data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*m = Mukhi(s)
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("mukhi: %w", err)
		}
		*m = Mukhi(n.String())
	}
	return nil
}

type Review struct {
	ID       string `json:"id"`
	UserName string `json:"userName"`
	Rating   int    `json:"rating"`
	Comment  string `json:"comment"`
	Date     string `json:"date"`
}

type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Tagline         string          `json:"tagline"`
	Description     string          `json:"description"`
	LongDescription string          `json:"longDescription,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Category        Category        `json:"category"`
	ImageURL        string          `json:"imageUrl"`
	Gallery         []string        `json:"gallery,omitempty"`
	Features        []string        `json:"features"`
	Mukhi           Mukhi           `json:"mukhi,omitempty"`
	Origin          string          `json:"origin,omitempty"`
	Size            string          `json:"size,omitempty"`
	Vibration       string          `json:"vibration,omitempty"`
	Certification   string          `json:"certification,omitempty"`
	Stock           *int            `json:"stock,omitempty"`
	Reviews         []Review        `json:"reviews,omitempty"`
	Material        string          `json:"material,omitempty"`
	Weight          string          `json:"weight,omitempty"`
	PlanetaryRuler  string          `json:"planetaryRuler,omitempty"`
	SpecificMantra  string          `json:"specificMantra,omitempty"`
}

func (p *Product) Validate() error {
	switch {
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required", ErrInvalid)
	case p.Price.IsNegative():
		return fmt.Errorf("%w: price must not be negative", ErrInvalid)
	case !p.Category.Valid():
		return fmt.Errorf("%w: unknown category %q", ErrInvalid, p.Category)
	case p.Stock != nil && *p.Stock < 0:
		return fmt.Errorf("%w: stock must not be negative", ErrInvalid)
	}
	return nil
}

// Clone returns a deep copy; nothing is shared with p.
func (p Product) Clone() Product {
	out := p
	out.Gallery = cloneStrings(p.Gallery)
	out.Features = cloneStrings(p.Features)
	if p.Reviews != nil {
		out.Reviews = append([]Review(nil), p.Reviews...)
	}
	if p.Stock != nil {
		stock := *p.Stock
		out.Stock = &stock
	}
	return out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	return append(make([]string, 0, len(s)), s...)
}

func (r *Review) Validate() error {
	if r.Rating < 1 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 1 and 5", ErrInvalid)
	}
	if strings.TrimSpace(r.UserName) == "" {
		return fmt.Errorf("%w: reviewer name is required", ErrInvalid)
	}
	return nil
}

// IntPtr is a helper for the optional stock field.
func IntPtr(n int) *int { return &n }
