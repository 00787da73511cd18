package domain

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrUnknownCategory is returned when a label does not name one of the seven
// storm categories.
var ErrUnknownCategory = errors.New("unknown storm category")

// Category is a storm intensity class. Values are ordered by severity so they
// can be compared directly: TD < TS < Cat1 < ... < Cat5.
type Category int

const (
	TD Category = iota // tropical depression
	TS                 // tropical storm
	Cat1
	Cat2
	Cat3
	Cat4
	Cat5
)

// CategoryCount is the number of known categories.
const CategoryCount = 7

var categoryLabels = [CategoryCount]string{"TD", "TS", "Cat1", "Cat2", "Cat3", "Cat4", "Cat5"}

// Categories returns all categories in severity order.
func Categories() []Category {
	return []Category{TD, TS, Cat1, Cat2, Cat3, Cat4, Cat5}
}

// Valid reports whether c is one of the seven known categories.
func (c Category) Valid() bool {
	return c >= TD && c <= Cat5
}

func (c Category) String() string {
	if !c.Valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categoryLabels[c]
}

// IsMajor reports whether the category counts as a major hurricane (Cat3 and above).
func (c Category) IsMajor() bool {
	return c >= Cat3
}

// ParseCategory resolves a label such as "TS" or "Cat4".
func ParseCategory(label string) (Category, error) {
	for i, l := range categoryLabels {
		if l == label {
			return Category(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, label)
}

func (c Category) MarshalJSON() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, int(c))
	}
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("decode category: %w", err)
	}
	parsed, err := ParseCategory(label)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CategorizeWind maps a maximum sustained wind speed in knots to a category
// using the Saffir-Simpson thresholds:
//   - <34 kt tropical depression, <64 kt tropical storm
//   - <83 Cat1, <96 Cat2, <113 Cat3, <137 Cat4, else Cat5
func CategorizeWind(knots int) Category {
	switch {
	case knots < 34:
		return TD
	case knots < 64:
		return TS
	case knots < 83:
		return Cat1
	case knots < 96:
		return Cat2
	case knots < 113:
		return Cat3
	case knots < 137:
		return Cat4
	default:
		return Cat5
	}
}
