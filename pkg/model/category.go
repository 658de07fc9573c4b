// Copyright 2020 The Moov Authors
// Use of this source code is governed by an Apache License
// license that can be found in the LICENSE file.

package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Category is the kind of energy an Account is billed for.
type Category string

const (
	Electricity Category = "ELECTRICITY"
	Gas         Category = "GAS"

	// AllCategories is a filter value matching every Account. It is never
	// a valid Category for an Account itself.
	AllCategories Category = "ALL"
)

func (c Category) Validate() error {
	switch c {
	case Electricity, Gas:
		return nil
	}
	return fmt.Errorf("unknown account category %q", string(c))
}

func (c *Category) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	cat := Category(strings.ToUpper(strings.TrimSpace(s)))
	if err := cat.Validate(); err != nil {
		return err
	}
	*c = cat
	return nil
}

// ParseCategoryFilter reads a filter value which is either ALL or a Category.
// An empty value means ALL.
func ParseCategoryFilter(in string) (Category, error) {
	cat := Category(strings.ToUpper(strings.TrimSpace(in)))
	if cat == "" || cat == AllCategories {
		return AllCategories, nil
	}
	if err := cat.Validate(); err != nil {
		return "", err
	}
	return cat, nil
}
