// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package namedetect

import "strings"

// NameEntity is one detected person name.
type NameEntity struct {
	FirstName  string  `json:"first_name" yaml:"first_name"`
	MiddleName *string `json:"middle_name" yaml:"middle_name"`
	LastName   *string `json:"last_name" yaml:"last_name"`
}

// FormatName splits an ordered name group into first, middle and last names.
// The first token is always the first name; the last token is the last name
// once there are two tokens; everything in between is the middle name.
func FormatName(tokens []string) (NameEntity, bool) {
	if len(tokens) == 0 || tokens[0] == "" {
		return NameEntity{}, false
	}

	entity := NameEntity{FirstName: tokens[0]}
	if len(tokens) >= 2 {
		last := tokens[len(tokens)-1]
		entity.LastName = &last
	}
	if len(tokens) >= 3 {
		middle := strings.Join(tokens[1:len(tokens)-1], " ")
		entity.MiddleName = &middle
	}
	return entity, true
}

// Tokens returns the name parts in order.
func (e NameEntity) Tokens() []string {
	parts := []string{e.FirstName}
	if e.MiddleName != nil {
		parts = append(parts, strings.Fields(*e.MiddleName)...)
	}
	if e.LastName != nil {
		parts = append(parts, *e.LastName)
	}
	return parts
}

// String joins the name parts with single spaces.
func (e NameEntity) String() string {
	return strings.Join(e.Tokens(), " ")
}
