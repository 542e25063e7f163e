// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Issue is one digest issue: the sectioned selections plus everything
// that ranked but did not make a section. The Human's Pick slot is not
// modeled; rendering emits a placeholder for the editor to fill in by
// hand.
type Issue struct {
	// Number is the issue number, assigned by the editor.
	Number int `json:"issue" yaml:"issue"`

	// Date is the issue month (e.g. "August 2025").
	Date string `json:"date" yaml:"date"`

	// Editorial is the generated editor's note. May be empty.
	Editorial string `json:"editorial,omitempty" yaml:"editorial,omitempty"`

	// Sections holds the capped selections.
	Sections Sections `json:"sections" yaml:"sections"`

	// Rest lists ranked records that did not make any section.
	Rest []Record `json:"rest,omitempty" yaml:"rest,omitempty"`
}
