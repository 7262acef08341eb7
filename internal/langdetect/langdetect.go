// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package langdetect picks the detection language for a text from its
// dominant writing system.
package langdetect

import (
	"unicode"

	"github.com/abadojack/whatlanggo"
)

// Supported language codes.
const (
	English = "en"
	Hindi   = "hi"
)

// Detector reports which supported language a text should be processed as.
type Detector interface {
	Detect(text string) string
}

// ScriptDetector routes Devanagari-dominant text to Hindi and everything else
// to English.
type ScriptDetector struct{}

// NewScriptDetector returns a whatlanggo-backed script detector.
func NewScriptDetector() *ScriptDetector {
	return &ScriptDetector{}
}

// Detect implements Detector.
func (d *ScriptDetector) Detect(text string) string {
	if text == "" {
		return English
	}
	info := whatlanggo.Detect(text)
	if info.Script == unicode.Devanagari || info.Lang == whatlanggo.Hin {
		return Hindi
	}
	return English
}

// ScriptName returns the whatlanggo name of the dominant script, or "" when
// none is recognised.
func ScriptName(text string) string {
	info := whatlanggo.Detect(text)
	if info.Script == nil {
		return ""
	}
	return whatlanggo.Scripts[info.Script]
}

// Func adapts a function to the Detector interface.
type Func func(text string) string

// Detect implements Detector.
func (f Func) Detect(text string) string {
	return f(text)
}
