// Copyright (c) 2018 Uber Technologies, Inc.
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
// THE SOFTWARE.

package builder

import (
	"unicode"
	"unicode/utf8"
)

// Token is a term emitted by an Analyzer with its position in the value.
type Token struct {
	Term     []byte
	Position uint32
}

// Analyzer splits a field value into tokens.
type Analyzer interface {
	Analyze(value []byte) []Token
}

type standardAnalyzer struct{}

// NewStandardAnalyzer returns an analyzer that lower cases the value and
// splits it on every rune that is neither a letter nor a digit. Positions
// increase by one per emitted token.
func NewStandardAnalyzer() Analyzer {
	return standardAnalyzer{}
}

func (standardAnalyzer) Analyze(value []byte) []Token {
	var (
		tokens []Token
		curr   []byte
		pos    uint32
	)
	flush := func() {
		if len(curr) == 0 {
			return
		}
		tokens = append(tokens, Token{Term: curr, Position: pos})
		pos++
		curr = nil
	}
	for len(value) > 0 {
		r, size := utf8.DecodeRune(value)
		value = value[size:]
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		curr = utf8.AppendRune(curr, unicode.ToLower(r))
	}
	flush()
	return tokens
}

type keywordAnalyzer struct{}

// NewKeywordAnalyzer returns an analyzer that emits the whole value as a
// single token.
func NewKeywordAnalyzer() Analyzer {
	return keywordAnalyzer{}
}

func (keywordAnalyzer) Analyze(value []byte) []Token {
	if len(value) == 0 {
		return nil
	}
	return []Token{{Term: append([]byte(nil), value...), Position: 0}}
}
