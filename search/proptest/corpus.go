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

package proptest

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/m3db/m3ninx/doc"
)

const (
	bodyField = "body"
	corpusLen = 80
)

var vocabulary = []string{
	"alpha", "beta", "gamma", "delta", "epsilon",
	"zeta", "eta", "theta", "iota", "kappa",
}

// testCorpus is a deterministic set of documents over a small vocabulary so
// that generated filters match often.
var testCorpus = newCorpus(corpusLen, rand.New(rand.NewSource(1234)))

type corpus struct {
	docs   []doc.Document
	tokens [][]string
}

func newCorpus(n int, rng *rand.Rand) corpus {
	c := corpus{
		docs:   make([]doc.Document, 0, n),
		tokens: make([][]string, 0, n),
	}
	for i := 0; i < n; i++ {
		tokens := make([]string, 1+rng.Intn(8))
		for j := range tokens {
			tokens[j] = vocabulary[rng.Intn(len(vocabulary))]
		}
		c.tokens = append(c.tokens, tokens)
		c.docs = append(c.docs, doc.Document{
			ID: []byte(fmt.Sprintf("doc-%03d", i)),
			Fields: doc.Fields{
				{Name: []byte(bodyField), Value: []byte(strings.Join(tokens, " "))},
			},
		})
	}
	return c
}
