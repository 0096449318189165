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
	"github.com/m3db/m3ninx/search"
	"github.com/m3db/m3ninx/search/query"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
)

func genWord() gopter.Gen {
	words := make([]interface{}, 0, len(vocabulary)+1)
	for _, w := range vocabulary {
		words = append(words, w)
	}
	// Never matches.
	words = append(words, "omega")
	return gen.OneConstOf(words...)
}

// GenFilter generates filters over the body field of the corpus.
func GenFilter() gopter.Gen {
	return gen.OneGenOf(
		genTermFilter(),
		genTermsFilter(),
		genPrefixFilter(),
		genWildcardFilter(),
		genPhraseFilter(),
	)
}

func genTermFilter() gopter.Gen {
	return genWord().Map(func(w string) search.Filter {
		return query.NewTermFilter(bodyField, []byte(w))
	})
}

func genTermsFilter() gopter.Gen {
	return gopter.CombineGens(genWord(), genWord()).Map(func(values []interface{}) search.Filter {
		return query.NewTermsFilter(bodyField, []byte(values[0].(string)), []byte(values[1].(string)))
	})
}

func genPrefixFilter() gopter.Gen {
	return gopter.CombineGens(genWord(), gen.IntRange(0, 3)).Map(func(values []interface{}) search.Filter {
		w, n := values[0].(string), values[1].(int)
		return query.NewPrefixFilter(bodyField, []byte(w[:n]))
	})
}

func genWildcardFilter() gopter.Gen {
	return gopter.CombineGens(genWord(), gen.IntRange(0, 2), gen.IntRange(0, 1)).Map(func(values []interface{}) search.Filter {
		var (
			w    = values[0].(string)
			at   = values[1].(int)
			meta = "_"
		)
		if values[2].(int) == 1 {
			meta = "%"
		}
		return query.NewWildcardFilter(bodyField, []byte(w[:at]+meta+w[at+1:]))
	})
}

func genPhraseFilter() gopter.Gen {
	part := gopter.CombineGens(genWord(), gen.IntRange(0, 4)).Map(func(values []interface{}) query.PhrasePart {
		w := values[0].(string)
		if values[1].(int) == 0 {
			return query.PrefixPart{Prefix: []byte(w[:2])}
		}
		return query.TermPart{Term: []byte(w)}
	})
	return gopter.CombineGens(part, part).Map(func(values []interface{}) search.Filter {
		f := query.NewPhraseFilter(bodyField)
		for _, v := range values {
			f.Push(v.(query.PhrasePart), 1)
		}
		return f
	})
}

// GenLayout generates the assignment of every corpus document to one of n
// segments.
func GenLayout(n int) gopter.Gen {
	return gen.SliceOfN(len(testCorpus.docs), gen.IntRange(0, n-1))
}
