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

package config

import (
	"os"
	"testing"
	"time"

	"github.com/m3db/m3ninx/index"
	"github.com/m3db/m3ninx/search/query"
	xconfig "github.com/m3db/m3ninx/x/config"
	"github.com/m3db/m3ninx/x/instrument"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

const testConfig = `
logging:
  level: warn
metrics:
  prefix: m3ninx
  sampleRate: 0.5
builder:
  concurrency: 2
  keywordFields: [id]
query:
  selector: field_size
  scoredTermsLimit: 16
scorer:
  type: bm25
  k1: 1.5
executor:
  concurrency: 3
  limit: 10
  preparedCacheSize: 128
  slowQueryThreshold: 250ms
`

func loadConfig(t *testing.T, contents string) (Configuration, error) {
	f, err := os.CreateTemp(t.TempDir(), "config*.yaml")
	require.NoError(t, err)
	_, err = f.WriteString(contents)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	var cfg Configuration
	err = xconfig.LoadFile(&cfg, f.Name(), xconfig.Options{})
	return cfg, err
}

func TestConfigurationLoad(t *testing.T) {
	cfg, err := loadConfig(t, testConfig)
	require.NoError(t, err)

	require.Equal(t, "warn", cfg.Logging.Level)
	require.Equal(t, "m3ninx", cfg.Metrics.Prefix)
	require.Equal(t, query.SelectByFieldSize, cfg.Query.SelectorOrDefault())
	require.Equal(t, 16, cfg.Query.ScoredTermsLimitOrDefault())
	require.Equal(t, BM25Scorer, cfg.Scorer.Type)
	require.Equal(t, 1.5, *cfg.Scorer.K1)
	require.Nil(t, cfg.Scorer.B)
	require.Equal(t, 250*time.Millisecond, cfg.Executor.SlowQueryThreshold)
}

func TestConfigurationDefaults(t *testing.T) {
	cfg, err := loadConfig(t, "logging:\n  level: info\n")
	require.NoError(t, err)

	require.Equal(t, query.SelectByPostingsLength, cfg.Query.SelectorOrDefault())
	require.Equal(t, query.DefaultScoredTermsLimit, cfg.Query.ScoredTermsLimitOrDefault())

	order, err := cfg.Scorer.NewOrder()
	require.NoError(t, err)
	require.False(t, order.Empty())
	require.Equal(t, instrument.TimerOptions{SampleRate: 1}, cfg.Metrics.TimerOptions())
}

func TestConfigurationValidation(t *testing.T) {
	tests := []struct {
		name   string
		config string
	}{
		{name: "negative limit", config: "executor:\n  limit: -1\n"},
		{name: "unknown scorer", config: "scorer:\n  type: cosine\n"},
		{name: "unknown selector", config: "query:\n  selector: random\n"},
		{name: "sample rate", config: "metrics:\n  sampleRate: 2\n"},
		{name: "unknown key", config: "executor:\n  workers: 2\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := loadConfig(t, test.config)
			require.Error(t, err)
		})
	}
}

func TestScorerConfigurationNewOrder(t *testing.T) {
	negative := -1.0
	tests := []struct {
		name    string
		config  ScorerConfiguration
		empty   bool
		wantErr bool
	}{
		{name: "default", config: ScorerConfiguration{}},
		{name: "none", config: ScorerConfiguration{Type: NoScorer}, empty: true},
		{name: "tfidf", config: ScorerConfiguration{Type: TFIDFScorer, Norms: true}},
		{name: "invalid b", config: ScorerConfiguration{Type: BM25Scorer, B: &negative}, wantErr: true},
		{name: "unknown", config: ScorerConfiguration{Type: "cosine"}, wantErr: true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			order, err := test.config.NewOrder()
			if test.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, test.empty, order.Empty())
		})
	}
}

func TestConfigurationNewComponents(t *testing.T) {
	cfg, err := loadConfig(t, testConfig)
	require.NoError(t, err)

	components, err := cfg.NewComponents()
	require.NoError(t, err)
	defer func() {
		require.NoError(t, components.Close())
	}()

	logger := components.InstrumentOptions.Logger()
	require.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	require.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	require.Equal(t, 0.5, components.InstrumentOptions.TimerOptions().SampleRate)

	execOpts := components.ExecutorOptions
	require.Equal(t, 3, execOpts.Concurrency())
	require.Equal(t, 10, execOpts.Limit())
	require.NotNil(t, execOpts.PreparedCache())
	require.Equal(t, 250*time.Millisecond, execOpts.SlowQueryThreshold())
	require.False(t, execOpts.Order().Empty())

	builderOpts := components.BuilderOptions
	require.Equal(t, 2, builderOpts.Concurrency())
	require.Contains(t, builderOpts.FieldAnalyzers(), "id")
	require.Equal(t, index.AllFeatures, builderOpts.Features())
}

func TestConfigurationInvalidLogLevel(t *testing.T) {
	cfg := Configuration{Logging: LoggingConfiguration{Level: "loud"}}
	_, err := cfg.NewComponents()
	require.Error(t, err)
}

func TestBuilderConfigurationDisablePositions(t *testing.T) {
	opts := BuilderConfiguration{DisablePositions: true}.NewOptions(instrument.NewOptions())
	require.Equal(t, index.FeatureFrequency, opts.Features())
}
