package monitor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	entropic "github.com/BTBurke/entropic"
	"github.com/stretchr/testify/assert"
)

func TestNewConfigDefaults(t *testing.T) {
	c, errs := newConfig(ID("hwrng-01"), AssertedEntropy("3.0"))
	assert.Empty(t, errs)
	assert.Equal(t, "hwrng-01", c.ID)
	assert.Equal(t, 3.0, c.AssertedEntropy)
	assert.Equal(t, "/dev/hwrng", c.Source)
	assert.Equal(t, 0, c.WordSize)
	assert.Equal(t, entropic.NonIID, c.TestType)
	assert.Equal(t, entropic.MinRecommendedSamples, c.AssessmentWindow)
	assert.Equal(t, 1*time.Hour, c.ReportInterval)
	assert.True(t, c.useTLS)
}

func TestNewConfigRequired(t *testing.T) {
	tt := []struct {
		name string
		opts []ConfigOption
	}{
		{name: "missing id", opts: []ConfigOption{AssertedEntropy("3.0")}},
		{name: "missing entropy", opts: []ConfigOption{ID("hwrng-01")}},
		{name: "negative entropy", opts: []ConfigOption{ID("hwrng-01"), AssertedEntropy("-1")}},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := newConfig(tc.opts...)
			assert.NotEmpty(t, errs)
		})
	}
}

func TestConfigOptions(t *testing.T) {
	c, errs := newConfig(
		ID("hwrng-01"),
		AssertedEntropy("1.0"),
		Source("/dev/urandom"),
		WordSize("4"),
		APTCutoff("600"),
		AssessmentWindow("100000"),
		IID(),
		Conditioned(),
		ReportInterval("30m"),
		Host("collector.internal"),
		Port("9999"),
		NoTLS(),
	)
	assert.Empty(t, errs)
	assert.Equal(t, "/dev/urandom", c.Source)
	assert.Equal(t, 4, c.WordSize)
	assert.Equal(t, 600, c.APTCutoff)
	assert.Equal(t, 100000, c.AssessmentWindow)
	assert.Equal(t, entropic.IID, c.TestType)
	assert.True(t, c.Conditioned)
	assert.Equal(t, 30*time.Minute, c.ReportInterval)
	assert.Equal(t, "collector.internal", c.host)
	assert.Equal(t, "9999", c.port)
	assert.False(t, c.useTLS)
}

func TestConfigOptionErrors(t *testing.T) {
	tt := []struct {
		name string
		opt  ConfigOption
	}{
		{name: "bad word size", opt: WordSize("nine")},
		{name: "word size out of range", opt: WordSize("9")},
		{name: "bad entropy", opt: AssertedEntropy("lots")},
		{name: "bad window", opt: AssessmentWindow("-5")},
		{name: "bad interval", opt: ReportInterval("tomorrow")},
		{name: "empty source", opt: Source("")},
		{name: "bad cutoff", opt: APTCutoff("many")},
	}
	for _, tc := range tt {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := newConfig(ID("hwrng-01"), AssertedEntropy("3.0"), tc.opt)
			assert.NotEmpty(t, errs)
		})
	}
}

func TestParseFromFile(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "config.yaml")
	cfg := []byte("id: hwrng-01\nasserted-entropy: 2.5\nword-size: 8\niid: true\nreport-interval: 15m\n")
	assert.NoError(t, os.WriteFile(fpath, cfg, 0644))

	opts, err := parseFromFile(fpath)
	assert.NoError(t, err)

	c, errs := newConfig(opts...)
	assert.Empty(t, errs)
	assert.Equal(t, "hwrng-01", c.ID)
	assert.Equal(t, 2.5, c.AssertedEntropy)
	assert.Equal(t, 8, c.WordSize)
	assert.Equal(t, entropic.IID, c.TestType)
	assert.Equal(t, 15*time.Minute, c.ReportInterval)
}

func TestParseFromFileUnknownKey(t *testing.T) {
	dir := t.TempDir()
	fpath := filepath.Join(dir, "config.yaml")
	assert.NoError(t, os.WriteFile(fpath, []byte("frobnicate: yes\n"), 0644))

	_, err := parseFromFile(fpath)
	assert.Error(t, err)
}
