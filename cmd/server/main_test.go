package main

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gstrecon/internal/config"
	"gstrecon/internal/rates"
)

func TestBuildRateLookup_TableOnly(t *testing.T) {
	table := rates.NewTableLookup(nil, nil)

	got := buildRateLookup(&config.RatesConfig{Mode: "table"}, table)
	assert.Same(t, table, got)
}

func TestBuildRateLookup_NothingConfigured(t *testing.T) {
	table := rates.NewTableLookup(nil, nil)

	got := buildRateLookup(&config.RatesConfig{}, table)
	assert.Same(t, table, got)
}

func TestBuildRateLookup_SkipsUnconfiguredLookups(t *testing.T) {
	table := rates.NewTableLookup(nil, nil)

	got := buildRateLookup(&config.RatesConfig{Mode: "command,http,table"}, table)
	assert.Same(t, table, got)
}

func TestBuildRateLookup_Chain(t *testing.T) {
	table := rates.NewTableLookup(nil, nil)

	got := buildRateLookup(&config.RatesConfig{
		Mode:    "http,table",
		HTTPURL: "http://rates.internal",
	}, table)
	assert.IsType(t, &rates.FallbackLookup{}, got)
}
