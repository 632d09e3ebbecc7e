// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

package fmtp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	for _, ca := range []struct {
		name       string
		line       string
		parameters map[string]interface{}
	}{
		{
			"one param",
			"key-name=value",
			map[string]interface{}{
				"key-name": "value",
			},
		},
		{
			"one param with white spaces",
			"\tkey-name=value ",
			map[string]interface{}{
				"key-name": "value",
			},
		},
		{
			"two params",
			"key-name=value;key2=value2",
			map[string]interface{}{
				"key-name": "value",
				"key2":     "value2",
			},
		},
		{
			"two params with white spaces",
			"key-name=value; \n\tkey2=value2 ",
			map[string]interface{}{
				"key-name": "value",
				"key2":     "value2",
			},
		},
		{
			"numeric values become ints",
			"minptime=10;useinbandfec=1",
			map[string]interface{}{
				"minptime":     10,
				"useinbandfec": 1,
			},
		},
		{
			"hex profile stays a string",
			"level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=42e01f",
			map[string]interface{}{
				"level-asymmetry-allowed": 1,
				"packetization-mode":      1,
				"profile-level-id":        "42e01f",
			},
		},
		{
			"keys are lowercased",
			"Key=value",
			map[string]interface{}{
				"key": "value",
			},
		},
		{
			"flag param",
			"cbr",
			map[string]interface{}{
				"cbr": "",
			},
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			assert.Equal(t, ca.parameters, Parse(ca.line))
		})
	}
}

func TestMarshal(t *testing.T) {
	for _, ca := range []struct {
		name       string
		parameters map[string]interface{}
		line       string
	}{
		{
			"empty",
			map[string]interface{}{},
			"",
		},
		{
			"sorted keys",
			map[string]interface{}{
				"useinbandfec": 1,
				"minptime":     10,
			},
			"minptime=10;useinbandfec=1",
		},
		{
			"mixed value types",
			map[string]interface{}{
				"packetization-mode": 1,
				"profile-level-id":   "42e01f",
			},
			"packetization-mode=1;profile-level-id=42e01f",
		},
		{
			"flag param",
			map[string]interface{}{
				"cbr": "",
			},
			"cbr",
		},
	} {
		t.Run(ca.name, func(t *testing.T) {
			assert.Equal(t, ca.line, Marshal(ca.parameters))
		})
	}
}

func TestRoundTrip(t *testing.T) {
	line := "apt=96"
	assert.Equal(t, line, Marshal(Parse(line)))

	line = "level-asymmetry-allowed=1;packetization-mode=1;profile-level-id=42e01f"
	assert.Equal(t, line, Marshal(Parse(line)))
}
