// SPDX-FileCopyrightText: 2026 The mediasoup-client-go authors
// SPDX-License-Identifier: MIT

// Package fmtp implements parsing and serializing of a=fmtp parameter
// strings.
package fmtp

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parse parses the config part of an a=fmtp line, such as
// "minptime=10;useinbandfec=1", into a parameter map. Keys are lowercased.
// Values that look like base 10 integers become ints, everything else stays
// a string. A parameter without "=" gets the empty string as value.
func Parse(line string) map[string]interface{} {
	parameters := make(map[string]interface{})

	for _, p := range strings.Split(line, ";") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		pp := strings.SplitN(p, "=", 2)
		key := strings.ToLower(strings.TrimSpace(pp[0]))
		if len(pp) == 1 {
			parameters[key] = ""
			continue
		}
		value := strings.TrimSpace(pp[1])
		if n, err := strconv.Atoi(value); err == nil {
			parameters[key] = n
		} else {
			parameters[key] = value
		}
	}

	return parameters
}

// Marshal serializes a parameter map back into fmtp config form. Keys are
// written in sorted order so that output is deterministic. An empty string
// value produces a bare key, matching how flag parameters are parsed.
func Marshal(parameters map[string]interface{}) string {
	keys := make([]string, 0, len(parameters))
	for k := range parameters {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fields := make([]string, 0, len(keys))
	for _, k := range keys {
		switch v := parameters[k].(type) {
		case string:
			if v == "" {
				fields = append(fields, k)
			} else {
				fields = append(fields, k+"="+v)
			}
		case int:
			fields = append(fields, k+"="+strconv.Itoa(v))
		default:
			fields = append(fields, fmt.Sprintf("%s=%v", k, v))
		}
	}

	return strings.Join(fields, ";")
}
