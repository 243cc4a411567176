// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package org

import (
	"strings"

	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Properties is an ordered set of string key-value pairs,
// such as a property drawer or a block's parameters.
// The zero value and nil are empty sets.
type Properties struct {
	m *linkedhashmap.Map
}

// NewProperties returns an empty property set.
func NewProperties() *Properties {
	return &Properties{m: linkedhashmap.New()}
}

// Len returns the number of keys in the set.
func (p *Properties) Len() int {
	if p == nil || p.m == nil {
		return 0
	}
	return p.m.Size()
}

// Get returns the value for key.
func (p *Properties) Get(key string) (value string, ok bool) {
	if p == nil || p.m == nil {
		return "", false
	}
	v, ok := p.m.Get(key)
	if !ok {
		return "", false
	}
	return v.(string), true
}

// Set sets the value for key.
// A new key is added after all existing keys.
func (p *Properties) Set(key, value string) {
	if p.m == nil {
		p.m = linkedhashmap.New()
	}
	p.m.Put(key, value)
}

// Append adds value to the end of key's value, separated by a space.
// If the key is not present, Append is the same as Set.
func (p *Properties) Append(key, value string) {
	if old, ok := p.Get(key); ok {
		value = old + " " + value
	}
	p.Set(key, value)
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	if p == nil || p.m == nil {
		return nil
	}
	keys := make([]string, 0, p.m.Size())
	for _, k := range p.m.Keys() {
		keys = append(keys, k.(string))
	}
	return keys
}

// parseParams splits a parameter string such as
// "python :results output :exports none"
// into its leading words and its ":key value" pairs.
// A key with no value maps to the empty string.
func parseParams(s string) (lead string, params *Properties) {
	params = NewProperties()
	fields := strings.Fields(s)
	i := 0
	for ; i < len(fields) && !strings.HasPrefix(fields[i], ":"); i++ {
	}
	lead = strings.Join(fields[:i], " ")
	for i < len(fields) {
		key := strings.TrimPrefix(fields[i], ":")
		j := i + 1
		for ; j < len(fields) && !strings.HasPrefix(fields[j], ":"); j++ {
		}
		if key != "" {
			params.Set(key, strings.Join(fields[i+1:j], " "))
		}
		i = j
	}
	return lead, params
}
