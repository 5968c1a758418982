// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package preset holds named, built-in rule sets.
package preset

import (
	"sort"
	"sync"

	"github.com/walteh/rewriterc/pkg/text"
	"gitlab.com/tozd/go/errors"
)

// 📦 Preset is a named rule sequence with the file it was written for
type Preset struct {
	Name        string
	Description string
	Target      string // default target path, relative to the working directory
	Rules       []text.Rule
}

var (
	mu sync.RWMutex
	// 🗺️ presets maps preset names to their constructors
	presets = map[string]func() Preset{}
)

// 📝 Register registers a preset constructor under name
func Register(name string, fn func() Preset) {
	mu.Lock()
	defer mu.Unlock()
	presets[name] = fn
}

// 🎯 Get returns a fresh copy of the named preset
func Get(name string) (Preset, error) {
	mu.RLock()
	fn, ok := presets[name]
	mu.RUnlock()
	if !ok {
		return Preset{}, errors.Errorf("unknown preset %q", name)
	}
	return fn(), nil
}

// Names lists registered presets in sorted order
func Names() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
