// Copyright 2015 The Prometheus Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"github.com/cespare/xxhash/v2"
)

type tokenKind byte

const (
	timeKind tokenKind = iota
	countKind
	gaugeKind
)

// separatorByte cannot occur in a valid token name, so the (kind, name)
// encoding below is prefix-free.
const separatorByte byte = 0xff

// signature maps a (kind, name) pair to the uint64 the registry keys its
// token collections by.
func signature(kind tokenKind, name string) uint64 {
	d := xxhash.New()
	d.Write([]byte{byte(kind), separatorByte})
	d.WriteString(name)
	return d.Sum64()
}
