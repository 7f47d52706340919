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

// Package internal holds the capability gate for token construction.
//
// Token constructors require a Gate argument. Because this package sits
// behind an internal/ path element, code outside this module cannot import
// it, cannot name the Gate type, and therefore cannot call a token
// constructor. All token creation goes through the registry.
package internal

// Gate authorizes token construction and teardown. It carries no state; its
// whole purpose is that only packages of this module can produce one.
type Gate struct {
	_ struct{}
}

// NewGate returns a gate value. Callable only from inside this module.
func NewGate() Gate {
	return Gate{}
}
