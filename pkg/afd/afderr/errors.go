// Copyright AFDScan Contributors
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

// Package afderr defines the sentinel errors raised by the discovery engine.
package afderr

import "errors"

// ErrInvalidColumn indicates a column index lies outside [0, m) for the
// dataset in question. Fatal: aborts the current discover() call.
var ErrInvalidColumn = errors.New("invalid column index")

// ErrEmptyColumnSet indicates getPLI was asked for the PLI of the empty
// column set, which is never stored in the cache (the empty-set PLI is the
// trivial "whole table" partition and must be special-cased by callers).
var ErrEmptyColumnSet = errors.New("empty column set")

// ErrDimensionMismatch indicates a row's width disagrees with the schema
// established when the dataset was constructed.
var ErrDimensionMismatch = errors.New("row dimension mismatch")

// ErrNumericDomain indicates a configuration value lies outside its required
// domain, e.g. an error threshold epsilon outside [0, 1].
var ErrNumericDomain = errors.New("value outside required numeric domain")
