// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// Identifier is a non-empty name from the source: a variable, a
// constructor tag, or a pattern binding.
type Identifier = string
