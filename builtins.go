// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package sable

// The three exceptions the runtime itself can raise, plus the initial
// environment (§6): true, false, unit, and the nullary injections below.

func excClosed() VInjection { return VInjection{Name: "ExcClosed"} }
func excInvalid() VInjection { return VInjection{Name: "ExcInvalid"} }
func excMatch() VInjection { return VInjection{Name: "ExcMatch"} }

// InitialEnv builds the environment every fresh ProgState starts from.
func InitialEnv() *Environment {
	return MakeEnv([]Pair{
		{Name: "true", Value: VBool{B: true}},
		{Name: "false", Value: VBool{B: false}},
		{Name: "unit", Value: VUnit{}},
		{Name: "ExcClosed", Value: excClosed()},
		{Name: "ExcInvalid", Value: excInvalid()},
		{Name: "ExcMatch", Value: excMatch()},
	})
}
