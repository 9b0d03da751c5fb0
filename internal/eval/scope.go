// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

// scope records the saves made while it is open and undoes them on release.
// Whoever opens a scope releases it, normally with defer.
type scope struct {
	saves *SaveData
	keys  []string
}

func (e *Evaluator) openScope() *scope {
	return &scope{saves: e.saves}
}

// push saves value under key and remembers to pop it on release.
func (sc *scope) push(key, value string) {
	sc.saves.Push(key, value)
	sc.keys = append(sc.keys, key)
}

// forget drops the latest record of key after an explicit POP removed the
// value, so release does not pop the key a second time.
func (sc *scope) forget(key string) {
	for i := len(sc.keys) - 1; i >= 0; i-- {
		if sc.keys[i] == key {
			sc.keys = append(sc.keys[:i], sc.keys[i+1:]...)
			return
		}
	}
}

// release pops every recorded key, newest first.
func (sc *scope) release() {
	for i := len(sc.keys) - 1; i >= 0; i-- {
		sc.saves.Pop(sc.keys[i])
	}
	sc.keys = nil
}
