// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (c) 2023-2026 Nicholas R. Perez

package eval

// SaveData maps a key to a stack of saved values.
// A key is present only while it has at least one value.
// It is not safe for concurrent use.
type SaveData struct {
	stacks map[string][]string
}

// NewSaveData creates a new empty store.
func NewSaveData() *SaveData {
	return &SaveData{
		stacks: make(map[string][]string),
	}
}

// Push saves value as the most recent value for key.
func (d *SaveData) Push(key, value string) {
	d.stacks[key] = append(d.stacks[key], value)
}

// Pop removes the most recent value for key. Popping an absent key is a no-op.
func (d *SaveData) Pop(key string) {
	stack, ok := d.stacks[key]
	if !ok {
		return
	}
	if len(stack) <= 1 {
		delete(d.stacks, key)
		return
	}
	d.stacks[key] = stack[:len(stack)-1]
}

// Peek returns the most recent value for key.
func (d *SaveData) Peek(key string) (string, bool) {
	stack, ok := d.stacks[key]
	if !ok {
		return "", false
	}
	return stack[len(stack)-1], true
}

// Depth returns how many values are saved under key.
func (d *SaveData) Depth(key string) int {
	return len(d.stacks[key])
}

// Len returns the number of keys with saved values.
func (d *SaveData) Len() int {
	return len(d.stacks)
}
