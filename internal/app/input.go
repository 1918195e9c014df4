package app

import "unicode"

// TextInput is an immutable line of text with a cursor measured in runes.
type TextInput struct {
	value  []rune
	cursor int
}

// NewTextInput returns an input holding s with the cursor at the end.
func NewTextInput(s string) TextInput {
	r := []rune(s)
	return TextInput{value: r, cursor: len(r)}
}

func (t TextInput) Value() string { return string(t.value) }
func (t TextInput) Cursor() int   { return t.cursor }
func (t TextInput) Len() int      { return len(t.value) }

func (t TextInput) with(value []rune, cursor int) TextInput {
	return TextInput{value: value, cursor: cursor}
}

// Insert adds runes at the cursor.
func (t TextInput) Insert(runes []rune) TextInput {
	value := make([]rune, 0, len(t.value)+len(runes))
	value = append(value, t.value[:t.cursor]...)
	value = append(value, runes...)
	value = append(value, t.value[t.cursor:]...)
	return t.with(value, t.cursor+len(runes))
}

// Backspace deletes the rune before the cursor.
func (t TextInput) Backspace() TextInput {
	if t.cursor == 0 {
		return t
	}
	return t.deleteRange(t.cursor-1, t.cursor)
}

func (t TextInput) Left() TextInput {
	if t.cursor == 0 {
		return t
	}
	return t.with(t.value, t.cursor-1)
}

func (t TextInput) Right() TextInput {
	if t.cursor == len(t.value) {
		return t
	}
	return t.with(t.value, t.cursor+1)
}

// WordLeft moves to the start of the current or previous word.
func (t TextInput) WordLeft() TextInput {
	return t.with(t.value, t.wordStart())
}

// WordRight moves to the end of the current or next word.
func (t TextInput) WordRight() TextInput {
	i := t.cursor
	for i < len(t.value) && unicode.IsSpace(t.value[i]) {
		i++
	}
	for i < len(t.value) && !unicode.IsSpace(t.value[i]) {
		i++
	}
	return t.with(t.value, i)
}

// DeleteWord deletes back to the start of the current or previous word.
func (t TextInput) DeleteWord() TextInput {
	return t.deleteRange(t.wordStart(), t.cursor)
}

func (t TextInput) wordStart() int {
	i := t.cursor
	for i > 0 && unicode.IsSpace(t.value[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(t.value[i-1]) {
		i--
	}
	return i
}

func (t TextInput) deleteRange(from, to int) TextInput {
	if from == to {
		return t
	}
	value := make([]rune, 0, len(t.value)-(to-from))
	value = append(value, t.value[:from]...)
	value = append(value, t.value[to:]...)
	return t.with(value, from)
}
