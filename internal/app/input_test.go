package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextInputWordMotion(t *testing.T) {
	in := NewTextInput("hello world")
	assert.Equal(t, 11, in.Cursor())

	in = in.WordLeft()
	assert.Equal(t, 6, in.Cursor())
	in = in.WordLeft()
	assert.Equal(t, 0, in.Cursor())
	in = in.WordLeft()
	assert.Equal(t, 0, in.Cursor())

	in = in.WordRight()
	assert.Equal(t, 5, in.Cursor())
	in = in.WordRight()
	assert.Equal(t, 11, in.Cursor())
	in = in.WordRight()
	assert.Equal(t, 11, in.Cursor())
}

func TestTextInputEditing(t *testing.T) {
	tests := []struct {
		name       string
		edit       func(TextInput) TextInput
		wantValue  string
		wantCursor int
	}{
		{"insert at end", func(in TextInput) TextInput { return in.Insert([]rune("!")) }, "hello world!", 12},
		{"insert in middle", func(in TextInput) TextInput { return in.WordLeft().Insert([]rune("big ")) }, "hello big world", 10},
		{"backspace", func(in TextInput) TextInput { return in.Backspace() }, "hello worl", 10},
		{"backspace at start", func(in TextInput) TextInput { return NewTextInput("").Backspace() }, "", 0},
		{"left right", func(in TextInput) TextInput { return in.Left().Left().Right() }, "hello world", 10},
		{"right at end", func(in TextInput) TextInput { return in.Right() }, "hello world", 11},
		{"delete word", func(in TextInput) TextInput { return in.DeleteWord() }, "hello ", 6},
		{"delete word twice", func(in TextInput) TextInput { return in.DeleteWord().DeleteWord() }, "", 0},
		{"delete word mid", func(in TextInput) TextInput { return in.Left().Left().DeleteWord() }, "hello ld", 6},
		{"multibyte", func(in TextInput) TextInput { return NewTextInput("pässwörd").Left().Backspace() }, "pässwöd", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.edit(NewTextInput("hello world"))
			assert.Equal(t, tt.wantValue, got.Value())
			assert.Equal(t, tt.wantCursor, got.Cursor())
		})
	}
}

func TestTextInputImmutable(t *testing.T) {
	orig := NewTextInput("abc").Left()
	_ = orig.Insert([]rune("X"))
	_ = orig.Backspace()
	_ = orig.DeleteWord()
	assert.Equal(t, "abc", orig.Value())
	assert.Equal(t, 2, orig.Cursor())
}
