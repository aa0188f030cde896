package machinefile

import (
	"strconv"

	"github.com/alecthomas/participle/v2/lexer"
)

// File is a parsed machine file. It may describe several machines.
//
//	# reference design
//	machine "24s4p" {
//		slots = 24
//		poles = 4
//		phases = 3
//		layer = double
//		pitch = custom 1
//		connection = star
//	}
type File struct {
	Machines []*MachineDecl `@@*`
}

// MachineDecl is one machine block.
type MachineDecl struct {
	Pos lexer.Position

	Name   string   `KwMachine @String LBrace`
	Fields []*Field `@@* RBrace`
}

// Field is a "key = value" line inside a machine block.
type Field struct {
	Pos lexer.Position

	Key   string `@Ident Assign`
	Value *Value `@@ Semicolon?`
}

// Value is either a number or a word with an optional numeric argument,
// as in "custom 2".
type Value struct {
	Number *int    `  @Integer`
	Word   *string `| @Ident`
	Arg    *int    `  @Integer?`
}

// String renders the value as written.
func (v *Value) String() string {
	switch {
	case v == nil:
		return ""
	case v.Number != nil:
		return strconv.Itoa(*v.Number)
	case v.Arg != nil:
		return *v.Word + " " + strconv.Itoa(*v.Arg)
	case v.Word != nil:
		return *v.Word
	}
	return ""
}

// Machine returns the machine block with the given name, or nil.
func (f *File) Machine(name string) *MachineDecl {
	for _, m := range f.Machines {
		if m.Name == name {
			return m
		}
	}
	return nil
}
