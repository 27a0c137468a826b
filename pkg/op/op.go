// Package op defines the closed opcode set the type-to-bytecode walker
// emits and the pack encoder/decoder consumes. Every opcode value and its
// operand count is fixed here; nothing downstream invents new ones.
package op

import "fmt"

// Code identifies a single instruction of the type-bytecode virtual
// machine described in spec §3/§4.1. Values are integers in [0, Ceiling).
type Code int

// Ceiling is the packing limit: at most 64 distinct opcode values, since
// the wire encoding shares its 6-bit-equivalent alphabet with operand
// bytes (spec §4.1, §9 "Encoding headroom").
const Ceiling = 64

const (
	Invalid Code = iota

	// Primitive types
	Never
	Any
	Void
	String
	Number
	NumberBrand
	Boolean
	BigInt
	Null
	Undefined

	// Literal types
	Literal

	// Structural builders
	Class
	ObjectLiteral
	Array
	Set
	Map

	// Members
	Property
	PropertySignature
	Method
	MethodSignature
	Constructor
	Function
	Parameter
	IndexSignature

	// Member modifiers
	Optional
	Readonly
	Public
	Private
	Protected
	Abstract
	DefaultValue
	Description

	// Algebraic combinators
	Union
	Intersection

	// Generics and references
	Template
	ClassReference
	Inline
	InlineCall
	Loads
	Var
	Pointer

	// Conditional / inference
	Extends
	Condition
	Infer
	JumpCondition
	Jump

	// Mapped types
	MappedType

	// Operators
	Keyof
	Query
	In

	// Control
	Frame
	Return
	Call

	// Well-known classes
	Date
	Promise
	ArrayBuffer
	Int8Array
	Uint8Array
	Uint8ClampedArray
	Int16Array
	Uint16Array
	Int32Array
	Uint32Array
	Float32Array
	Float64Array
	BigInt64Array
	BigUint64Array

	// Enum reference (§4.6 step 5)
	Enum

	// Argument marker used by ReceiveType call-site rewriting (§4.7)
	Arg

	numCodes
)

func init() {
	if numCodes > Ceiling {
		panic(fmt.Sprintf("op: %d opcodes exceed the %d-value packing ceiling", numCodes, Ceiling))
	}
}

// Info describes one opcode: its canonical name and fixed operand count.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, numCodes)

func reg(c Code, name string, operandCount int) {
	infos[c] = Info{Code: c, Name: name, OperandCount: operandCount}
}

func init() {
	// Arity-0 opcodes: no operand follows.
	zero := []struct {
		c    Code
		name string
	}{
		{Never, "never"}, {Any, "any"}, {Void, "void"}, {String, "string"},
		{Number, "number"}, {Boolean, "boolean"}, {BigInt, "bigint"},
		{Null, "null"}, {Undefined, "undefined"},
		{Class, "class"}, {ObjectLiteral, "objectLiteral"}, {Array, "array"},
		{Set, "set"}, {Map, "map"}, {Constructor, "constructor"},
		{IndexSignature, "indexSignature"},
		{Optional, "optional"}, {Readonly, "readonly"}, {Public, "public"},
		{Private, "private"}, {Protected, "protected"}, {Abstract, "abstract"},
		{Union, "union"}, {Intersection, "intersection"},
		{Extends, "extends"}, {Condition, "condition"}, {JumpCondition, "jumpCondition"},
		{Keyof, "keyof"}, {Query, "query"}, {In, "in"},
		{Frame, "frame"}, {Return, "return"}, {Var, "var"},
		{Date, "date"}, {Promise, "promise"}, {ArrayBuffer, "arrayBuffer"},
		{Int8Array, "int8Array"}, {Uint8Array, "uint8Array"},
		{Uint8ClampedArray, "uint8ClampedArray"}, {Int16Array, "int16Array"},
		{Uint16Array, "uint16Array"}, {Int32Array, "int32Array"},
		{Uint32Array, "uint32Array"}, {Float32Array, "float32Array"},
		{Float64Array, "float64Array"}, {BigInt64Array, "bigInt64Array"},
		{BigUint64Array, "bigUint64Array"},
	}
	for _, z := range zero {
		reg(z.c, z.name, 0)
	}

	// Arity-1 opcodes.
	one := []struct {
		c    Code
		name string
	}{
		{Literal, "literal"}, {Pointer, "pointer"}, {Arg, "arg"},
		{ClassReference, "classReference"}, {PropertySignature, "propertySignature"},
		{Property, "property"}, {Jump, "jump"}, {Enum, "enum"},
		{Template, "template"}, {Call, "call"}, {Inline, "inline"},
		{DefaultValue, "defaultValue"}, {Parameter, "parameter"},
		{Method, "method"}, {MethodSignature, "methodSignature"},
		{Function, "function"},
		{Description, "description"}, {NumberBrand, "numberBrand"},
	}
	for _, o := range one {
		reg(o.c, o.name, 1)
	}

	// Arity-2 opcodes.
	two := []struct {
		c    Code
		name string
	}{
		{MappedType, "mappedType"}, {InlineCall, "inlineCall"},
		{Loads, "loads"}, {Infer, "infer"},
	}
	for _, t := range two {
		reg(t.c, t.name, 2)
	}
}

// GetInfo returns the Info for the given opcode. Codes outside the known
// set return a zero Info with an empty Name.
func GetInfo(c Code) Info {
	if c < 0 || int(c) >= len(infos) {
		return Info{}
	}
	return infos[c]
}

// OperandCount returns the fixed number of inline operands that follow c.
func OperandCount(c Code) int {
	return GetInfo(c).OperandCount
}

// Name returns the canonical opcode name, or "" if c is unknown.
func Name(c Code) string {
	return GetInfo(c).Name
}

// String implements fmt.Stringer for diagnostics and disassembly.
func (c Code) String() string {
	if n := Name(c); n != "" {
		return n
	}
	return fmt.Sprintf("op(%d)", int(c))
}
