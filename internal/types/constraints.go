package types

// operatorClass names how a binary operator constrains its operand type
// (spec.md §4.3's Binary operator rule).
type operatorClass int

const (
	classArith operatorClass = iota // T -> T -> T, constraint {op, T}
	classCompare                    // T -> T -> Bool, constraint {op, T}
	classConcat                     // String -> String -> String, no constraint
	classBool                       // Bool -> Bool -> Bool, no constraint
	classCons                       // elem -> List elem -> List elem, no constraint
)

var operatorTable = map[string]operatorClass{
	"+": classArith, "-": classArith, "*": classArith, "/": classArith,
	"==": classCompare, "!=": classCompare, "<": classCompare, ">": classCompare,
	"<=": classCompare, ">=": classCompare,
	"++": classConcat,
	"&&": classBool, "||": classBool,
	"::": classCons, ":": classCons, // ":" is a legacy alias for "::"
}
