// Package ast holds a declaration-level Solidity syntax tree.
//
// Only the shapes the convention rules look at are modelled: imports,
// contracts and their members, function signatures and the statement
// skeleton of function bodies (blocks, branches, loops and variable
// declarations). Expressions are kept as token ranges.
package ast
