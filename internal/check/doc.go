// Package check holds the convention rules and the per-file pipeline that
// runs them: lex, collect directives, build the suppression set, parse,
// apply every rule that matches the file kind and hand the findings to the
// report.
package check
