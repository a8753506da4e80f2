package token

var keywords = map[string]Kind{}

func init() {
	for k := KwPragma; k <= KwContinue; k++ {
		keywords[kindNames[k]] = k
	}
}

// LookupKeyword returns the keyword kind for ident, if it is reserved.
// Keywords are case sensitive.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}
