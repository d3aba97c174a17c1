package token

// KeywordTable maps reserved spellings to their keyword kinds.
// A table is never written after NewKeywordTable returns.
type KeywordTable map[string]Kind

func NewKeywordTable() KeywordTable {
	return KeywordTable{
		"func":  FUNC,
		"if":    IF,
		"true":  TRUE,
		"false": FALSE,
	}
}

// Lookup returns the keyword kind for ident, or IDENT if ident is not reserved.
func (kt KeywordTable) Lookup(ident string) Kind {
	if k, ok := kt[ident]; ok {
		return k
	}
	return IDENT
}
