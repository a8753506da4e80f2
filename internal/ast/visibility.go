package ast

// Visibility описывает доступность функции или переменной состояния.
type Visibility uint8

const (
	VisDefault Visibility = iota
	VisPublic
	VisExternal
	VisInternal
	VisPrivate
)

func (v Visibility) String() string {
	switch v {
	case VisPublic:
		return "public"
	case VisExternal:
		return "external"
	case VisInternal:
		return "internal"
	case VisPrivate:
		return "private"
	default:
		return ""
	}
}

// Exposed reports whether the member can be called from outside the contract.
func (v Visibility) Exposed() bool {
	return v == VisPublic || v == VisExternal
}

// Location is the data location attached to a parameter or local variable.
type Location uint8

const (
	LocNone Location = iota
	LocMemory
	LocStorage
	LocCalldata
)

func (l Location) String() string {
	switch l {
	case LocMemory:
		return "memory"
	case LocStorage:
		return "storage"
	case LocCalldata:
		return "calldata"
	default:
		return ""
	}
}
