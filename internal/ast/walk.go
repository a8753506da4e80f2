package ast

import "iter"

// Preorder yields root and every statement nested under it, parents before
// children, in source order. It uses an explicit worklist, so deeply nested
// bodies cannot exhaust the goroutine stack.
func (s *Stmts) Preorder(root StmtID) iter.Seq2[StmtID, *Stmt] {
	return func(yield func(StmtID, *Stmt) bool) {
		if !root.IsValid() {
			return
		}
		stack := []StmtID{root}
		for len(stack) > 0 {
			id := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			st := s.Get(id)
			if st == nil {
				continue
			}
			if !yield(id, st) {
				return
			}
			kids := s.Children(id)
			for i := len(kids) - 1; i >= 0; i-- {
				stack = append(stack, kids[i])
			}
		}
	}
}

// LocalVars yields every variable declared anywhere inside the body rooted at root.
func (s *Stmts) LocalVars(root StmtID) iter.Seq2[*Stmt, *Param] {
	return func(yield func(*Stmt, *Param) bool) {
		for _, st := range s.Preorder(root) {
			if st.Kind != StmtVarDecl {
				continue
			}
			for _, v := range st.Vars {
				if !yield(st, v) {
					return
				}
			}
		}
	}
}
