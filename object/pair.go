package object

import "strings"

// Pair is a mutable cons cell. Proper lists are chains of pairs ending
// in the empty list.
type Pair struct {
	car Object
	cdr Object
}

func (p *Pair) Type() Type {
	return PAIR
}

func (p *Pair) Car() Object {
	return p.car
}

func (p *Pair) Cdr() Object {
	return p.cdr
}

func (p *Pair) SetCar(obj Object) {
	p.car = obj
}

func (p *Pair) SetCdr(obj Object) {
	p.cdr = obj
}

// Inspect prints proper lists as (a b c) and improper tails with dot
// notation, as in (a b . c).
func (p *Pair) Inspect() string {
	var out strings.Builder
	out.WriteString("(")
	out.WriteString(p.car.Inspect())
	rest := p.cdr
	for {
		switch tail := rest.(type) {
		case *NilType:
			out.WriteString(")")
			return out.String()
		case *Pair:
			out.WriteString(" ")
			out.WriteString(tail.car.Inspect())
			rest = tail.cdr
		default:
			out.WriteString(" . ")
			out.WriteString(tail.Inspect())
			out.WriteString(")")
			return out.String()
		}
	}
}

func (p *Pair) String() string {
	return p.Inspect()
}

// Interface converts a proper list to a []interface{}; an improper pair
// becomes a two-element [car, cdr] slice.
func (p *Pair) Interface() interface{} {
	if items, ok := p.Slice(); ok {
		out := make([]interface{}, len(items))
		for i, item := range items {
			out[i] = item.Interface()
		}
		return out
	}
	return []interface{}{p.car.Interface(), p.cdr.Interface()}
}

func (p *Pair) Equals(other Object) bool {
	otherPair, ok := other.(*Pair)
	if !ok {
		return false
	}
	return p.car.Equals(otherPair.car) && p.cdr.Equals(otherPair.cdr)
}

func (p *Pair) IsTruthy() bool {
	return true
}

// Slice collects the elements of a proper list. The second return is
// false when the chain does not end in the empty list.
func (p *Pair) Slice() ([]Object, bool) {
	var items []Object
	var cur Object = p
	for {
		switch node := cur.(type) {
		case *Pair:
			items = append(items, node.car)
			cur = node.cdr
		case *NilType:
			return items, true
		default:
			return nil, false
		}
	}
}

// NewPair builds a cons cell.
func NewPair(car, cdr Object) *Pair {
	return &Pair{car: car, cdr: cdr}
}

// NewList builds a proper list from the given items.
func NewList(items ...Object) Object {
	var out Object = Nil
	for i := len(items) - 1; i >= 0; i-- {
		out = NewPair(items[i], out)
	}
	return out
}
