package box

type Value interface{}

type Box struct {
	v Value
}

func (b Box) Unwrap() Value { return b.v }
