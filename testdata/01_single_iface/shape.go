package shape

type Shape interface {
	Area() float64
}

type Square struct {
	side float64
}

func (s Square) Area() float64 { return s.side * s.side }
