package workers

type Worker interface {
	Start() error
	Stop() error
}

type Engine struct {
	running bool
}

func (e *Engine) Start() error {
	e.running = true
	return nil
}

func (e *Engine) Stop() error {
	e.running = false
	return nil
}

type Pump struct {
	engine *Engine
	rate   int
}

func (p *Pump) Start() error { return p.engine.Start() }

func (p *Pump) Stop() error { return p.engine.Stop() }

func (p *Pump) Rate() int { return p.rate }

type Fan struct {
	engine Engine
	speed  int
}

func (f *Fan) Start() error { return f.engine.Start() }

func (f *Fan) Stop() error { return f.engine.Stop() }

func (f *Fan) Speed() int { return f.speed }
