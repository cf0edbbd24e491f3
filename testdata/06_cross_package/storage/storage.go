package storage

type Store interface {
	Get(key string) ([]byte, error)
	Put(key string, value []byte) error
}

type Disk struct {
	root string
}

func (d *Disk) Get(key string) ([]byte, error) { return nil, nil }

func (d *Disk) Put(key string, value []byte) error { return nil }

func (d *Disk) Root() string { return d.root }
