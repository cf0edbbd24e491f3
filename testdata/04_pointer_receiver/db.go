package db

type Closer interface {
	Close() error
}

type Connection struct {
	dsn string
}

func (c *Connection) Close() error {
	return nil
}
