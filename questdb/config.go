package questdb

import "time"

type Config struct {
	Address string
	Table   string

	AutoFlushRows int
	RetryTimeout  time.Duration
}

func NewDefaultConfig() *Config {
	return &Config{
		Address: "localhost:9000",
		Table:   "spsc_values",

		AutoFlushRows: 75_000,
		RetryTimeout:  time.Second,
	}
}
