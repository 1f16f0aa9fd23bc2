package tabload

import "github.com/ukaji3/tabload-go/pkg/tabload/models"

// Sink receives the output of a source.
type Sink interface {
	// AddAlias is called once per header alias before any record.
	AddAlias(name string, index int)
	// Record is called for each record. An error stops the load.
	Record(rec *models.Record) error
}

// SinkFunc adapts a record callback to a Sink that ignores aliases.
type SinkFunc func(rec *models.Record) error

func (f SinkFunc) AddAlias(string, int) {}

func (f SinkFunc) Record(rec *models.Record) error { return f(rec) }

// Collector is a Sink that keeps everything in memory.
type Collector struct {
	Aliases models.Aliases
	Records []*models.Record
}

func (c *Collector) AddAlias(name string, index int) {
	c.Aliases = append(c.Aliases, models.Alias{Name: name, Index: index})
}

func (c *Collector) Record(rec *models.Record) error {
	c.Records = append(c.Records, rec)
	return nil
}
